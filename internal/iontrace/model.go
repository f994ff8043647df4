package iontrace

// Trace is the decoded debug trace. It owns all function, pass, block
// and instruction data for the lifetime of the run.
type Trace struct {
	Functions []Function `json:"functions" msgpack:"functions"`
}

// Function is one compiled function and the passes recorded for it.
type Function struct {
	Name   string `json:"name" msgpack:"name"`
	Passes []Pass `json:"passes" msgpack:"passes"`
}

// Pass is one optimization or lowering stage. MIR carries the
// graph-structured IR with explicit successors; LIR is the linear IR
// aligned index-for-index with MIR, without successors of its own.
// A nil snapshot means the producer did not emit that IR kind at all;
// a present snapshot with zero blocks means it emitted an empty one.
// Both read as "no graph to draw", but the states are distinct.
type Pass struct {
	Name string      `json:"name" msgpack:"name"`
	MIR  *IRSnapshot `json:"mir" msgpack:"mir"`
	LIR  *IRSnapshot `json:"lir" msgpack:"lir"`
}

// IRSnapshot is the block list of one IR kind within one pass.
type IRSnapshot struct {
	Blocks []Block `json:"blocks" msgpack:"blocks"`
}

// Block attribute names emitted by the producer.
const (
	BlockAttrBackedge   = "backedge"
	BlockAttrLoopHeader = "loopheader"
	BlockAttrSplitEdge  = "splitedge"
)

// Block is one basic block. Number is its identity within the snapshot;
// corresponding MIR/LIR blocks pair up by index, not by number.
// Successors is populated on MIR blocks only.
type Block struct {
	Number       uint32        `json:"number" msgpack:"number"`
	Attributes   []string      `json:"attributes" msgpack:"attributes"`
	Successors   []uint32      `json:"successors" msgpack:"successors"`
	UseCount     uint64        `json:"useCount" msgpack:"useCount"`
	ResumePoint  *ResumePoint  `json:"resumePoint" msgpack:"resumePoint"`
	Instructions []Instruction `json:"instructions" msgpack:"instructions"`
}

// HasAttribute reports whether the block carries the named attribute.
func (b *Block) HasAttribute(name string) bool {
	for _, a := range b.Attributes {
		if a == name {
			return true
		}
	}
	return false
}

// Instruction attribute names emitted by the producer.
const (
	InstrAttrRecoveredOnBailout = "RecoveredOnBailout"
	InstrAttrMovable            = "Movable"
	InstrAttrNeverHoisted       = "NeverHoisted"
	InstrAttrInWorklist         = "InWorklist"
)

// TypeNone is the sentinel the producer writes for an untyped
// instruction; it is suppressed from any rendering.
const TypeNone = "None"

// Instruction is one instruction within a block.
type Instruction struct {
	ID          uint32       `json:"id" msgpack:"id"`
	Opcode      string       `json:"opcode" msgpack:"opcode"`
	Type        string       `json:"type" msgpack:"type"`
	Attributes  []string     `json:"attributes" msgpack:"attributes"`
	ResumePoint *ResumePoint `json:"resumePoint" msgpack:"resumePoint"`
	MemInputs   []string     `json:"memInputs" msgpack:"memInputs"`
}

// HasAttribute reports whether the instruction carries the named attribute.
func (ins *Instruction) HasAttribute(name string) bool {
	for _, a := range ins.Attributes {
		if a == name {
			return true
		}
	}
	return false
}

// Typed reports whether the instruction has a displayable type.
func (ins *Instruction) Typed() bool {
	return ins.Type != "" && ins.Type != TypeNone
}

// Resume point modes. A block-level resume point has no mode.
const (
	ResumeAt    = "At"
	ResumeAfter = "After"
)

// ResumePoint is a snapshot of live values used for bailout
// reconstruction, attached to a block or to an instruction.
type ResumePoint struct {
	Mode     string   `json:"mode" msgpack:"mode"`
	Caller   string   `json:"caller" msgpack:"caller"`
	Operands []string `json:"operands" msgpack:"operands"`
}
