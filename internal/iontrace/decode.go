package iontrace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the trace encoding.
type Format uint8

const (
	// FormatAuto picks msgpack for .mp files and JSON otherwise.
	FormatAuto Format = iota
	// FormatJSON is the producer's text spew, repaired before decoding.
	FormatJSON
	// FormatMsgpack is the compact binary spew. Truncation of a binary
	// stream is not repairable; it surfaces as a decode error.
	FormatMsgpack
)

// ParseFormat converts a CLI string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgpack, nil
	default:
		return FormatAuto, fmt.Errorf("invalid format %q (expected auto|json|msgpack)", s)
	}
}

// Load reads and decodes a trace from path. "-" reads stdin, which
// FormatAuto treats as JSON. The whole document is read into memory
// before any decoding happens.
func Load(path string, format Format) (*Trace, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read trace: %w", err)
		}
		if format == FormatAuto && strings.HasSuffix(path, ".mp") {
			format = FormatMsgpack
		}
	}
	tr, err := Decode(data, format)
	if err != nil {
		name := path
		if name == "-" {
			name = "<stdin>"
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return tr, nil
}

// Decode decodes raw trace bytes. JSON input is repaired first so a
// trace truncated by a producer crash still decodes; whatever remains
// wrong after repair is a content error and is fatal to the run.
func Decode(data []byte, format Format) (*Trace, error) {
	if format == FormatAuto {
		format = FormatJSON
	}

	var tr Trace
	switch format {
	case FormatJSON:
		repaired := Repair(string(data))
		if err := json.Unmarshal([]byte(repaired), &tr); err != nil {
			return nil, fmt.Errorf("malformed trace: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, &tr); err != nil {
			return nil, fmt.Errorf("malformed binary trace: %w", err)
		}
	}

	if err := tr.check(); err != nil {
		return nil, err
	}
	return &tr, nil
}

// check rejects traces missing the structure later stages depend on.
// LIR inherits control flow from MIR, so an LIR snapshot without a
// matching MIR snapshot cannot be rendered.
func (t *Trace) check() error {
	for fi := range t.Functions {
		fn := &t.Functions[fi]
		for pi := range fn.Passes {
			p := &fn.Passes[pi]
			if p.LIR == nil || len(p.LIR.Blocks) == 0 {
				continue
			}
			if p.MIR == nil || len(p.MIR.Blocks) < len(p.LIR.Blocks) {
				return fmt.Errorf("malformed trace: function %d pass %d (%s): lir has %d blocks but mir topology is missing or shorter",
					fi, pi, p.Name, len(p.LIR.Blocks))
			}
		}
	}
	return nil
}
