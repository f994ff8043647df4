package render

import (
	"fmt"
	"strings"

	"irgraph/internal/iontrace"
)

// Block labels are Graphviz HTML-like tables: a reverse-video header
// row, an optional block-level resume point, then per instruction the
// fixed sequence resume-point-before / instruction / memory inputs /
// resume-point-after. Every row spans three columns.

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }

// blockLabel renders the full label markup for one block, without the
// outer <...> wrapping.
func blockLabel(b *iontrace.Block, th *Theme) string {
	var sb strings.Builder
	sb.WriteString(`<table border="0" cellborder="0" cellpadding="1">`)
	sb.WriteString(headerRow(b, th))
	sb.WriteString(resumePointRow(b.ResumePoint, "", th))
	for i := range b.Instructions {
		ins := &b.Instructions[i]
		sb.WriteString(resumePointRow(ins.ResumePoint, iontrace.ResumeAt, th))
		sb.WriteString(instructionRow(ins, th))
		sb.WriteString(memInputsRow(ins))
		sb.WriteString(resumePointRow(ins.ResumePoint, iontrace.ResumeAfter, th))
	}
	sb.WriteString(`</table>`)
	return sb.String()
}

func headerRow(b *iontrace.Block, th *Theme) string {
	text := fmt.Sprintf("Block %d", b.Number)
	if b.UseCount > 0 {
		text += fmt.Sprintf(" (uses: %d)", b.UseCount)
	}
	return fmt.Sprintf(`<tr><td align="center" bgcolor="%s" colspan="3"><font color="%s">%s</font></td></tr>`,
		th.Colors.HeaderBG, th.Colors.HeaderFG, text)
}

// resumePointRow renders one resume point under a mode filter. The
// empty filter always renders (block-level resume points carry no
// mode); otherwise a mismatched mode contributes nothing. The three
// call sites in blockLabel rely on this single function staying
// consistent.
func resumePointRow(rp *iontrace.ResumePoint, modeFilter string, th *Theme) string {
	if rp == nil {
		return ""
	}
	if modeFilter != "" && rp.Mode != modeFilter {
		return ""
	}
	caller := ""
	if rp.Caller != "" {
		caller = "(" + escapeHTML(rp.Caller) + ")"
	}
	operands := escapeHTML(strings.Join(rp.Operands, " "))
	return fmt.Sprintf(`<tr><td align="left">%s</td><td align="left"><font color="%s">%s</font></td><td></td></tr>`,
		caller, th.Colors.Muted, operands)
}

func memInputsRow(ins *iontrace.Instruction) string {
	if len(ins.MemInputs) == 0 {
		return ""
	}
	return fmt.Sprintf(`<tr><td align="left">memory</td><td align="left">%s</td><td></td></tr>`,
		escapeHTML(strings.Join(ins.MemInputs, " ")))
}

// instructionRow renders the id, the decorated opcode and the type.
// The id cell carries a port so edges could anchor to a precise
// instruction; nothing attaches to those ports today.
func instructionRow(ins *iontrace.Instruction, th *Theme) string {
	op := escapeHTML(ins.Opcode)
	switch {
	case ins.HasAttribute(iontrace.InstrAttrRecoveredOnBailout):
		op = fmt.Sprintf(`<font color="%s">%s</font>`, th.Colors.Muted, op)
	case ins.HasAttribute(iontrace.InstrAttrMovable):
		op = fmt.Sprintf(`<font color="%s">%s</font>`, th.Colors.Accent, op)
	}
	if ins.HasAttribute(iontrace.InstrAttrNeverHoisted) {
		op = "<u>" + op + "</u>"
	}
	if ins.HasAttribute(iontrace.InstrAttrInWorklist) {
		op = fmt.Sprintf(`<font color="%s">%s</font>`, th.Colors.Alert, op)
	}
	id := fmt.Sprintf(`<td align="left" port="i%d">%d</td>`, ins.ID, ins.ID)
	if !ins.Typed() {
		return fmt.Sprintf(`<tr>%s<td align="left" colspan="2">%s</td></tr>`, id, op)
	}
	return fmt.Sprintf(`<tr>%s<td align="left">%s</td><td align="left">%s</td></tr>`,
		id, op, escapeHTML(ins.Type))
}
