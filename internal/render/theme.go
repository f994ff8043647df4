package render

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Theme holds the presentation knobs baked into generated graphs.
// Values are Graphviz color names or X11 color strings.
type Theme struct {
	Colors ThemeColors `toml:"colors"`
	Font   ThemeFont   `toml:"font"`
}

// ThemeColors maps block and instruction decorations to colors.
type ThemeColors struct {
	// Backedge outlines blocks that close a loop.
	Backedge string `toml:"backedge"`
	// LoopHeader outlines loop header blocks. When a block is both a
	// backedge and a loop header this color wins; see decorateNode.
	LoopHeader string `toml:"loopheader"`
	// Muted renders recovered-on-bailout opcodes and resume-point
	// operand lists.
	Muted string `toml:"muted"`
	// Accent renders movable opcodes.
	Accent string `toml:"accent"`
	// Alert renders opcodes still sitting in an optimization worklist.
	Alert string `toml:"alert"`
	// HeaderBG and HeaderFG give block headers their reverse-video look.
	HeaderBG string `toml:"header_bg"`
	HeaderFG string `toml:"header_fg"`
}

// ThemeFont sizes the block label text.
type ThemeFont struct {
	Size int `toml:"size"`
}

// DefaultTheme returns the built-in presentation defaults.
func DefaultTheme() *Theme {
	return &Theme{
		Colors: ThemeColors{
			Backedge:   "indianred1",
			LoopHeader: "lightgreen",
			Muted:      "gray60",
			Accent:     "blue",
			Alert:      "red",
			HeaderBG:   "black",
			HeaderFG:   "white",
		},
		Font: ThemeFont{Size: 10},
	}
}

// LoadTheme decodes a TOML theme file over the defaults, so a file may
// override any subset of keys. An empty path returns the defaults.
func LoadTheme(path string) (*Theme, error) {
	th := DefaultTheme()
	if path == "" {
		return th, nil
	}
	if _, err := toml.DecodeFile(path, th); err != nil {
		return nil, fmt.Errorf("%s: failed to parse theme: %w", path, err)
	}
	if th.Font.Size <= 0 {
		return nil, fmt.Errorf("%s: font size must be positive, got %d", path, th.Font.Size)
	}
	return th, nil
}
