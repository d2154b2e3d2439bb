package blocks

import "strings"

// Render converts a block sequence back into plain text, one block per line,
// with multi-line code bodies embedded inside their fences. It is the
// read-back inverse of Parse restricted to each block's own payload: ordinal
// positions are not stored, so numbered items always render with the literal
// "1. " prefix.
func Render(blks []Block) string {
	lines := make([]string, 0, len(blks))
	for _, b := range blks {
		lines = append(lines, renderBlock(b))
	}
	return strings.Join(lines, "\n")
}

func renderBlock(b Block) string {
	switch b.Kind {
	case KindHeading:
		return strings.Repeat("#", b.Level) + " " + b.Text
	case KindBullet:
		return "- " + b.Text
	case KindNumbered:
		return "1. " + b.Text
	case KindCode:
		return fence + b.Language + "\n" + b.Text + "\n" + fence
	default:
		return b.Text
	}
}
