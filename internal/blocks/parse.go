package blocks

import "strings"

const fence = "```"

// Parse converts plain text into an ordered block sequence. It is total: any
// input yields a valid (possibly empty) sequence, and a line matching no
// marker becomes a paragraph.
//
// Classification is line-oriented on the trimmed line, longest marker first:
//
//	### text    heading 3
//	## text     heading 2
//	# text      heading 1
//	- text      bullet item ("* " is accepted too)
//	N. text     numbered item, single digit 1-9 only
//	```lang     code fence, open until the next ``` line or end of input
//
// Blank lines produce nothing. Lines inside a code fence are accumulated
// verbatim, untrimmed, with newlines preserved; the closing fence is
// consumed and an unterminated fence runs to the end of the input.
func Parse(content string) []Block {
	lines := strings.Split(content, "\n")
	var out []Block

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			continue
		}

		if strings.HasPrefix(line, fence) {
			language := strings.TrimSpace(strings.TrimPrefix(line, fence))
			var body []string
			i++
			for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), fence) {
				body = append(body, lines[i])
				i++
			}
			// Loop stopped on the closing fence (consumed by the outer
			// increment) or ran off the end of the input.
			out = append(out, Code(language, strings.Join(body, "\n")))
			continue
		}

		out = append(out, classifyLine(line))
	}

	return out
}

// classifyLine maps a single trimmed, non-blank line to its block. Marker
// checks run longest-prefix-first so "### " is not claimed by "# ".
func classifyLine(line string) Block {
	switch {
	case strings.HasPrefix(line, "### "):
		return Heading(3, line[4:])
	case strings.HasPrefix(line, "## "):
		return Heading(2, line[3:])
	case strings.HasPrefix(line, "# "):
		return Heading(1, line[2:])
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return Bullet(line[2:])
	}
	if text, ok := numberedItem(line); ok {
		return Numbered(text)
	}
	return Paragraph(line)
}

// numberedItem recognises "N. text" for a single digit 1-9. Two-digit
// ordinals ("10. ") and "0. " fall through to paragraphs; the boundary is
// part of the documented text format and downstream consumers may depend on
// it, so it is kept rather than widened.
func numberedItem(line string) (string, bool) {
	if len(line) < 3 {
		return "", false
	}
	if line[0] < '1' || line[0] > '9' {
		return "", false
	}
	if line[1] != '.' || line[2] != ' ' {
		return "", false
	}
	return line[3:], true
}
