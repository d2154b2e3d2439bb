// Package blocks converts plain text to and from an ordered sequence of
// typed content blocks matching the Notion block vocabulary.
package blocks

// Kind identifies the structural type of a block.
type Kind string

// Block kinds.
const (
	KindHeading   Kind = "heading"
	KindBullet    Kind = "bullet"
	KindNumbered  Kind = "numbered"
	KindCode      Kind = "code"
	KindParagraph Kind = "paragraph"
)

// DefaultCodeLanguage is the language tag assigned to fenced code that
// declares none. The remote API requires a concrete tag, so absence maps to
// this literal rather than an empty string.
const DefaultCodeLanguage = "plain text"

// Block is one structurally classified unit of document content. Level is
// meaningful for headings only (1..3) and Language for code only. Blocks are
// never mutated after construction; sequence order is document order.
type Block struct {
	Kind     Kind
	Level    int
	Language string
	Text     string
}

// Heading returns a heading block of the given level (1..3).
func Heading(level int, text string) Block {
	return Block{Kind: KindHeading, Level: level, Text: text}
}

// Bullet returns a bulleted list item.
func Bullet(text string) Block {
	return Block{Kind: KindBullet, Text: text}
}

// Numbered returns a numbered list item.
func Numbered(text string) Block {
	return Block{Kind: KindNumbered, Text: text}
}

// Code returns a fenced code block. An empty language is replaced by
// DefaultCodeLanguage.
func Code(language, text string) Block {
	if language == "" {
		language = DefaultCodeLanguage
	}
	return Block{Kind: KindCode, Language: language, Text: text}
}

// Paragraph returns a plain paragraph block.
func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}
