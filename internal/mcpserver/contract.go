package mcpserver

// TextFormatContract describes the plain-text markup the writing tools
// parse into Notion blocks.
const TextFormatContract = `# Ansuz Text Format

The write_to_notion and append_to_notion tools convert plain text into
Notion blocks one line at a time.

## Line markup

` + "```" + `text
# Heading 1
## Heading 2
### Heading 3
- Bullet item
* Bullet item (same as -)
3. Numbered item
Any other non-blank line becomes a paragraph.
` + "```" + `

## Code fences

A line starting with ` + "```" + ` opens a code block. The rest of that line is
the language tag; leaving it out stores the block with language
"plain text". Lines inside the fence are kept verbatim until the closing
fence, or the end of the input when the fence is never closed.

## Rules

1. Blank lines are skipped; they never produce empty blocks.
2. Heading and list markers need their trailing space: ` + "`" + `#Heading` + "`" + ` and
   ` + "`" + `-item` + "`" + ` are paragraphs.
3. Numbered items match a single digit 1-9 followed by ` + "`" + `. ` + "`" + `.
   Two-digit ordinals (` + "`" + `10. ` + "`" + `) fall through to paragraphs.
4. Inline styling, links, tables and nested lists are not parsed; such
   lines are stored as plain paragraphs.
5. Reading a page back renders every numbered item as ` + "`" + `1.` + "`" + `
   regardless of its original ordinal; Notion numbers the list itself.

## Example

` + "````" + `text
# Release 1.4

Shipped today.

## Highlights
- faster sync
- smaller binary

### Upgrade steps
1. Stop the agent
2. Replace the binary

` + "```" + `bash
systemctl restart agent
` + "```" + `
` + "````" + `
`
