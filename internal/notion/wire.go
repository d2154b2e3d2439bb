package notion

import (
	"github.com/starford/ansuz/internal/blocks"
	"github.com/starford/ansuz/internal/models"
)

// The types below mirror the remote JSON schema. They are the only place
// that format lives; everything above this boundary works with the typed
// domain records from internal/blocks and internal/models.

type textContent struct {
	Content string `json:"content"`
}

type richText struct {
	Type string       `json:"type,omitempty"`
	Text *textContent `json:"text,omitempty"`
}

type blockPayload struct {
	RichText []richText `json:"rich_text"`
}

type codePayload struct {
	Language string     `json:"language,omitempty"`
	RichText []richText `json:"rich_text"`
}

type wireBlock struct {
	Object    string        `json:"object,omitempty"`
	ID        string        `json:"id,omitempty"`
	Type      string        `json:"type"`
	Paragraph *blockPayload `json:"paragraph,omitempty"`
	Heading1  *blockPayload `json:"heading_1,omitempty"`
	Heading2  *blockPayload `json:"heading_2,omitempty"`
	Heading3  *blockPayload `json:"heading_3,omitempty"`
	Bulleted  *blockPayload `json:"bulleted_list_item,omitempty"`
	Numbered  *blockPayload `json:"numbered_list_item,omitempty"`
	Code      *codePayload  `json:"code,omitempty"`
}

type titleProperty struct {
	Title []richText `json:"title"`
}

type wirePage struct {
	ID             string                   `json:"id"`
	URL            string                   `json:"url"`
	CreatedTime    string                   `json:"created_time"`
	LastEditedTime string                   `json:"last_edited_time"`
	Properties     map[string]titleProperty `json:"properties"`
}

type searchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type searchRequest struct {
	Query  string       `json:"query"`
	Filter searchFilter `json:"filter"`
}

type searchResponse struct {
	Results []wirePage `json:"results"`
}

type parentRef struct {
	Type   string `json:"type"`
	PageID string `json:"page_id"`
}

type createPageRequest struct {
	Parent     parentRef                `json:"parent"`
	Properties map[string]titleProperty `json:"properties"`
	Children   []wireBlock              `json:"children"`
}

type appendChildrenRequest struct {
	Children []wireBlock `json:"children"`
}

type childrenResponse struct {
	Results []wireBlock `json:"results"`
}

func richTextOf(text string) []richText {
	return []richText{{Type: "text", Text: &textContent{Content: text}}}
}

func textOf(rt richText) string {
	if rt.Text != nil {
		return rt.Text.Content
	}
	return ""
}

func firstText(p *blockPayload) (string, bool) {
	if p == nil || len(p.RichText) == 0 {
		return "", false
	}
	return textOf(p.RichText[0]), true
}

// encodeBlock maps a domain block onto its wire variant.
func encodeBlock(b blocks.Block) wireBlock {
	w := wireBlock{Object: "block"}
	payload := &blockPayload{RichText: richTextOf(b.Text)}
	switch b.Kind {
	case blocks.KindHeading:
		switch b.Level {
		case 2:
			w.Type, w.Heading2 = "heading_2", payload
		case 3:
			w.Type, w.Heading3 = "heading_3", payload
		default:
			w.Type, w.Heading1 = "heading_1", payload
		}
	case blocks.KindBullet:
		w.Type, w.Bulleted = "bulleted_list_item", payload
	case blocks.KindNumbered:
		w.Type, w.Numbered = "numbered_list_item", payload
	case blocks.KindCode:
		w.Type = "code"
		w.Code = &codePayload{Language: b.Language, RichText: richTextOf(b.Text)}
	default:
		w.Type, w.Paragraph = "paragraph", payload
	}
	return w
}

func encodeBlocks(blks []blocks.Block) []wireBlock {
	out := make([]wireBlock, 0, len(blks))
	for _, b := range blks {
		out = append(out, encodeBlock(b))
	}
	return out
}

// decodeBlock maps a wire block back onto the domain. Unknown block types
// and variants carrying no rich text are dropped (ok == false): a page must
// read back even when it holds content this vocabulary does not model.
func decodeBlock(w wireBlock) (blocks.Block, bool) {
	switch w.Type {
	case "paragraph":
		if text, ok := firstText(w.Paragraph); ok {
			return blocks.Paragraph(text), true
		}
	case "heading_1":
		if text, ok := firstText(w.Heading1); ok {
			return blocks.Heading(1, text), true
		}
	case "heading_2":
		if text, ok := firstText(w.Heading2); ok {
			return blocks.Heading(2, text), true
		}
	case "heading_3":
		if text, ok := firstText(w.Heading3); ok {
			return blocks.Heading(3, text), true
		}
	case "bulleted_list_item":
		if text, ok := firstText(w.Bulleted); ok {
			return blocks.Bullet(text), true
		}
	case "numbered_list_item":
		if text, ok := firstText(w.Numbered); ok {
			return blocks.Numbered(text), true
		}
	case "code":
		if w.Code != nil && len(w.Code.RichText) > 0 {
			return blocks.Code(w.Code.Language, textOf(w.Code.RichText[0])), true
		}
	}
	return blocks.Block{}, false
}

func decodeBlocks(ws []wireBlock) []blocks.Block {
	var out []blocks.Block
	for _, w := range ws {
		if b, ok := decodeBlock(w); ok {
			out = append(out, b)
		}
	}
	return out
}

// pageTitle resolves the display title from the two conventional
// title-bearing property slots, "title" then "Name". A page populating
// neither resolves to the empty string, never an error.
func pageTitle(p wirePage) string {
	for _, slot := range []string{"title", "Name"} {
		prop, ok := p.Properties[slot]
		if !ok || len(prop.Title) == 0 {
			continue
		}
		return textOf(prop.Title[0])
	}
	return ""
}

func toPage(p wirePage) models.Page {
	return models.Page{
		ID:             p.ID,
		URL:            p.URL,
		Title:          pageTitle(p),
		CreatedTime:    p.CreatedTime,
		LastEditedTime: p.LastEditedTime,
	}
}
