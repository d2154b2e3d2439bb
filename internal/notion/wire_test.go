package notion

import (
	"testing"

	"github.com/starford/ansuz/internal/blocks"
)

func TestEncodeBlock_Types(t *testing.T) {
	cases := []struct {
		in   blocks.Block
		want string
	}{
		{blocks.Heading(1, "h"), "heading_1"},
		{blocks.Heading(2, "h"), "heading_2"},
		{blocks.Heading(3, "h"), "heading_3"},
		{blocks.Bullet("item"), "bulleted_list_item"},
		{blocks.Numbered("item"), "numbered_list_item"},
		{blocks.Code("go", "x := 1"), "code"},
		{blocks.Paragraph("text"), "paragraph"},
	}
	for _, tc := range cases {
		got := encodeBlock(tc.in)
		if got.Type != tc.want {
			t.Errorf("encodeBlock(%s) type = %q, want %q", tc.in.Kind, got.Type, tc.want)
		}
		if got.Object != "block" {
			t.Errorf("encodeBlock(%s) object = %q, want block", tc.in.Kind, got.Object)
		}
	}
}

func TestEncodeBlock_CodeCarriesLanguage(t *testing.T) {
	w := encodeBlock(blocks.Code("python", "print(1)"))
	if w.Code == nil {
		t.Fatal("expected code payload")
	}
	if w.Code.Language != "python" {
		t.Fatalf("language = %q, want python", w.Code.Language)
	}
	if len(w.Code.RichText) != 1 || w.Code.RichText[0].Text.Content != "print(1)" {
		t.Fatalf("unexpected rich text: %+v", w.Code.RichText)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := []blocks.Block{
		blocks.Heading(1, "Title"),
		blocks.Heading(2, "Section"),
		blocks.Heading(3, "Subsection"),
		blocks.Bullet("first"),
		blocks.Numbered("step"),
		blocks.Code("go", "fmt.Println()"),
		blocks.Code("", "no language"),
		blocks.Paragraph("plain prose"),
	}
	for _, b := range cases {
		got, ok := decodeBlock(encodeBlock(b))
		if !ok {
			t.Errorf("decodeBlock dropped %s", b.Kind)
			continue
		}
		if got != b {
			t.Errorf("round trip changed block: got %+v, want %+v", got, b)
		}
	}
}

func TestDecodeBlock_UnknownTypeDropped(t *testing.T) {
	if _, ok := decodeBlock(wireBlock{Type: "divider"}); ok {
		t.Fatal("expected unknown type to be dropped")
	}
}

func TestDecodeBlock_EmptyRichTextDropped(t *testing.T) {
	w := wireBlock{Type: "paragraph", Paragraph: &blockPayload{}}
	if _, ok := decodeBlock(w); ok {
		t.Fatal("expected empty paragraph to be dropped")
	}
}

func TestDecodeBlocks_SkipsUnsupported(t *testing.T) {
	ws := []wireBlock{
		encodeBlock(blocks.Paragraph("keep")),
		{Type: "divider"},
		encodeBlock(blocks.Bullet("also keep")),
	}
	got := decodeBlocks(ws)
	if len(got) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(got))
	}
	if got[0].Text != "keep" || got[1].Text != "also keep" {
		t.Fatalf("unexpected blocks: %+v", got)
	}
}

func TestEncodeBlocks_EmptyIsNotNil(t *testing.T) {
	got := encodeBlocks(nil)
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no blocks, got %d", len(got))
	}
}

func TestPageTitle_TitleSlot(t *testing.T) {
	p := wirePage{Properties: map[string]titleProperty{
		"title": {Title: richTextOf("Weekly Notes")},
	}}
	if got := pageTitle(p); got != "Weekly Notes" {
		t.Fatalf("title = %q, want Weekly Notes", got)
	}
}

func TestPageTitle_NameSlotFallback(t *testing.T) {
	p := wirePage{Properties: map[string]titleProperty{
		"Name": {Title: richTextOf("Task Board")},
	}}
	if got := pageTitle(p); got != "Task Board" {
		t.Fatalf("title = %q, want Task Board", got)
	}
}

func TestPageTitle_EmptyTitleSlotFallsThrough(t *testing.T) {
	p := wirePage{Properties: map[string]titleProperty{
		"title": {},
		"Name":  {Title: richTextOf("Fallback")},
	}}
	if got := pageTitle(p); got != "Fallback" {
		t.Fatalf("title = %q, want Fallback", got)
	}
}

func TestPageTitle_MissingIsEmpty(t *testing.T) {
	if got := pageTitle(wirePage{}); got != "" {
		t.Fatalf("title = %q, want empty", got)
	}
}

func TestToPage(t *testing.T) {
	p := toPage(wirePage{
		ID:             "abc-123",
		URL:            "https://notion.so/abc123",
		CreatedTime:    "2024-01-02T03:04:05.000Z",
		LastEditedTime: "2024-01-03T03:04:05.000Z",
		Properties: map[string]titleProperty{
			"title": {Title: richTextOf("Journal")},
		},
	})
	if p.ID != "abc-123" || p.URL != "https://notion.so/abc123" {
		t.Fatalf("unexpected ref fields: %+v", p)
	}
	if p.Title != "Journal" {
		t.Fatalf("title = %q, want Journal", p.Title)
	}
	if p.CreatedTime != "2024-01-02T03:04:05.000Z" || p.LastEditedTime != "2024-01-03T03:04:05.000Z" {
		t.Fatalf("unexpected timestamps: %+v", p)
	}
}
