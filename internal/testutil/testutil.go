// Package testutil provides shared test helpers: a quiet logger and an
// in-memory stand-in for the Notion backend.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/starford/ansuz/internal/blocks"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/notion"
)

// SilentLogger returns a logger that discards all records, keeping test
// output readable.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateCall records one CreatePage invocation.
type CreateCall struct {
	ParentID string
	Title    string
	Children []blocks.Block
}

// AppendCall records one AppendBlocks invocation.
type AppendCall struct {
	PageID   string
	Children []blocks.Block
}

// FakeNotion is an in-memory notion.Provider. Search returns every seeded
// page regardless of query, which leaves title matching entirely to the
// caller under test. Error fields, when set, are returned by the matching
// method before any state changes.
type FakeNotion struct {
	mu sync.Mutex

	Pages    []models.Page
	Children map[string][]blocks.Block

	SearchErr   error
	CreateErr   error
	AppendErr   error
	ListErr     error
	ClearErr    error
	RetrieveErr error

	SearchQueries []string
	Creates       []CreateCall
	Appends       []AppendCall
	Cleared       []string

	nextID int
}

var _ notion.Provider = (*FakeNotion)(nil)

func NewFakeNotion() *FakeNotion {
	return &FakeNotion{Children: make(map[string][]blocks.Block)}
}

// AddPage seeds a page with a generated ID and URL and returns it.
func (f *FakeNotion) AddPage(title string) models.Page {
	f.mu.Lock()
	defer f.mu.Unlock()
	page := f.newPage(title)
	f.Pages = append(f.Pages, page)
	return page
}

func (f *FakeNotion) newPage(title string) models.Page {
	f.nextID++
	id := fmt.Sprintf("page-%d", f.nextID)
	return models.Page{
		ID:    id,
		URL:   "https://notion.so/" + id,
		Title: title,
	}
}

func (f *FakeNotion) Search(ctx context.Context, query string) ([]models.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SearchQueries = append(f.SearchQueries, query)
	if f.SearchErr != nil {
		return nil, f.SearchErr
	}
	out := make([]models.Page, len(f.Pages))
	copy(out, f.Pages)
	return out, nil
}

func (f *FakeNotion) CreatePage(ctx context.Context, parentID, title string, children []blocks.Block) (models.PageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Creates = append(f.Creates, CreateCall{ParentID: parentID, Title: title, Children: children})
	if f.CreateErr != nil {
		return models.PageRef{}, f.CreateErr
	}
	page := f.newPage(title)
	f.Pages = append(f.Pages, page)
	f.Children[page.ID] = append([]blocks.Block(nil), children...)
	return page.Ref(), nil
}

func (f *FakeNotion) AppendBlocks(ctx context.Context, pageID string, children []blocks.Block) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Appends = append(f.Appends, AppendCall{PageID: pageID, Children: children})
	if f.AppendErr != nil {
		return f.AppendErr
	}
	f.Children[pageID] = append(f.Children[pageID], children...)
	return nil
}

func (f *FakeNotion) ListBlocks(ctx context.Context, pageID string) ([]blocks.Block, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]blocks.Block, len(f.Children[pageID]))
	copy(out, f.Children[pageID])
	return out, nil
}

func (f *FakeNotion) ClearBlocks(ctx context.Context, pageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Cleared = append(f.Cleared, pageID)
	if f.ClearErr != nil {
		return f.ClearErr
	}
	delete(f.Children, pageID)
	return nil
}

func (f *FakeNotion) RetrievePage(ctx context.Context, pageID string) (models.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RetrieveErr != nil {
		return models.Page{}, f.RetrieveErr
	}
	for _, p := range f.Pages {
		if p.ID == pageID {
			return p, nil
		}
	}
	return models.Page{}, fmt.Errorf("testutil: page %s not found", pageID)
}
