package pagewriter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/blocks"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/notion"
)

// Mode selects what a write does when the target page already exists.
type Mode string

const (
	// ModeReplace rewrites the page. Unless the service is configured to
	// clear existing blocks first, it behaves exactly like ModeAppend.
	ModeReplace Mode = "replace"
	// ModeAppend adds content after the page's existing blocks.
	ModeAppend Mode = "append"
)

// ParseMode maps the wire string onto a Mode. The empty string means
// ModeReplace.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeReplace, "":
		return ModeReplace, nil
	case ModeAppend:
		return ModeAppend, nil
	}
	return "", fmt.Errorf("pagewriter: unknown mode %q", s)
}

// Status reports which path a write took.
type Status string

const (
	StatusCreated  Status = "created"
	StatusAppended Status = "appended"
)

// WriteRequest describes one upsert.
type WriteRequest struct {
	Title    string
	Content  string
	ParentID string
	Mode     Mode
}

// WriteResult is the outcome of a successful write.
type WriteResult struct {
	Status  Status `json:"status"`
	PageID  string `json:"page_id"`
	PageURL string `json:"page_url"`
}

// PageContent is the rendered read-back of a page.
type PageContent struct {
	PageID         string `json:"page_id"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	Content        string `json:"content"`
	CreatedTime    string `json:"created_time"`
	LastEditedTime string `json:"last_edited_time"`
}

// Options tunes a Service.
type Options struct {
	// DefaultParentID hosts pages created without an explicit parent.
	DefaultParentID string
	// ReplaceClears makes ModeReplace delete the page's existing blocks
	// before writing. Off, replace degrades to append.
	ReplaceClears bool
	Logger        *slog.Logger
}

// Service runs the search, create and append workflow over the remote
// page store.
type Service struct {
	provider        notion.Provider
	defaultParentID string
	replaceClears   bool
	logger          *slog.Logger
}

// NewService creates a page writer over provider.
func NewService(provider notion.Provider, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider:        provider,
		defaultParentID: strings.TrimSpace(opts.DefaultParentID),
		replaceClears:   opts.ReplaceClears,
		logger:          logger,
	}
}

// Write upserts content under the page titled req.Title: append when a
// page with that title already exists, create otherwise. A search failure
// aborts the write rather than risking a duplicate page.
func (s *Service) Write(ctx context.Context, req WriteRequest) (*WriteResult, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.ErrEmptyTitle
	}

	page, found, err := s.findByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("pagewriter: search for %q: %w", title, err)
	}

	content := blocks.Parse(req.Content)

	if !found {
		parentID := strings.TrimSpace(req.ParentID)
		if parentID == "" {
			parentID = s.defaultParentID
		}
		if parentID == "" {
			return nil, apperr.ErrNoParentPage
		}
		ref, err := s.provider.CreatePage(ctx, parentID, title, content)
		if err != nil {
			return nil, fmt.Errorf("pagewriter: create %q: %w", title, err)
		}
		s.logger.Info("created page",
			slog.String("title", title),
			slog.String("page_id", ref.ID),
			slog.Int("blocks", len(content)))
		return &WriteResult{Status: StatusCreated, PageID: ref.ID, PageURL: ref.URL}, nil
	}

	if req.Mode == ModeReplace && s.replaceClears {
		// A failed clear aborts: the page must not end up holding old and
		// new content interleaved.
		if err := s.provider.ClearBlocks(ctx, page.ID); err != nil {
			return nil, fmt.Errorf("pagewriter: clear %q: %w", title, err)
		}
	}
	if err := s.provider.AppendBlocks(ctx, page.ID, content); err != nil {
		return nil, fmt.Errorf("pagewriter: append to %q: %w", title, err)
	}
	s.logger.Info("appended to page",
		slog.String("title", title),
		slog.String("page_id", page.ID),
		slog.Int("blocks", len(content)))
	return &WriteResult{Status: StatusAppended, PageID: page.ID, PageURL: notion.PageURL(page.ID)}, nil
}

// CreatePlain creates a page under the default parent holding content as a
// single paragraph, without searching for an existing page and without
// parsing the content.
func (s *Service) CreatePlain(ctx context.Context, title, content string) (*models.PageRef, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.ErrEmptyTitle
	}
	if s.defaultParentID == "" {
		return nil, apperr.ErrNoParentPage
	}
	ref, err := s.provider.CreatePage(ctx, s.defaultParentID, title, []blocks.Block{blocks.Paragraph(content)})
	if err != nil {
		return nil, fmt.Errorf("pagewriter: create %q: %w", title, err)
	}
	s.logger.Info("created page",
		slog.String("title", title),
		slog.String("page_id", ref.ID))
	return &ref, nil
}

// ReadPage retrieves a page and renders its blocks back to plain text.
func (s *Service) ReadPage(ctx context.Context, pageID string) (*PageContent, error) {
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return nil, fmt.Errorf("pagewriter: page id is empty")
	}
	page, err := s.provider.RetrievePage(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("pagewriter: retrieve %s: %w", pageID, err)
	}
	blks, err := s.provider.ListBlocks(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("pagewriter: list blocks of %s: %w", pageID, err)
	}
	return &PageContent{
		PageID:         page.ID,
		Title:          page.Title,
		URL:            page.URL,
		Content:        blocks.Render(blks),
		CreatedTime:    page.CreatedTime,
		LastEditedTime: page.LastEditedTime,
	}, nil
}

// SearchPages returns the pages matching query.
func (s *Service) SearchPages(ctx context.Context, query string) ([]models.Page, error) {
	pages, err := s.provider.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pagewriter: search: %w", err)
	}
	return pages, nil
}

// findByTitle searches for title and picks the first hit whose display
// title matches case-insensitively.
func (s *Service) findByTitle(ctx context.Context, title string) (models.Page, bool, error) {
	pages, err := s.provider.Search(ctx, title)
	if err != nil {
		return models.Page{}, false, err
	}
	for _, p := range pages {
		if strings.EqualFold(p.Title, title) {
			return p, true, nil
		}
	}
	return models.Page{}, false, nil
}
