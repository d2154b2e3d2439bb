// Package notion implements the remote page store gateway: a typed client
// for the Notion REST API with batched, partial-failure-tolerant writes.
package notion

import (
	"context"
	"strings"

	"github.com/starford/ansuz/internal/blocks"
	"github.com/starford/ansuz/internal/models"
)

// Provider is the interface for remote page operations. Client implements
// it against the live API; tests substitute fakes.
type Provider interface {
	// Search returns the workspace pages matching query, in the remote
	// store's result order. Only the first result page is fetched.
	Search(ctx context.Context, query string) ([]models.Page, error)
	// CreatePage creates a page under parentID carrying the given content
	// blocks. The returned ref always has a non-empty ID.
	CreatePage(ctx context.Context, parentID, title string, children []blocks.Block) (models.PageRef, error)
	// AppendBlocks appends children to a page in document order, chunked
	// into batches under the per-call block limit. A failed batch is
	// logged and skipped; later batches are still issued.
	AppendBlocks(ctx context.Context, pageID string, children []blocks.Block) error
	// ListBlocks returns the page's direct children as domain blocks,
	// dropping content the block vocabulary does not model.
	ListBlocks(ctx context.Context, pageID string) ([]blocks.Block, error)
	// ClearBlocks deletes every direct child of the page. A child that
	// fails to delete is logged and skipped.
	ClearBlocks(ctx context.Context, pageID string) error
	// RetrievePage fetches a single page summary.
	RetrievePage(ctx context.Context, pageID string) (models.Page, error)
}

// PageURL derives the canonical display URL for a page ID. Append results
// carry a derived URL because the append endpoint does not return one.
func PageURL(id string) string {
	return "https://notion.so/" + strings.ReplaceAll(id, "-", "")
}
