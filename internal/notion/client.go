package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/blocks"
	"github.com/starford/ansuz/internal/models"
)

const (
	defaultBaseURL      = "https://api.notion.com"
	defaultAPIVersion   = "2022-06-28"
	defaultTimeout      = 30 * time.Second
	defaultMaxRetries   = 3
	defaultBaseDelay    = 200 * time.Millisecond
	defaultMaxDelay     = 3 * time.Second
	defaultMaxBatchSize = 100
)

// Options configures a Client. Token is required; every other zero field
// falls back to a default.
type Options struct {
	Token        string
	BaseURL      string
	APIVersion   string
	HTTPClient   *http.Client
	Timeout      time.Duration
	MaxRetries   int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	MaxBatchSize int
	Logger       *slog.Logger
}

// Client talks to the Notion REST API. Construction is pure: no network
// traffic happens until the first call, and option problems come back as
// ordinary errors for the caller to handle.
type Client struct {
	baseURL      string
	token        string
	apiVersion   string
	httpClient   *http.Client
	maxRetries   int
	baseDelay    time.Duration
	maxDelay     time.Duration
	maxBatchSize int
	logger       *slog.Logger
}

var _ Provider = (*Client)(nil)

// NewClient validates opts and builds a Client.
func NewClient(opts Options) (*Client, error) {
	token := strings.TrimSpace(opts.Token)
	if token == "" {
		return nil, fmt.Errorf("notion: API token is required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiVersion := strings.TrimSpace(opts.APIVersion)
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	baseDelay := opts.BaseDelay
	if baseDelay <= 0 {
		baseDelay = defaultBaseDelay
	}
	maxDelay := opts.MaxDelay
	if maxDelay <= 0 {
		maxDelay = defaultMaxDelay
	}
	maxBatchSize := opts.MaxBatchSize
	if maxBatchSize <= 0 {
		maxBatchSize = defaultMaxBatchSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:      baseURL,
		token:        token,
		apiVersion:   apiVersion,
		httpClient:   httpClient,
		maxRetries:   maxRetries,
		baseDelay:    baseDelay,
		maxDelay:     maxDelay,
		maxBatchSize: maxBatchSize,
		logger:       logger,
	}, nil
}

// Search queries the workspace for pages matching query.
func (c *Client) Search(ctx context.Context, query string) ([]models.Page, error) {
	req := searchRequest{Query: query, Filter: searchFilter{Property: "object", Value: "page"}}
	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, "/v1/search", req, &resp); err != nil {
		return nil, err
	}
	pages := make([]models.Page, 0, len(resp.Results))
	for _, p := range resp.Results {
		pages = append(pages, toPage(p))
	}
	return pages, nil
}

// CreatePage creates a page under parentID. At most maxBatchSize children
// ride along with the create call itself; the remainder is appended in
// batches so no single call exceeds the per-call block limit.
func (c *Client) CreatePage(ctx context.Context, parentID, title string, children []blocks.Block) (models.PageRef, error) {
	head := children
	var tail []blocks.Block
	if len(children) > c.maxBatchSize {
		head, tail = children[:c.maxBatchSize], children[c.maxBatchSize:]
	}

	req := createPageRequest{
		Parent:     parentRef{Type: "page_id", PageID: parentID},
		Properties: map[string]titleProperty{"title": {Title: richTextOf(title)}},
		Children:   encodeBlocks(head),
	}
	var resp wirePage
	if err := c.do(ctx, http.MethodPost, "/v1/pages", req, &resp); err != nil {
		return models.PageRef{}, err
	}
	if resp.ID == "" {
		return models.PageRef{}, fmt.Errorf("notion: create returned no page id")
	}

	if len(tail) > 0 {
		if err := c.AppendBlocks(ctx, resp.ID, tail); err != nil {
			return models.PageRef{}, err
		}
	}
	return models.PageRef{ID: resp.ID, URL: resp.URL}, nil
}

// AppendBlocks appends children to the page in document order, chunked into
// batches of at most maxBatchSize, issued strictly sequentially. A failed
// batch is logged and skipped so later content still lands; only context
// cancellation stops the loop.
func (c *Client) AppendBlocks(ctx context.Context, pageID string, children []blocks.Block) error {
	for i, batch := range chunkBlocks(children, c.maxBatchSize) {
		req := appendChildrenRequest{Children: encodeBlocks(batch)}
		if err := c.do(ctx, http.MethodPatch, "/v1/blocks/"+pageID+"/children", req, nil); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("append batch failed",
				slog.String("page_id", pageID),
				slog.Int("batch", i+1),
				slog.Int("size", len(batch)),
				slog.String("error", err.Error()))
			continue
		}
		c.logger.Debug("appended batch",
			slog.String("page_id", pageID),
			slog.Int("size", len(batch)))
	}
	return nil
}

// ListBlocks returns the page's direct children.
func (c *Client) ListBlocks(ctx context.Context, pageID string) ([]blocks.Block, error) {
	var resp childrenResponse
	if err := c.do(ctx, http.MethodGet, "/v1/blocks/"+pageID+"/children", nil, &resp); err != nil {
		return nil, err
	}
	return decodeBlocks(resp.Results), nil
}

// ClearBlocks deletes every direct child of the page. Individual delete
// failures follow the append loop's partial-failure policy; the error
// return is reserved for the listing call and cancellation.
func (c *Client) ClearBlocks(ctx context.Context, pageID string) error {
	var resp childrenResponse
	if err := c.do(ctx, http.MethodGet, "/v1/blocks/"+pageID+"/children", nil, &resp); err != nil {
		return err
	}
	for _, child := range resp.Results {
		if child.ID == "" {
			continue
		}
		if err := c.do(ctx, http.MethodDelete, "/v1/blocks/"+child.ID, nil, nil); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("delete block failed",
				slog.String("page_id", pageID),
				slog.String("block_id", child.ID),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

// RetrievePage fetches a single page summary.
func (c *Client) RetrievePage(ctx context.Context, pageID string) (models.Page, error) {
	var resp wirePage
	if err := c.do(ctx, http.MethodGet, "/v1/pages/"+pageID, nil, &resp); err != nil {
		return models.Page{}, err
	}
	return toPage(resp), nil
}

// do issues one API call, retrying transport errors, 429 and 5xx with
// capped exponential backoff and honouring Retry-After. A nil out skips
// response decoding.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("notion: encode request: %w", err)
		}
	}
	url := c.baseURL + path

	for attempt := 0; ; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return fmt.Errorf("notion: build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Notion-Version", c.apiVersion)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if attempt < c.maxRetries {
				if waitErr := sleepContext(ctx, c.retryDelay(attempt+1, "")); waitErr != nil {
					return waitErr
				}
				continue
			}
			return fmt.Errorf("notion: %s %s: %w", method, path, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("notion: read response: %w", readErr)
		}

		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			if out == nil {
				return nil
			}
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("notion: decode response: %w", err)
			}
			return nil
		}

		if retryable(resp.StatusCode) && attempt < c.maxRetries {
			if waitErr := sleepContext(ctx, c.retryDelay(attempt+1, resp.Header.Get("Retry-After"))); waitErr != nil {
				return waitErr
			}
			continue
		}

		return apiError(resp.StatusCode, respBody)
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status <= 599)
}

func (c *Client) retryDelay(attempt int, retryAfterHeader string) time.Duration {
	if retryAfter := parseRetryAfterSeconds(retryAfterHeader); retryAfter > 0 {
		if retryAfter > c.maxDelay {
			return c.maxDelay
		}
		return retryAfter
	}
	delay := c.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= c.maxDelay {
			return c.maxDelay
		}
	}
	if delay > c.maxDelay {
		return c.maxDelay
	}
	return delay
}

func parseRetryAfterSeconds(header string) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// chunkBlocks splits blks into consecutive runs of at most size elements.
func chunkBlocks(blks []blocks.Block, size int) [][]blocks.Block {
	if len(blks) == 0 {
		return nil
	}
	if size <= 0 {
		size = defaultMaxBatchSize
	}
	chunks := make([][]blocks.Block, 0, (len(blks)+size-1)/size)
	for start := 0; start < len(blks); start += size {
		end := start + size
		if end > len(blks) {
			end = len(blks)
		}
		chunks = append(chunks, blks[start:end])
	}
	return chunks
}
