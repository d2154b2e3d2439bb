// Package models defines the domain types for Ansuz.
package models

// PageRef identifies a remote Notion page. ID is the stable key; URL is
// display-only and may be derived from the ID.
type PageRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Page is the summary of a remote page as returned by search and retrieve.
// Timestamps are passed through as the wire's RFC3339 strings; they are
// display data and a malformed remote value must never fail a read.
type Page struct {
	ID             string `json:"id"`
	URL            string `json:"url"`
	Title          string `json:"title"`
	CreatedTime    string `json:"created_time"`
	LastEditedTime string `json:"last_edited_time"`
}

// Ref returns the page's identity pair.
func (p Page) Ref() PageRef {
	return PageRef{ID: p.ID, URL: p.URL}
}
