package models

// SearchResult is a single result from the external search collaborator.
// Only URL is load-bearing; Title and Snippet are carried for diagnostics.
type SearchResult struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}
