package search

// Result is a single ranked hit returned by Query. Scores are opaque
// positive values, comparable only within one query execution.
type Result struct {
	// Rank is the 1-based position in the returned ordering.
	Rank int `json:"rank"`

	// Score is the relevance score; higher means more relevant.
	Score float64 `json:"score"`

	Filename    string `json:"filename"`
	Path        string `json:"path"`
	Category    string `json:"category"`
	Product     string `json:"product"`
	Subcategory string `json:"subcategory"`
	Topic       string `json:"topic"`

	// Snippet is an excerpt of Content around the first query match.
	Snippet string `json:"snippet"`

	// Content is the full stored document body.
	Content string `json:"full_content"`
}

// Entry is a full stored index entry, returned by GetByProduct.
type Entry struct {
	Filename    string `json:"filename"`
	Path        string `json:"path"`
	Category    string `json:"category"`
	Product     string `json:"product"`
	Subcategory string `json:"subcategory"`
	Topic       string `json:"topic"`
	Content     string `json:"content"`
}

// Stats describes the state of the persisted index.
type Stats struct {
	// Indexed reports whether a persisted index has been loaded.
	Indexed bool `json:"indexed"`

	// DocumentCount is the number of indexed documents.
	DocumentCount int `json:"document_count"`

	// IndexPath is the directory holding the index files.
	IndexPath string `json:"index_path"`
}
