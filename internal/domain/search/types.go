package search

// ReasoningEffort tunes how much work the deep search provider spends on a
// query before answering.
type ReasoningEffort string

const (
	EffortLow    ReasoningEffort = "low"
	EffortMedium ReasoningEffort = "medium"
	EffortHigh   ReasoningEffort = "high"
)

// SearchRequest represents a web search query.
type SearchRequest struct {
	Query string `json:"query"`
	Site  string `json:"site,omitempty"` // restrict results to this domain
}

// SearchResult is a single normalized search hit. Provider usage and meta
// fields are dropped during normalization.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Date        string `json:"date,omitempty"`
}

// PageContent is the normalized result of reading a single page.
type PageContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Content     string `json:"content"` // markdown
}

// DeepSearchRequest represents a multi-step research query.
type DeepSearchRequest struct {
	Query           string          `json:"query"`
	ReasoningEffort ReasoningEffort `json:"reasoning_effort,omitempty"`
	NoDirectAnswer  bool            `json:"no_direct_answer,omitempty"`
}

// URLCitation points at the quoted source backing an annotation.
type URLCitation struct {
	Title      string `json:"title,omitempty"`
	ExactQuote string `json:"exactQuote,omitempty"`
	URL        string `json:"url,omitempty"`
	DateTime   string `json:"dateTime,omitempty"`
}

// Annotation attaches a citation to a span of deep search output.
type Annotation struct {
	Type        string       `json:"type"`
	URLCitation *URLCitation `json:"url_citation,omitempty"`
}

// DeepSearchResult is the final answer extracted from the deep search
// stream: the last complete update the provider emitted.
type DeepSearchResult struct {
	Content     string       `json:"content"`
	Annotations []Annotation `json:"annotations,omitempty"`
	VisitedURLs []string     `json:"visitedURLs,omitempty"`
	ReadURLs    []string     `json:"readURLs,omitempty"`
}
