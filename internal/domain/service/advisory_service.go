package service

import "context"

// ListingSuggestion is the advisor's take on a draft listing.
type ListingSuggestion struct {
	Description    string `json:"description"`
	SuggestedPrice int64  `json:"suggestedPrice"`
	Intent         string `json:"intent"`
}

type AdviceTurn struct {
	Role    string `json:"role"` // "user" or "model"
	Content string `json:"content"`
}

type Advice struct {
	Text    string   `json:"text"`
	Sources []string `json:"sources"`
}

// AdvisoryService wraps the generative-AI backend. Calls are fallible remote
// requests; listing creation must proceed without suggestions on failure.
type AdvisoryService interface {
	SuggestListing(ctx context.Context, title, condition, category string) (*ListingSuggestion, error)
	Advise(ctx context.Context, query string, history []AdviceTurn) (*Advice, error)
}
