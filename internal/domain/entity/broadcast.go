package entity

import "time"

type BroadcastStatus string

const (
	BroadcastActive    BroadcastStatus = "active"
	BroadcastFulfilled BroadcastStatus = "fulfilled"
	BroadcastExpired   BroadcastStatus = "expired"
)

// Broadcast is a public "wanted" post from a prospective buyer.
type Broadcast struct {
	ID           string          `json:"id"`
	AuthorID     string          `json:"author_id"`
	AuthorName   string          `json:"author_name"`
	AuthorAvatar string          `json:"author_avatar,omitempty"`
	Need         string          `json:"need"`
	Details      string          `json:"details,omitempty"`
	MinBudget    int64           `json:"min_budget"`
	MaxBudget    int64           `json:"max_budget"`
	Location     string          `json:"location,omitempty"`
	Category     string          `json:"category"`
	IsBoosted    bool            `json:"is_boosted"`
	Status       BroadcastStatus `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}
