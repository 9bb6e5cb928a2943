package entity

import "time"

type ListingStatus string

const (
	ListingAvailable ListingStatus = "available"
	ListingCommitted ListingStatus = "committed"
	ListingSold      ListingStatus = "sold"
)

var listingStatusRank = map[ListingStatus]int{
	ListingAvailable: 0,
	ListingCommitted: 1,
	ListingSold:      2,
}

// CanTransition reports whether moving to next keeps the status moving
// forward through available -> committed -> sold. Direct available -> sold
// is allowed; backward moves never are.
func (s ListingStatus) CanTransition(next ListingStatus) bool {
	from, ok := listingStatusRank[s]
	if !ok {
		return false
	}
	to, ok := listingStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

type Listing struct {
	ID           string        `json:"id"`
	SellerID     string        `json:"seller_id"`
	SellerName   string        `json:"seller_name"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Price        int64         `json:"price"` // whole Naira
	Category     string        `json:"category"`
	Location     string        `json:"location"`
	ImageURL     string        `json:"image_url"`
	IsUrgent     bool          `json:"is_urgent"`
	IsNegotiable bool          `json:"is_negotiable"`
	IsBoosted    bool          `json:"is_boosted"`
	BoostedUntil *time.Time    `json:"boosted_until,omitempty"`
	Status       ListingStatus `json:"status"`
	ViewCount    int           `json:"view_count"`
	OfferCount   int           `json:"offer_count"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ViewRecord is one entry in a viewer's personal view history, at most one
// per listing per viewer. LastViewedPrice feeds price-drop detection.
type ViewRecord struct {
	ListingID       string    `json:"listing_id"`
	LastViewedPrice int64     `json:"last_viewed_price"`
	ViewedAt        time.Time `json:"viewed_at"`
}

// ViewHistory is the per-user view history document persisted to the gateway.
type ViewHistory struct {
	UserID  string                 `json:"user_id"`
	Records map[string]*ViewRecord `json:"records"`
}

// SavedListings is the per-user saved-set document persisted to the gateway.
type SavedListings struct {
	UserID     string   `json:"user_id"`
	ListingIDs []string `json:"listing_ids"`
}
