package entity

import "time"

type OfferStatus string

const (
	OfferPending   OfferStatus = "pending"
	OfferAccepted  OfferStatus = "accepted"
	OfferDeclined  OfferStatus = "declined"
	OfferCountered OfferStatus = "countered"
)

type Offer struct {
	ID           string      `json:"id"`
	ListingID    string      `json:"listing_id"`
	ListingTitle string      `json:"listing_title"`
	ListingImage string      `json:"listing_image,omitempty"`
	SellerID     string      `json:"seller_id"`
	BuyerID      string      `json:"buyer_id"`
	BuyerName    string      `json:"buyer_name"`
	BuyerAvatar  string      `json:"buyer_avatar,omitempty"`
	// OriginalPrice is the listing price snapshotted at offer time; it never
	// changes even if the listing is later edited.
	OriginalPrice int64       `json:"original_price"`
	OfferedPrice  int64       `json:"offered_price"`
	Message       string      `json:"message,omitempty"`
	Status        OfferStatus `json:"status"`
	// ReviewerID is the counterpart of whoever proposed the current price.
	// Only the reviewer may accept, decline, or counter the offer.
	ReviewerID string `json:"reviewer_id"`
	// CounterOf links a counter back to the offer it supersedes.
	CounterOf string    `json:"counter_of,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Open reports whether the offer still awaits the reviewer's decision.
func (o *Offer) Open() bool {
	return o.Status == OfferPending
}
