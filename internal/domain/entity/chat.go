package entity

import "time"

// Chat is a conversation thread. Peer chats are keyed by the canonical
// (buyerId, sellerId, listingId) triple; the support channel is a singleton
// per user with IsSupport set.
type Chat struct {
	ID           string   `json:"id"`
	Participants []string `json:"participants"`
	BuyerID      string   `json:"buyer_id,omitempty"`
	SellerID     string   `json:"seller_id,omitempty"`
	ListingID    string   `json:"listing_id,omitempty"`
	// Denormalized listing context shown in the thread header.
	ListingTitle string `json:"listing_title,omitempty"`
	ListingPrice int64  `json:"listing_price,omitempty"`
	ListingImage string `json:"listing_image,omitempty"`
	IsSupport    bool   `json:"is_support"`
	// LastMessage/LastMessageAt cache the tail of the message sequence and
	// are updated together with every append.
	LastMessage   string    `json:"last_message,omitempty"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasParticipant reports whether userID takes part in the chat.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
