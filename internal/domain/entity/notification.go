package entity

import "time"

type NotificationType string

const (
	NotificationMatch     NotificationType = "match"
	NotificationPriceDrop NotificationType = "price_drop"
	NotificationOffer     NotificationType = "offer"
	NotificationSystem    NotificationType = "system"
	NotificationTrending  NotificationType = "trending"
	NotificationPayment   NotificationType = "payment"
)

// ActionType enumerates what tapping a notification does in the client.
type ActionType string

const (
	ActionViewListing ActionType = "view_listing"
	ActionViewOffer   ActionType = "view_offer"
	ActionNavigateTab ActionType = "navigate_tab"
)

// ActionPayload is a typed pointer back into client navigation state.
// ID is set for view_listing/view_offer, Tab for navigate_tab.
type ActionPayload struct {
	Type ActionType `json:"type"`
	ID   string     `json:"id,omitempty"`
	Tab  string     `json:"tab,omitempty"`
}

// Valid reports whether the payload carries the argument its type requires.
func (a *ActionPayload) Valid() bool {
	switch a.Type {
	case ActionViewListing, ActionViewOffer:
		return a.ID != ""
	case ActionNavigateTab:
		return a.Tab != ""
	}
	return false
}

type Notification struct {
	ID           string           `json:"id"`
	RecipientID  string           `json:"recipient_id"`
	Type         NotificationType `json:"type"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	IsRead       bool             `json:"is_read"`
	RelatedImage string           `json:"related_image,omitempty"`
	ActionLabel  string           `json:"action_label,omitempty"`
	Action       *ActionPayload   `json:"action,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}
