package store

import "context"

// Collection names shared by the store and its gateways.
const (
	CollectionListings      = "listings"
	CollectionOffers        = "offers"
	CollectionBroadcasts    = "broadcasts"
	CollectionChats         = "chats"
	CollectionMessages      = "messages"
	CollectionNotifications = "notifications"
	CollectionSavedListings = "saved_listings"
	CollectionViewHistory   = "view_history"
	CollectionUsers         = "users"
)

// Gateway is the durable read-write contract behind the entity store: keyed
// documents scoped per collection, strongly consistent per single key, no
// transactions spanning keys. Values are JSON-encoded entities.
type Gateway interface {
	Get(ctx context.Context, collection, key string) ([]byte, error)
	Set(ctx context.Context, collection, key string, value []byte) error
	Delete(ctx context.Context, collection, key string) error
	List(ctx context.Context, collection string) (map[string][]byte, error)
}
