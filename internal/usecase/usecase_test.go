package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sellit/internal/adapter/gateway"
	"sellit/internal/domain/entity"
	"sellit/internal/infrastructure/ratelimit"
	"sellit/internal/store"
)

// fixture wires every usecase to a fresh in-memory store.
type fixture struct {
	store         *store.EntityStore
	listings      *ListingUseCase
	offers        *OfferUseCase
	chats         *ChatUseCase
	broadcasts    *BroadcastUseCase
	notifications *NotificationUseCase
	users         *UserUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	es := store.NewEntityStore(gateway.NewMemoryGateway())
	notifier := NewNotifier(es.Notifications(), nil)
	rateLimiter := ratelimit.NewRateLimiter()
	t.Cleanup(rateLimiter.Stop)

	return &fixture{
		store: es,
		listings: NewListingUseCase(
			es.Listings(), es.SavedListings(), es.ViewHistory(), es.Offers(), es.Users(),
			notifier, 7*24*time.Hour,
		),
		offers: NewOfferUseCase(
			es.Offers(), es.Listings(), es.Chats(), es.Users(), notifier, rateLimiter,
		),
		chats: NewChatUseCase(
			es.Chats(), es.Listings(), es.Broadcasts(), es.Users(), nil, rateLimiter,
		),
		broadcasts:    NewBroadcastUseCase(es.Broadcasts(), es.Users()),
		notifications: NewNotificationUseCase(es.Notifications()),
		users:         NewUserUseCase(es.Users()),
	}
}

func (f *fixture) seedUser(t *testing.T, id, name string) {
	t.Helper()
	err := f.store.Users().Upsert(context.Background(), &entity.User{
		ID:    id,
		Name:  name,
		Email: id + "@campus.edu",
	})
	require.NoError(t, err)
}

func (f *fixture) seedListing(t *testing.T, sellerID, title string, price int64) *entity.Listing {
	t.Helper()
	listing, err := f.listings.CreateListing(context.Background(), sellerID, CreateListingInput{
		Title:    title,
		Price:    price,
		Category: "Furniture",
	})
	require.NoError(t, err)
	return listing
}
