package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellit/internal/adapter/gateway"
	"sellit/internal/domain/entity"
	"sellit/internal/store"
)

// failingGateway refuses every durable write.
type failingGateway struct{}

func (failingGateway) Get(ctx context.Context, collection, key string) ([]byte, error) {
	return nil, fmt.Errorf("gateway down")
}

func (failingGateway) Set(ctx context.Context, collection, key string, value []byte) error {
	return fmt.Errorf("gateway down")
}

func (failingGateway) Delete(ctx context.Context, collection, key string) error {
	return fmt.Errorf("gateway down")
}

func (failingGateway) List(ctx context.Context, collection string) (map[string][]byte, error) {
	return map[string][]byte{}, nil
}

// The store is authoritative for the session: a dead gateway degrades
// durability, never correctness. Mutations still apply fully in memory.
func TestMutationsSurviveGatewayFailure(t *testing.T) {
	es := store.NewEntityStore(failingGateway{})
	ctx := context.Background()

	listing := &entity.Listing{
		SellerID: "seller-1",
		Title:    "Study Chair",
		Price:    5000,
		Status:   entity.ListingAvailable,
	}
	require.NoError(t, es.Listings().Create(ctx, listing))

	stored, err := es.Listings().GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Study Chair", stored.Title)

	stored.Price = 4000
	require.NoError(t, es.Listings().Update(ctx, stored))

	again, err := es.Listings().GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), again.Price)

	chat := &entity.Chat{
		Participants: []string{"buyer-1", "seller-1"},
		BuyerID:      "buyer-1",
		SellerID:     "seller-1",
		ListingID:    listing.ID,
	}
	require.NoError(t, es.Chats().Create(ctx, chat))
	require.NoError(t, es.Chats().CreateMessage(ctx, &entity.Message{
		ChatID:   chat.ID,
		SenderID: "buyer-1",
		Content:  "still available?",
		Type:     "text",
	}))

	messages, total, err := es.Chats().ListMessages(ctx, chat.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, messages, 1)
}

func TestHydrateRestoresEveryCollection(t *testing.T) {
	gw := gateway.NewMemoryGateway()
	ctx := context.Background()

	first := store.NewEntityStore(gw)
	listing := &entity.Listing{SellerID: "seller-1", Title: "Study Chair", Price: 5000, Status: entity.ListingAvailable}
	require.NoError(t, first.Listings().Create(ctx, listing))

	offer := &entity.Offer{
		ListingID:     listing.ID,
		SellerID:      "seller-1",
		BuyerID:       "buyer-1",
		OriginalPrice: 5000,
		OfferedPrice:  4000,
		Status:        entity.OfferPending,
		ReviewerID:    "seller-1",
	}
	require.NoError(t, first.Offers().Create(ctx, offer))

	chat := &entity.Chat{
		Participants: []string{"buyer-1", "seller-1"},
		BuyerID:      "buyer-1",
		SellerID:     "seller-1",
		ListingID:    listing.ID,
	}
	require.NoError(t, first.Chats().Create(ctx, chat))
	base := time.Now().Truncate(time.Second)
	require.NoError(t, first.Chats().CreateMessage(ctx, &entity.Message{
		ChatID: chat.ID, SenderID: "buyer-1", Content: "hello", Type: "text", CreatedAt: base,
	}))
	require.NoError(t, first.Chats().CreateMessage(ctx, &entity.Message{
		ChatID: chat.ID, SenderID: "seller-1", Content: "hi there", Type: "text", CreatedAt: base.Add(time.Second),
	}))

	saved, err := first.SavedListings().Toggle(ctx, "buyer-1", listing.ID)
	require.NoError(t, err)
	require.True(t, saved)
	require.NoError(t, first.ViewHistory().Upsert(ctx, "buyer-1", &entity.ViewRecord{
		ListingID:       listing.ID,
		LastViewedPrice: 5000,
		ViewedAt:        time.Now(),
	}))

	second := store.NewEntityStore(gw)
	require.NoError(t, second.Hydrate(ctx))

	gotListing, err := second.Listings().GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Study Chair", gotListing.Title)

	gotOffer, err := second.Offers().GetByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), gotOffer.OriginalPrice)

	gotChat, err := second.Chats().GetByKey(ctx, "buyer-1", "seller-1", listing.ID)
	require.NoError(t, err)
	assert.Equal(t, chat.ID, gotChat.ID)
	assert.Equal(t, "hi there", gotChat.LastMessage)

	messages, total, err := second.Chats().ListMessages(ctx, chat.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].Content)

	savedIDs, err := second.SavedListings().ListByUser(ctx, "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, []string{listing.ID}, savedIDs)

	records, err := second.ViewHistory().ListByUser(ctx, "buyer-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(5000), records[0].LastViewedPrice)
}

func TestCreateRejectsDuplicateIDs(t *testing.T) {
	es := store.NewEntityStore(gateway.NewMemoryGateway())
	ctx := context.Background()

	listing := &entity.Listing{SellerID: "seller-1", Title: "Study Chair", Price: 5000, Status: entity.ListingAvailable}
	require.NoError(t, es.Listings().Create(ctx, listing))

	dup := &entity.Listing{ID: listing.ID, SellerID: "seller-1", Title: "Copy", Price: 1, Status: entity.ListingAvailable}
	assert.Error(t, es.Listings().Create(ctx, dup))
}
