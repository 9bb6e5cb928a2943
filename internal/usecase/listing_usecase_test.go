package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellit/internal/domain/entity"
	"sellit/pkg/errors"
)

func TestRecordViewCountsEveryViewButKeepsOneRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "viewer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	_, err := f.listings.GetListing(ctx, listing.ID, "viewer-1")
	require.NoError(t, err)
	_, err = f.listings.GetListing(ctx, listing.ID, "viewer-1")
	require.NoError(t, err)

	stored, err := f.store.Listings().GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ViewCount)

	history, err := f.listings.RecentlyViewed(ctx, "viewer-1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, listing.ID, history[0].Listing.ID)
}

func TestSellerViewsDoNotCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	_, err := f.listings.GetListing(ctx, listing.ID, "seller-1")
	require.NoError(t, err)

	stored, err := f.store.Listings().GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.ViewCount)
}

func TestToggleSaveIsAnInvolution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "viewer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	saved, err := f.listings.ToggleSave(ctx, "viewer-1", listing.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	listings, err := f.listings.ListSaved(ctx, "viewer-1")
	require.NoError(t, err)
	require.Len(t, listings, 1)

	saved, err = f.listings.ToggleSave(ctx, "viewer-1", listing.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	listings, err = f.listings.ListSaved(ctx, "viewer-1")
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestEditListingRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	_, err := f.listings.EditListing(ctx, listing.ID, "intruder", UpdateListingInput{
		Title: "Hijacked",
		Price: 1,
	})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestPriceDropNotifiesSaversAndViewers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "saver-1", "Bola Ahmed")
	f.seedUser(t, "viewer-1", "Chidi Eze")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	_, err := f.listings.ToggleSave(ctx, "saver-1", listing.ID)
	require.NoError(t, err)
	_, err = f.listings.GetListing(ctx, listing.ID, "viewer-1")
	require.NoError(t, err)

	_, err = f.listings.EditListing(ctx, listing.ID, "seller-1", UpdateListingInput{
		Title: "Study Chair",
		Price: 4000,
	})
	require.NoError(t, err)

	for _, recipient := range []string{"saver-1", "viewer-1"} {
		feed, _, err := f.notifications.ListNotifications(ctx, recipient, 10, 0)
		require.NoError(t, err)
		require.Len(t, feed.Notifications, 1, "recipient %s", recipient)
		n := feed.Notifications[0]
		assert.Equal(t, entity.NotificationPriceDrop, n.Type)
		require.NotNil(t, n.Action)
		assert.Equal(t, entity.ActionViewListing, n.Action.Type)
		assert.Equal(t, listing.ID, n.Action.ID)
	}

	feed, _, err := f.notifications.ListNotifications(ctx, "seller-1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, feed.Notifications)
}

func TestPriceIncreaseDoesNotNotify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "saver-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	_, err := f.listings.ToggleSave(ctx, "saver-1", listing.ID)
	require.NoError(t, err)

	_, err = f.listings.EditListing(ctx, listing.ID, "seller-1", UpdateListingInput{
		Title: "Study Chair",
		Price: 6000,
	})
	require.NoError(t, err)

	feed, _, err := f.notifications.ListNotifications(ctx, "saver-1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, feed.Notifications)
}

func TestDeleteListingBlockedByOpenOffers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	_, err := f.offers.CreateOffer(ctx, "buyer-1", CreateOfferInput{
		ListingID:    listing.ID,
		OfferedPrice: 4000,
	})
	require.NoError(t, err)

	err = f.listings.DeleteListing(ctx, listing.ID, "seller-1")
	assert.True(t, errors.Is(err, "CONFLICT"))

	_, err = f.store.Listings().GetByID(ctx, listing.ID)
	assert.NoError(t, err)
}

func TestMarkSoldIsIdempotentAndForwardOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	sold, err := f.listings.MarkSold(ctx, listing.ID, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ListingSold, sold.Status)

	again, err := f.listings.MarkSold(ctx, listing.ID, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ListingSold, again.Status)

	// sold never transitions back.
	assert.False(t, entity.ListingSold.CanTransition(entity.ListingAvailable))
	assert.False(t, entity.ListingSold.CanTransition(entity.ListingCommitted))
}

func TestBoostListingSetsExpiryAndSweeperClearsIt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	boosted, err := f.listings.BoostListing(ctx, listing.ID, "seller-1")
	require.NoError(t, err)
	assert.True(t, boosted.IsBoosted)
	require.NotNil(t, boosted.BoostedUntil)

	// Force the window into the past and sweep.
	expired := *boosted
	past := boosted.BoostedUntil.Add(-30 * 24 * time.Hour)
	expired.BoostedUntil = &past
	require.NoError(t, f.store.Listings().Update(ctx, &expired))

	f.listings.sweepExpiredBoosts(ctx)

	stored, err := f.store.Listings().GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsBoosted)
	assert.Nil(t, stored.BoostedUntil)
}

func TestListListingsDefaultsToAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	available := f.seedListing(t, "seller-1", "Study Chair", 5000)
	soldListing := f.seedListing(t, "seller-1", "Old Desk", 3000)
	_, err := f.listings.MarkSold(ctx, soldListing.ID, "seller-1")
	require.NoError(t, err)

	listings, total, err := f.listings.ListListings(ctx, "", "", "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, listings, 1)
	assert.Equal(t, available.ID, listings[0].ID)
}
