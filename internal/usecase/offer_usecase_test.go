package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellit/internal/domain/entity"
	"sellit/pkg/errors"
)

func TestCreateOfferSnapshotsAskingPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	offer, err := f.offers.CreateOffer(ctx, "buyer-1", CreateOfferInput{
		ListingID:    listing.ID,
		OfferedPrice: 4000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), offer.OriginalPrice)
	assert.Equal(t, int64(4000), offer.OfferedPrice)
	assert.Equal(t, entity.OfferPending, offer.Status)
	assert.Equal(t, "Bola Ahmed", offer.BuyerName)

	// A later price edit must not touch the snapshot.
	_, err = f.listings.EditListing(ctx, listing.ID, "seller-1", UpdateListingInput{
		Title: "Study Chair",
		Price: 4500,
	})
	require.NoError(t, err)

	stored, err := f.store.Offers().GetByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), stored.OriginalPrice)
}

func TestCreateOfferRejectsOwnListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	_, err := f.offers.CreateOffer(ctx, "seller-1", CreateOfferInput{
		ListingID:    listing.ID,
		OfferedPrice: 4000,
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

// The canonical accept flow: a Study Chair at 5000, offered 4000, accepted.
// The offer is accepted, the listing committed, and a seeded negotiation chat
// opens, all as one unit.
func TestAcceptOfferCommitsListingAndOpensChat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	offer, err := f.offers.CreateOffer(ctx, "buyer-1", CreateOfferInput{
		ListingID:    listing.ID,
		OfferedPrice: 4000,
	})
	require.NoError(t, err)

	result, err := f.offers.AcceptOffer(ctx, "seller-1", offer.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OfferAccepted, result.Offer.Status)
	assert.Equal(t, entity.ListingCommitted, result.Listing.Status)
	assert.Equal(t, NegotiationChatID(offer.ID), result.Chat.ID)

	messages, total, err := f.chats.ListMessages(ctx, "buyer-1", result.Chat.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Type)
	assert.Contains(t, messages[0].Content, "Bola")
	assert.Equal(t, "seller-1", messages[1].SenderID)

	// The chat tail cache tracks the last seeded message.
	chat, err := f.store.Chats().GetByID(ctx, result.Chat.ID)
	require.NoError(t, err)
	assert.Equal(t, messages[1].Content, chat.LastMessage)

	// Buyer is told the offer went through.
	feed, _, err := f.notifications.ListNotifications(ctx, "buyer-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, feed.Notifications, 1)
	assert.Equal(t, entity.NotificationPayment, feed.Notifications[0].Type)
}

func TestAcceptOfferTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	offer, err := f.offers.CreateOffer(ctx, "buyer-1", CreateOfferInput{
		ListingID:    listing.ID,
		OfferedPrice: 4000,
	})
	require.NoError(t, err)

	_, err = f.offers.AcceptOffer(ctx, "seller-1", offer.ID)
	require.NoError(t, err)

	_, err = f.offers.AcceptOffer(ctx, "seller-1", offer.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))

	// Still exactly one negotiation chat.
	chats, err := f.chats.ListChats(ctx, "buyer-1")
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestAcceptOfferRequiresTheSeller(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	offer, err := f.offers.CreateOffer(ctx, "buyer-1", CreateOfferInput{
		ListingID:    listing.ID,
		OfferedPrice: 4000,
	})
	require.NoError(t, err)

	_, err = f.offers.AcceptOffer(ctx, "buyer-1", offer.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestAcceptOfferRollsBackWhenListingVanished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	offer, err := f.offers.CreateOffer(ctx, "buyer-1", CreateOfferInput{
		ListingID:    listing.ID,
		OfferedPrice: 4000,
	})
	require.NoError(t, err)

	require.NoError(t, f.store.Listings().Delete(ctx, listing.ID))

	_, err = f.offers.AcceptOffer(ctx, "seller-1", offer.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))

	// No partial state: the offer is untouched and no chat was opened.
	stored, err := f.store.Offers().GetByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferPending, stored.Status)

	_, err = f.store.Chats().GetByID(ctx, NegotiationChatID(offer.ID))
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestDeclineOfferLeavesListingAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	offer, err := f.offers.CreateOffer(ctx, "buyer-1", CreateOfferInput{
		ListingID:    listing.ID,
		OfferedPrice: 4000,
	})
	require.NoError(t, err)

	declined, err := f.offers.DeclineOffer(ctx, "seller-1", offer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferDeclined, declined.Status)

	stored, err := f.store.Listings().GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingAvailable, stored.Status)
}

func TestCounterOfferSupersedesAndIsReviewedByBuyer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	offer, err := f.offers.CreateOffer(ctx, "buyer-1", CreateOfferInput{
		ListingID:    listing.ID,
		OfferedPrice: 4000,
	})
	require.NoError(t, err)

	counter, err := f.offers.SendCounterOffer(ctx, "seller-1", offer.ID, 4500)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferPending, counter.Status)
	assert.Equal(t, offer.ID, counter.CounterOf)
	assert.Equal(t, int64(4500), counter.OfferedPrice)

	original, err := f.store.Offers().GetByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferCountered, original.Status)

	// The superseded offer is closed to further review.
	_, err = f.offers.AcceptOffer(ctx, "seller-1", offer.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))

	// The seller cannot accept their own counter; the buyer can.
	_, err = f.offers.AcceptOffer(ctx, "seller-1", counter.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	result, err := f.offers.AcceptOffer(ctx, "buyer-1", counter.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingCommitted, result.Listing.Status)
}

// Review authority must flip on every round: when the buyer counters a
// seller counter, the seller is back in review and the buyer cannot accept
// the price they just proposed themselves.
func TestCounterBackAndForthFlipsReviewAuthority(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	offer, err := f.offers.CreateOffer(ctx, "buyer-1", CreateOfferInput{
		ListingID:    listing.ID,
		OfferedPrice: 4000,
	})
	require.NoError(t, err)

	sellerCounter, err := f.offers.SendCounterOffer(ctx, "seller-1", offer.ID, 4500)
	require.NoError(t, err)
	assert.Equal(t, "buyer-1", sellerCounter.ReviewerID)

	buyerCounter, err := f.offers.SendCounterOffer(ctx, "buyer-1", sellerCounter.ID, 4200)
	require.NoError(t, err)
	assert.Equal(t, "seller-1", buyerCounter.ReviewerID)

	// The buyer proposed 4200, so the buyer cannot accept it.
	_, err = f.offers.AcceptOffer(ctx, "buyer-1", buyerCounter.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	stored, err := f.store.Listings().GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingAvailable, stored.Status)

	// The seller can.
	result, err := f.offers.AcceptOffer(ctx, "seller-1", buyerCounter.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingCommitted, result.Listing.Status)
	assert.Equal(t, int64(4200), result.Offer.OfferedPrice)
}

func TestCounterOfferRequiresAvailableListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	f.seedUser(t, "buyer-2", "Chika Obi")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	first, err := f.offers.CreateOffer(ctx, "buyer-1", CreateOfferInput{
		ListingID:    listing.ID,
		OfferedPrice: 4000,
	})
	require.NoError(t, err)
	second, err := f.offers.CreateOffer(ctx, "buyer-2", CreateOfferInput{
		ListingID:    listing.ID,
		OfferedPrice: 4800,
	})
	require.NoError(t, err)

	_, err = f.offers.AcceptOffer(ctx, "seller-1", second.ID)
	require.NoError(t, err)

	// The listing is committed, so no counter can open against the other
	// pending offer.
	_, err = f.offers.SendCounterOffer(ctx, "seller-1", first.ID, 4500)
	assert.True(t, errors.Is(err, "CONFLICT"))

	stored, err := f.store.Offers().GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferPending, stored.Status)
}
