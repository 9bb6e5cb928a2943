package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellit/pkg/errors"
)

func TestStartOrResumeChatReturnsTheSameThread(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	first, err := f.chats.StartOrResumeChat(ctx, "buyer-1", listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "buyer-1", first.BuyerID)
	assert.Equal(t, "seller-1", first.SellerID)
	assert.Equal(t, "Study Chair", first.ListingTitle)

	second, err := f.chats.StartOrResumeChat(ctx, "buyer-1", listing.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	chats, err := f.chats.ListChats(ctx, "buyer-1")
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestStartOrResumeChatSeparatesBuyers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	f.seedUser(t, "buyer-2", "Chidi Eze")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	first, err := f.chats.StartOrResumeChat(ctx, "buyer-1", listing.ID)
	require.NoError(t, err)
	second, err := f.chats.StartOrResumeChat(ctx, "buyer-2", listing.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	chats, err := f.chats.ListChats(ctx, "seller-1")
	require.NoError(t, err)
	assert.Len(t, chats, 2)
}

func TestSendMessageUpdatesTailCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	chat, err := f.chats.StartOrResumeChat(ctx, "buyer-1", listing.ID)
	require.NoError(t, err)

	_, err = f.chats.SendMessage(ctx, "buyer-1", chat.ID, SendMessageInput{Content: "Is this still available?"})
	require.NoError(t, err)
	msg, err := f.chats.SendMessage(ctx, "seller-1", chat.ID, SendMessageInput{Content: "Yes, it is."})
	require.NoError(t, err)

	stored, err := f.store.Chats().GetByID(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yes, it is.", stored.LastMessage)
	assert.Equal(t, msg.CreatedAt, stored.LastMessageAt)

	messages, total, err := f.chats.ListMessages(ctx, "buyer-1", chat.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Is this still available?", messages[0].Content)
}

func TestSendMessageRequiresParticipation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "seller-1", "Sade Ogun")
	f.seedUser(t, "buyer-1", "Bola Ahmed")
	listing := f.seedListing(t, "seller-1", "Study Chair", 5000)

	chat, err := f.chats.StartOrResumeChat(ctx, "buyer-1", listing.ID)
	require.NoError(t, err)

	_, err = f.chats.SendMessage(ctx, "intruder", chat.ID, SendMessageInput{Content: "hello"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, _, err = f.chats.ListMessages(ctx, "intruder", chat.ID, 10, 0)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSupportChatIsASeededSingleton(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "user-1", "Bola Ahmed")

	first, err := f.chats.GetSupportChat(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, first.IsSupport)
	assert.NotEmpty(t, first.LastMessage)

	second, err := f.chats.GetSupportChat(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	messages, _, err := f.chats.ListMessages(ctx, "user-1", first.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestRespondToBroadcastOpensKeyedThread(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "author-1", "Bola Ahmed")
	f.seedUser(t, "responder-1", "Sade Ogun")

	broadcast, err := f.broadcasts.CreateBroadcast(ctx, "author-1", CreateBroadcastInput{
		Need:      "Mini fridge",
		MaxBudget: 30000,
		Category:  "Appliances",
	})
	require.NoError(t, err)

	chat, err := f.chats.RespondToBroadcast(ctx, "responder-1", broadcast.ID)
	require.NoError(t, err)
	assert.Equal(t, "broadcast-"+broadcast.ID, chat.ListingID)
	assert.Equal(t, "Mini fridge", chat.ListingTitle)
	assert.Equal(t, "author-1", chat.BuyerID)

	again, err := f.chats.RespondToBroadcast(ctx, "responder-1", broadcast.ID)
	require.NoError(t, err)
	assert.Equal(t, chat.ID, again.ID)

	// The author cannot respond to their own broadcast.
	_, err = f.chats.RespondToBroadcast(ctx, "author-1", broadcast.ID)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRespondToFulfilledBroadcastConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "author-1", "Bola Ahmed")
	f.seedUser(t, "responder-1", "Sade Ogun")

	broadcast, err := f.broadcasts.CreateBroadcast(ctx, "author-1", CreateBroadcastInput{
		Need:     "Mini fridge",
		Category: "Appliances",
	})
	require.NoError(t, err)

	_, err = f.broadcasts.FulfillBroadcast(ctx, "author-1", broadcast.ID)
	require.NoError(t, err)

	_, err = f.chats.RespondToBroadcast(ctx, "responder-1", broadcast.ID)
	assert.True(t, errors.Is(err, "CONFLICT"))
}
