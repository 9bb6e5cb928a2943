package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"sellit/internal/domain/entity"
	"sellit/pkg/errors"
)

type chatStore struct{ *EntityStore }

func cloneChat(c *entity.Chat) *entity.Chat {
	clone := *c
	clone.Participants = append([]string(nil), c.Participants...)
	return &clone
}

func (r chatStore) Create(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}
	if _, exists := r.chats[chat.ID]; exists {
		return errors.Conflict("Chat already exists", nil)
	}

	now := time.Now()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	if chat.LastMessageAt.IsZero() {
		chat.LastMessageAt = now
	}

	r.chats[chat.ID] = cloneChat(chat)
	r.persist(ctx, CollectionChats, chat.ID, chat)
	return nil
}

func (r chatStore) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return cloneChat(chat), nil
}

func (r chatStore) Update(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chats[chat.ID]; !ok {
		return errors.NotFound("Chat", nil)
	}
	chat.UpdatedAt = time.Now()
	r.chats[chat.ID] = cloneChat(chat)
	r.persist(ctx, CollectionChats, chat.ID, chat)
	return nil
}

func (r chatStore) GetByKey(ctx context.Context, buyerID, sellerID, listingID string) (*entity.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.chats {
		if c.IsSupport {
			continue
		}
		if c.BuyerID == buyerID && c.SellerID == sellerID && c.ListingID == listingID {
			return cloneChat(c), nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r chatStore) GetSupportChat(ctx context.Context, userID string) (*entity.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.chats {
		if c.IsSupport && c.HasParticipant(userID) {
			return cloneChat(c), nil
		}
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r chatStore) ListByUser(ctx context.Context, userID string) ([]*entity.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*entity.Chat
	for _, c := range r.chats {
		if c.HasParticipant(userID) {
			matched = append(matched, cloneChat(c))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].LastMessageAt.After(matched[j].LastMessageAt)
	})
	return matched, nil
}

// CreateMessage appends to the chat's sequence and refreshes the chat's
// lastMessage/lastMessageAt cache under the same lock, so the cache always
// equals the tail of the sequence.
func (r chatStore) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.chats[message.ChatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	clone := *message
	r.messages[message.ChatID] = append(r.messages[message.ChatID], &clone)

	chat.LastMessage = message.Content
	chat.LastMessageAt = message.CreatedAt
	chat.UpdatedAt = message.CreatedAt

	r.persist(ctx, CollectionMessages, message.ID, message)
	r.persist(ctx, CollectionChats, chat.ID, chat)
	return nil
}

func (r chatStore) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.chats[chatID]; !ok {
		return nil, 0, errors.NotFound("Chat", nil)
	}

	seq := r.messages[chatID]
	out := make([]*entity.Message, 0, len(seq))
	for _, m := range seq {
		clone := *m
		out = append(out, &clone)
	}
	total := int64(len(out))
	return paginate(out, limit, offset), total, nil
}
