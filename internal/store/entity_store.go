package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"sellit/internal/domain/entity"
	"sellit/internal/domain/repository"
	"sellit/pkg/errors"
	"sellit/pkg/logger"
)

// EntityStore is the authoritative in-memory collection of session entities.
// Every mutation applies in memory first and then writes through to the
// gateway; a failed durable write is logged and does not fail the mutation,
// so the store stays authoritative for the session. All writes to these
// entities go through the store; the lifecycle usecases are its only callers.
type EntityStore struct {
	mu sync.RWMutex
	gw Gateway

	listings      map[string]*entity.Listing
	offers        map[string]*entity.Offer
	broadcasts    map[string]*entity.Broadcast
	chats         map[string]*entity.Chat
	messages      map[string][]*entity.Message // chatID -> ordered sequence
	notifications map[string]*entity.Notification
	saved         map[string]map[string]bool               // userID -> listingID set
	views         map[string]map[string]*entity.ViewRecord // userID -> listingID -> record
	users         map[string]*entity.User
}

func NewEntityStore(gw Gateway) *EntityStore {
	return &EntityStore{
		gw:            gw,
		listings:      make(map[string]*entity.Listing),
		offers:        make(map[string]*entity.Offer),
		broadcasts:    make(map[string]*entity.Broadcast),
		chats:         make(map[string]*entity.Chat),
		messages:      make(map[string][]*entity.Message),
		notifications: make(map[string]*entity.Notification),
		saved:         make(map[string]map[string]bool),
		views:         make(map[string]map[string]*entity.ViewRecord),
		users:         make(map[string]*entity.User),
	}
}

// Typed views onto the shared state; each implements one domain repository.

func (s *EntityStore) Listings() repository.ListingRepository { return listingStore{s} }

func (s *EntityStore) SavedListings() repository.SavedListingRepository { return savedStore{s} }

func (s *EntityStore) ViewHistory() repository.ViewHistoryRepository { return viewStore{s} }

func (s *EntityStore) Offers() repository.OfferRepository { return offerStore{s} }

func (s *EntityStore) Broadcasts() repository.BroadcastRepository { return broadcastStore{s} }

func (s *EntityStore) Chats() repository.ChatRepository { return chatStore{s} }

func (s *EntityStore) Notifications() repository.NotificationRepository { return notificationStore{s} }

func (s *EntityStore) Users() repository.UserRepository { return userStore{s} }

// Hydrate loads every collection from the gateway into memory. Called once
// at startup before the store is handed to the usecases.
func (s *EntityStore) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := hydrateInto(ctx, s.gw, CollectionListings, s.listings); err != nil {
		return err
	}
	if err := hydrateInto(ctx, s.gw, CollectionOffers, s.offers); err != nil {
		return err
	}
	if err := hydrateInto(ctx, s.gw, CollectionBroadcasts, s.broadcasts); err != nil {
		return err
	}
	if err := hydrateInto(ctx, s.gw, CollectionChats, s.chats); err != nil {
		return err
	}
	if err := hydrateInto(ctx, s.gw, CollectionNotifications, s.notifications); err != nil {
		return err
	}
	if err := hydrateInto(ctx, s.gw, CollectionUsers, s.users); err != nil {
		return err
	}

	msgs := make(map[string]*entity.Message)
	if err := hydrateInto(ctx, s.gw, CollectionMessages, msgs); err != nil {
		return err
	}
	for _, m := range msgs {
		s.messages[m.ChatID] = append(s.messages[m.ChatID], m)
	}
	for _, seq := range s.messages {
		sort.Slice(seq, func(i, j int) bool {
			if seq[i].CreatedAt.Equal(seq[j].CreatedAt) {
				return seq[i].ID < seq[j].ID
			}
			return seq[i].CreatedAt.Before(seq[j].CreatedAt)
		})
	}

	savedDocs := make(map[string]*entity.SavedListings)
	if err := hydrateInto(ctx, s.gw, CollectionSavedListings, savedDocs); err != nil {
		return err
	}
	for userID, doc := range savedDocs {
		set := make(map[string]bool, len(doc.ListingIDs))
		for _, id := range doc.ListingIDs {
			set[id] = true
		}
		s.saved[userID] = set
	}

	historyDocs := make(map[string]*entity.ViewHistory)
	if err := hydrateInto(ctx, s.gw, CollectionViewHistory, historyDocs); err != nil {
		return err
	}
	for userID, doc := range historyDocs {
		if doc.Records != nil {
			s.views[userID] = doc.Records
		}
	}

	logger.Info("Entity store hydrated: %d listings, %d offers, %d chats", len(s.listings), len(s.offers), len(s.chats))
	return nil
}

func hydrateInto[T any](ctx context.Context, gw Gateway, collection string, dst map[string]*T) error {
	docs, err := gw.List(ctx, collection)
	if err != nil {
		return errors.Internal("Failed to load "+collection, err)
	}
	for key, data := range docs {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			logger.Warn("Skipping undecodable %s document %s: %v", collection, key, err)
			continue
		}
		dst[key] = &v
	}
	return nil
}

// persist writes through to the gateway, best effort. Callers hold the lock.
func (s *EntityStore) persist(ctx context.Context, collection, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.LogPersistError(collection, key, err)
		return
	}
	if err := s.gw.Set(ctx, collection, key, data); err != nil {
		logger.LogPersistError(collection, key, err)
	}
}

func (s *EntityStore) unpersist(ctx context.Context, collection, key string) {
	if err := s.gw.Delete(ctx, collection, key); err != nil {
		logger.LogPersistError(collection, key, err)
	}
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
