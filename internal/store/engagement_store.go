package store

import (
	"context"
	"sort"

	"sellit/internal/domain/entity"
	"sellit/pkg/errors"
)

type savedStore struct{ *EntityStore }

func (r savedStore) Toggle(ctx context.Context, userID, listingID string) (bool, error) {
	if userID == "" || listingID == "" {
		return false, errors.BadRequest("User and listing ids are required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.saved[userID]
	if !ok {
		set = make(map[string]bool)
		r.saved[userID] = set
	}

	saved := !set[listingID]
	if saved {
		set[listingID] = true
	} else {
		delete(set, listingID)
	}

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	r.persist(ctx, CollectionSavedListings, userID, &entity.SavedListings{UserID: userID, ListingIDs: ids})
	return saved, nil
}

func (r savedStore) ListByUser(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.saved[userID]))
	for id := range r.saved[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r savedStore) ListSavers(ctx context.Context, listingID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []string
	for userID, set := range r.saved {
		if set[listingID] {
			users = append(users, userID)
		}
	}
	sort.Strings(users)
	return users, nil
}

type viewStore struct{ *EntityStore }

func (r viewStore) Upsert(ctx context.Context, userID string, record *entity.ViewRecord) error {
	if userID == "" || record == nil || record.ListingID == "" {
		return errors.BadRequest("User and listing ids are required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, ok := r.views[userID]
	if !ok {
		records = make(map[string]*entity.ViewRecord)
		r.views[userID] = records
	}

	if existing, ok := records[record.ListingID]; ok {
		// Re-viewing refreshes the timestamp in place; the price snapshot
		// from the first view stays so price drops remain detectable.
		existing.ViewedAt = record.ViewedAt
	} else {
		clone := *record
		records[record.ListingID] = &clone
	}

	r.persist(ctx, CollectionViewHistory, userID, &entity.ViewHistory{UserID: userID, Records: records})
	return nil
}

func (r viewStore) ListByUser(ctx context.Context, userID string) ([]*entity.ViewRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*entity.ViewRecord, 0, len(r.views[userID]))
	for _, rec := range r.views[userID] {
		clone := *rec
		records = append(records, &clone)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ViewedAt.After(records[j].ViewedAt)
	})
	return records, nil
}

func (r viewStore) ListViewers(ctx context.Context, listingID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []string
	for userID, records := range r.views {
		if _, ok := records[listingID]; ok {
			users = append(users, userID)
		}
	}
	sort.Strings(users)
	return users, nil
}
