// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// service implements the Service interface. The store, index and ledger are
// mutated as one logical unit per call: every operation validates first and
// mutates only once no failure is possible, behind a single mutex (one
// writer at a time, reads concurrent with each other).
type service struct {
	mu     sync.RWMutex
	store  *EntityStore
	index  *SearchIndex
	ledger *LoanLedger
	now    func() time.Time
}

// NewService creates an empty catalog-and-lending engine.
func NewService() Service {
	store := NewEntityStore()
	return &service{
		store:  store,
		index:  NewSearchIndex(),
		ledger: NewLoanLedger(store),
		now:    time.Now,
	}
}

// AddItem validates and inserts a new item and indexes its title.
func (s *service) AddItem(ctx context.Context, id, title, author, category string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := NewItem(id, title, author, category, s.now())
	if err != nil {
		return Item{}, err
	}
	if err := s.store.AddItem(item); err != nil {
		return Item{}, err
	}
	s.index.Add(item)
	return item, nil
}

// UpdateItem replaces the descriptive fields of an existing item. The record
// is rebuilt through the validating constructor and the search index is
// repointed from the old title to the new one in the same call.
func (s *service) UpdateItem(ctx context.Context, id, title, author, category string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.store.Item(id)
	if err != nil {
		return Item{}, err
	}
	item, err := NewItem(id, title, author, category, old.AddedAt)
	if err != nil {
		return Item{}, err
	}
	if err := s.store.ReplaceItem(item); err != nil {
		return Item{}, err
	}
	s.index.Rename(old.Title, item.Title, id)
	return item, nil
}

// RemoveItem deletes an item from the store and the index together. It fails
// with ErrItemLoaned while an active loan references the item.
func (s *service) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.store.Item(id)
	if err != nil {
		return err
	}
	available, err := s.ledger.IsAvailable(id)
	if err != nil {
		return err
	}
	if !available {
		return fmt.Errorf("%w: item %q", ErrItemLoaned, id)
	}
	if err := s.store.RemoveItem(id); err != nil {
		return err
	}
	s.index.Remove(item)
	return nil
}

// Item returns the item record for id.
func (s *service) Item(ctx context.Context, id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Item(id)
}

// Items returns all items in insertion order.
func (s *service) Items(ctx context.Context) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Items()
}

// RegisterHolder validates and inserts a new holder.
func (s *service) RegisterHolder(ctx context.Context, id, name string) (Holder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	holder, err := NewHolder(id, name, s.now())
	if err != nil {
		return Holder{}, err
	}
	if err := s.store.AddHolder(holder); err != nil {
		return Holder{}, err
	}
	return holder, nil
}

// RenameHolder replaces a holder's display name.
func (s *service) RenameHolder(ctx context.Context, id, name string) (Holder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.store.Holder(id)
	if err != nil {
		return Holder{}, err
	}
	holder, err := NewHolder(id, name, old.RegisteredAt)
	if err != nil {
		return Holder{}, err
	}
	if err := s.store.ReplaceHolder(holder); err != nil {
		return Holder{}, err
	}
	return holder, nil
}

// DeregisterHolder deletes a holder. It fails with ErrHolderHasLoans while
// the holder still holds items.
func (s *service) DeregisterHolder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	held, err := s.ledger.HeldBy(id)
	if err != nil {
		return err
	}
	if len(held) > 0 {
		return fmt.Errorf("%w: holder %q holds %d item(s)", ErrHolderHasLoans, id, len(held))
	}
	return s.store.RemoveHolder(id)
}

// Holder returns the holder record for id.
func (s *service) Holder(ctx context.Context, id string) (Holder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Holder(id)
}

// Holders returns all holders in insertion order.
func (s *service) Holders(ctx context.Context) []Holder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Holders()
}

// LoanItem assigns an available item to a registered holder. Loan state is
// not indexed by title, so no index change is needed.
func (s *service) LoanItem(ctx context.Context, itemID, holderID string) (Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Loan(itemID, holderID)
}

// ReturnItem ends the active loan for an item.
func (s *service) ReturnItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.ledger.Return(itemID)
	return err
}

// IsAvailable reports whether a known item has no active loan.
func (s *service) IsAvailable(ctx context.Context, itemID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.IsAvailable(itemID)
}

// CurrentHolder resolves the holder of an item's active loan. The second
// return is false when the item is available.
func (s *service) CurrentHolder(ctx context.Context, itemID string) (Holder, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.store.HasItem(itemID) {
		return Holder{}, false, fmt.Errorf("%w: item %q", ErrNotFound, itemID)
	}
	holderID, loaned := s.ledger.CurrentHolder(itemID)
	if !loaned {
		return Holder{}, false, nil
	}
	holder, err := s.store.Holder(holderID)
	if err != nil {
		return Holder{}, false, err
	}
	return holder, true, nil
}

// HolderLoans resolves the items currently held by a holder to full records.
func (s *service) HolderLoans(ctx context.Context, holderID string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, err := s.ledger.HeldBy(holderID)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		item, err := s.store.Item(id)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Loans returns all active loans.
func (s *service) Loans(ctx context.Context) []Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Loans()
}

// Search answers a title-only query from the exact-key index when the
// normalized title has a bucket, and falls back to the linear substring scan
// otherwise. Results keep the store's insertion order unless the query asks
// for an explicit sort key.
func (s *service) Search(ctx context.Context, q Query) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if q.Title != "" && q.Author == "" && q.Category == "" {
		if ids := s.index.ExactMatch(q.Title); len(ids) > 0 {
			return s.resolve(ids, q.SortBy), nil
		}
	}
	return s.index.Substring(s.store.Items(), q), nil
}

// resolve maps indexed ids back to records, preserving insertion order.
func (s *service) resolve(ids []string, sortBy SortKey) []Item {
	member := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		member[id] = struct{}{}
	}
	items := make([]Item, 0, len(ids))
	for _, item := range s.store.Items() {
		if _, ok := member[item.ID]; ok {
			items = append(items, item)
		}
	}
	sortItems(items, sortBy)
	return items
}

// Summary reports current catalog counts.
func (s *service) Summary(ctx context.Context) Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summary{
		Items:       s.store.ItemCount(),
		Holders:     s.store.HolderCount(),
		ActiveLoans: s.ledger.ActiveCount(),
	}
}
