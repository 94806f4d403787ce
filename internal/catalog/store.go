// internal/catalog/store.go
package catalog

import "fmt"

// EntityStore owns the primary item and holder records, keyed by id.
// Insertion order is preserved so listings are deterministic. The store is
// not safe for concurrent use on its own; the service serializes access.
type EntityStore struct {
	items       map[string]Item
	itemOrder   []string
	holders     map[string]Holder
	holderOrder []string
}

// NewEntityStore creates an empty EntityStore.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		items:   make(map[string]Item),
		holders: make(map[string]Holder),
	}
}

// AddItem inserts a new item record.
func (s *EntityStore) AddItem(item Item) error {
	if _, exists := s.items[item.ID]; exists {
		return fmt.Errorf("%w: item %q", ErrDuplicateKey, item.ID)
	}
	s.items[item.ID] = item
	s.itemOrder = append(s.itemOrder, item.ID)
	return nil
}

// ReplaceItem swaps the record stored under an existing id. The caller is
// responsible for patching the search index.
func (s *EntityStore) ReplaceItem(item Item) error {
	if _, exists := s.items[item.ID]; !exists {
		return fmt.Errorf("%w: item %q", ErrNotFound, item.ID)
	}
	s.items[item.ID] = item
	return nil
}

// RemoveItem deletes an item record. The caller must have confirmed there is
// no active loan for it.
func (s *EntityStore) RemoveItem(id string) error {
	if _, exists := s.items[id]; !exists {
		return fmt.Errorf("%w: item %q", ErrNotFound, id)
	}
	delete(s.items, id)
	s.itemOrder = deleteOrdered(s.itemOrder, id)
	return nil
}

// Item looks up an item record by id.
func (s *EntityStore) Item(id string) (Item, error) {
	item, exists := s.items[id]
	if !exists {
		return Item{}, fmt.Errorf("%w: item %q", ErrNotFound, id)
	}
	return item, nil
}

// HasItem reports whether an item id is registered.
func (s *EntityStore) HasItem(id string) bool {
	_, exists := s.items[id]
	return exists
}

// AddHolder inserts a new holder record.
func (s *EntityStore) AddHolder(holder Holder) error {
	if _, exists := s.holders[holder.ID]; exists {
		return fmt.Errorf("%w: holder %q", ErrDuplicateKey, holder.ID)
	}
	s.holders[holder.ID] = holder
	s.holderOrder = append(s.holderOrder, holder.ID)
	return nil
}

// ReplaceHolder swaps the record stored under an existing holder id.
func (s *EntityStore) ReplaceHolder(holder Holder) error {
	if _, exists := s.holders[holder.ID]; !exists {
		return fmt.Errorf("%w: holder %q", ErrNotFound, holder.ID)
	}
	s.holders[holder.ID] = holder
	return nil
}

// RemoveHolder deletes a holder record. The caller must have confirmed it
// holds no items.
func (s *EntityStore) RemoveHolder(id string) error {
	if _, exists := s.holders[id]; !exists {
		return fmt.Errorf("%w: holder %q", ErrNotFound, id)
	}
	delete(s.holders, id)
	s.holderOrder = deleteOrdered(s.holderOrder, id)
	return nil
}

// Holder looks up a holder record by id.
func (s *EntityStore) Holder(id string) (Holder, error) {
	holder, exists := s.holders[id]
	if !exists {
		return Holder{}, fmt.Errorf("%w: holder %q", ErrNotFound, id)
	}
	return holder, nil
}

// HasHolder reports whether a holder id is registered.
func (s *EntityStore) HasHolder(id string) bool {
	_, exists := s.holders[id]
	return exists
}

// Items returns a snapshot of all item records in insertion order. The slice
// is a copy and stays valid across later mutations.
func (s *EntityStore) Items() []Item {
	items := make([]Item, 0, len(s.itemOrder))
	for _, id := range s.itemOrder {
		items = append(items, s.items[id])
	}
	return items
}

// Holders returns a snapshot of all holder records in insertion order.
func (s *EntityStore) Holders() []Holder {
	holders := make([]Holder, 0, len(s.holderOrder))
	for _, id := range s.holderOrder {
		holders = append(holders, s.holders[id])
	}
	return holders
}

// ItemCount returns the number of stored items.
func (s *EntityStore) ItemCount() int { return len(s.items) }

// HolderCount returns the number of stored holders.
func (s *EntityStore) HolderCount() int { return len(s.holders) }

func deleteOrdered(order []string, id string) []string {
	for i, candidate := range order {
		if candidate == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
