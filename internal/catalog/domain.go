// internal/catalog/domain.go
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item is a loanable catalog entry. Identity and descriptive fields are
// immutable once constructed; editing descriptive data means replacing the
// record through the service.
type Item struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Category string    `json:"category"`
	AddedAt  time.Time `json:"added_at"`
}

// Holder is a registered party eligible to hold items. The set of items it
// currently holds is derived from the loan ledger, never stored here.
type Holder struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Loan records the current assignment of one item to one holder.
type Loan struct {
	ID       uuid.UUID `json:"id"`
	ItemID   string    `json:"item_id"`
	HolderID string    `json:"holder_id"`
	LoanedAt time.Time `json:"loaned_at"`
}

// Summary reports the current catalog counts.
type Summary struct {
	Items       int `json:"items"`
	Holders     int `json:"holders"`
	ActiveLoans int `json:"active_loans"`
}

// NewItem validates and builds an Item record.
func NewItem(id, title, author, category string, addedAt time.Time) (Item, error) {
	id = strings.TrimSpace(id)
	title = strings.TrimSpace(title)
	if id == "" {
		return Item{}, fmt.Errorf("%w: item id must not be empty", ErrInvalid)
	}
	if title == "" {
		return Item{}, fmt.Errorf("%w: item %q title must not be empty", ErrInvalid, id)
	}
	return Item{
		ID:       id,
		Title:    title,
		Author:   strings.TrimSpace(author),
		Category: strings.TrimSpace(category),
		AddedAt:  addedAt,
	}, nil
}

// NewHolder validates and builds a Holder record.
func NewHolder(id, name string, registeredAt time.Time) (Holder, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return Holder{}, fmt.Errorf("%w: holder id must not be empty", ErrInvalid)
	}
	if name == "" {
		return Holder{}, fmt.Errorf("%w: holder %q name must not be empty", ErrInvalid, id)
	}
	return Holder{ID: id, Name: name, RegisteredAt: registeredAt}, nil
}
