// internal/catalog/ledger.go
package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// LoanLedger tracks the current item to holder assignment. Each item cycles
// between Available and Loaned; at most one loan exists per item. Ids are
// cross-checked against the EntityStore the ledger is constructed with.
type LoanLedger struct {
	store *EntityStore
	loans map[string]Loan
	now   func() time.Time
}

// NewLoanLedger creates an empty ledger bound to store.
func NewLoanLedger(store *EntityStore) *LoanLedger {
	return &LoanLedger{
		store: store,
		loans: make(map[string]Loan),
		now:   time.Now,
	}
}

// Loan assigns an available item to a holder.
func (l *LoanLedger) Loan(itemID, holderID string) (Loan, error) {
	if !l.store.HasItem(itemID) {
		return Loan{}, fmt.Errorf("%w: item %q", ErrNotFound, itemID)
	}
	if !l.store.HasHolder(holderID) {
		return Loan{}, fmt.Errorf("%w: holder %q", ErrNotFound, holderID)
	}
	if current, loaned := l.loans[itemID]; loaned {
		return Loan{}, fmt.Errorf("%w: item %q is held by holder %q", ErrAlreadyLoaned, itemID, current.HolderID)
	}
	loan := Loan{
		ID:       uuid.New(),
		ItemID:   itemID,
		HolderID: holderID,
		LoanedAt: l.now(),
	}
	l.loans[itemID] = loan
	return loan, nil
}

// Return ends the active loan for an item. A second return for the same item
// fails with ErrNotLoaned; double return is a caller bug, not a no-op.
func (l *LoanLedger) Return(itemID string) (Loan, error) {
	loan, loaned := l.loans[itemID]
	if !loaned {
		return Loan{}, fmt.Errorf("%w: item %q", ErrNotLoaned, itemID)
	}
	delete(l.loans, itemID)
	return loan, nil
}

// IsAvailable reports whether a known item has no active loan.
func (l *LoanLedger) IsAvailable(itemID string) (bool, error) {
	if !l.store.HasItem(itemID) {
		return false, fmt.Errorf("%w: item %q", ErrNotFound, itemID)
	}
	_, loaned := l.loans[itemID]
	return !loaned, nil
}

// CurrentHolder returns the holder id for an item's active loan, if any.
func (l *LoanLedger) CurrentHolder(itemID string) (string, bool) {
	loan, loaned := l.loans[itemID]
	if !loaned {
		return "", false
	}
	return loan.HolderID, true
}

// HeldBy derives the ids of items currently held by a holder by scanning the
// loan map, so there is no second copy of the relation to drift. Results are
// ordered by loan time, ties broken by item id.
func (l *LoanLedger) HeldBy(holderID string) ([]string, error) {
	if !l.store.HasHolder(holderID) {
		return nil, fmt.Errorf("%w: holder %q", ErrNotFound, holderID)
	}
	held := make([]Loan, 0)
	for _, loan := range l.loans {
		if loan.HolderID == holderID {
			held = append(held, loan)
		}
	}
	sort.Slice(held, func(i, j int) bool {
		if !held[i].LoanedAt.Equal(held[j].LoanedAt) {
			return held[i].LoanedAt.Before(held[j].LoanedAt)
		}
		return held[i].ItemID < held[j].ItemID
	})
	ids := make([]string, 0, len(held))
	for _, loan := range held {
		ids = append(ids, loan.ItemID)
	}
	return ids, nil
}

// Loans returns a copy of all active loans ordered by loan time, ties broken
// by item id.
func (l *LoanLedger) Loans() []Loan {
	loans := make([]Loan, 0, len(l.loans))
	for _, loan := range l.loans {
		loans = append(loans, loan)
	}
	sort.Slice(loans, func(i, j int) bool {
		if !loans[i].LoanedAt.Equal(loans[j].LoanedAt) {
			return loans[i].LoanedAt.Before(loans[j].LoanedAt)
		}
		return loans[i].ItemID < loans[j].ItemID
	})
	return loans
}

// ActiveCount returns the number of active loans.
func (l *LoanLedger) ActiveCount() int { return len(l.loans) }
