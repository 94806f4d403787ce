// internal/catalog/service.go
package catalog

import "context"

// Service is the public operation set of the catalog-and-lending engine.
// External collaborators (REST handlers, the snapshot loader, a CLI) talk
// only to this interface; the store, index and ledger are never exposed.
type Service interface {
	AddItem(ctx context.Context, id, title, author, category string) (Item, error)
	UpdateItem(ctx context.Context, id, title, author, category string) (Item, error)
	RemoveItem(ctx context.Context, id string) error
	Item(ctx context.Context, id string) (Item, error)
	Items(ctx context.Context) []Item

	RegisterHolder(ctx context.Context, id, name string) (Holder, error)
	RenameHolder(ctx context.Context, id, name string) (Holder, error)
	DeregisterHolder(ctx context.Context, id string) error
	Holder(ctx context.Context, id string) (Holder, error)
	Holders(ctx context.Context) []Holder

	LoanItem(ctx context.Context, itemID, holderID string) (Loan, error)
	ReturnItem(ctx context.Context, itemID string) error
	IsAvailable(ctx context.Context, itemID string) (bool, error)
	CurrentHolder(ctx context.Context, itemID string) (Holder, bool, error)
	HolderLoans(ctx context.Context, holderID string) ([]Item, error)
	Loans(ctx context.Context) []Loan

	Search(ctx context.Context, q Query) ([]Item, error)
	Summary(ctx context.Context) Summary
}
