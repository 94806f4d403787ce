// internal/snapshot/snapshot.go

// Package snapshot is the external persistence boundary of the engine. It
// captures the full catalog state as an ordered sequence of flat records and
// rebuilds a service from one by replaying the public operations in
// dependency order: items and holders first, loans last.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	"librarium/internal/catalog"
)

// Sentinel failures of the snapshot boundary.
var (
	// ErrSnapshotNotFound reports that no snapshot exists at the source.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrCorruptSnapshot reports a snapshot the engine refused to replay,
	// for example one carrying duplicate ids or loans on unknown records.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// ItemRecord is the flat persisted form of a catalog item.
type ItemRecord struct {
	ID       string `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Author   string `json:"author" db:"author"`
	Category string `json:"category" db:"category"`
}

// HolderRecord is the flat persisted form of a holder.
type HolderRecord struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// LoanRecord is the flat persisted form of an active loan.
type LoanRecord struct {
	ItemID   string `json:"item_id" db:"item_id"`
	HolderID string `json:"holder_id" db:"holder_id"`
}

// Snapshot is a complete copy of the catalog state.
type Snapshot struct {
	Items   []ItemRecord   `json:"items"`
	Holders []HolderRecord `json:"holders"`
	Loans   []LoanRecord   `json:"loans"`
}

// Store reads and writes complete snapshots.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (Snapshot, error)
}

// Capture iterates the service's items, holders and loan state into a
// snapshot. There is no write-ordering requirement on save.
func Capture(ctx context.Context, svc catalog.Service) Snapshot {
	var snap Snapshot
	for _, item := range svc.Items(ctx) {
		snap.Items = append(snap.Items, ItemRecord{
			ID:       item.ID,
			Title:    item.Title,
			Author:   item.Author,
			Category: item.Category,
		})
	}
	for _, holder := range svc.Holders(ctx) {
		snap.Holders = append(snap.Holders, HolderRecord{ID: holder.ID, Name: holder.Name})
	}
	for _, loan := range svc.Loans(ctx) {
		snap.Loans = append(snap.Loans, LoanRecord{ItemID: loan.ItemID, HolderID: loan.HolderID})
	}
	return snap
}

// Restore replays a snapshot into svc. Items and holders are registered
// before any loan is placed. Any engine failure, a duplicate key from a
// corrupt snapshot included, is surfaced as an ErrCorruptSnapshot load error
// rather than a crash.
func Restore(ctx context.Context, svc catalog.Service, snap Snapshot) error {
	for _, rec := range snap.Items {
		if _, err := svc.AddItem(ctx, rec.ID, rec.Title, rec.Author, rec.Category); err != nil {
			return fmt.Errorf("%w: item %q: %v", ErrCorruptSnapshot, rec.ID, err)
		}
	}
	for _, rec := range snap.Holders {
		if _, err := svc.RegisterHolder(ctx, rec.ID, rec.Name); err != nil {
			return fmt.Errorf("%w: holder %q: %v", ErrCorruptSnapshot, rec.ID, err)
		}
	}
	for _, rec := range snap.Loans {
		if _, err := svc.LoanItem(ctx, rec.ItemID, rec.HolderID); err != nil {
			return fmt.Errorf("%w: loan %q -> %q: %v", ErrCorruptSnapshot, rec.ItemID, rec.HolderID, err)
		}
	}
	return nil
}
