// Package ledger holds the session-scoped list of exchange line items.
//
// A ledger is owned by exactly one operator session and accessed by a single
// caller at a time; serialization is the caller's responsibility, so the type
// itself carries no locking.
package ledger

import (
	"errors"

	"github.com/lojasmimi/trocas/backend/src/models"
)

var ErrEmptyLedger = errors.New("exchange ledger is empty")

// Ledger is an ordered, barcode-keyed collection of resolved exchange items.
// Iteration order is insertion order (first-seen barcode); merging quantities
// into an existing row never moves it.
type Ledger struct {
	items []models.ExchangeItem
	index map[string]int // barcode -> position in items
}

func New() *Ledger {
	return &Ledger{index: make(map[string]int)}
}

// Upsert adds an item to the ledger. If an item with the same barcode already
// exists, only its quantity grows; description and supplier stay as
// originally resolved. Otherwise the item is appended as the new last entry.
func (l *Ledger) Upsert(item models.ExchangeItem) {
	if pos, ok := l.index[item.Barcode]; ok {
		l.items[pos].Quantity += item.Quantity
		return
	}
	l.index[item.Barcode] = len(l.items)
	l.items = append(l.items, item)
}

// RemoveLast removes and returns the most recently appended entry. It is the
// ledger's only deletion primitive (the UI's "undo last" button).
func (l *Ledger) RemoveLast() (models.ExchangeItem, error) {
	if len(l.items) == 0 {
		return models.ExchangeItem{}, ErrEmptyLedger
	}
	last := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	delete(l.index, last.Barcode)
	return last, nil
}

// Snapshot returns a copy of the current entries in insertion order.
func (l *Ledger) Snapshot() []models.ExchangeItem {
	out := make([]models.ExchangeItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of distinct entries currently held.
func (l *Ledger) Len() int {
	return len(l.items)
}

// DistinctSupplierCount reports how many distinct non-empty supplier names
// are present. Exchange forms historically carried a single supplier; mixed
// ledgers are permitted, this count is informational only.
func (l *Ledger) DistinctSupplierCount() int {
	seen := make(map[string]struct{})
	for _, item := range l.items {
		if item.SupplierName != "" {
			seen[item.SupplierName] = struct{}{}
		}
	}
	return len(seen)
}
