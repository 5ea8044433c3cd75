package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojasmimi/trocas/backend/src/models"
)

func item(barcode, supplier string, qty int) models.ExchangeItem {
	return models.ExchangeItem{
		Barcode:      barcode,
		SupplierCode: "REF-" + barcode[len(barcode)-3:],
		Description:  "Produto " + barcode,
		SupplierName: supplier,
		Quantity:     qty,
	}
}

func TestUpsert(t *testing.T) {
	t.Run("appends new barcodes in insertion order", func(t *testing.T) {
		l := New()
		l.Upsert(item("00000000000111", "Acme", 1))
		l.Upsert(item("00000000000222", "Acme", 2))
		l.Upsert(item("00000000000333", "Beta", 3))

		snapshot := l.Snapshot()
		require.Len(t, snapshot, 3)
		assert.Equal(t, "00000000000111", snapshot[0].Barcode)
		assert.Equal(t, "00000000000222", snapshot[1].Barcode)
		assert.Equal(t, "00000000000333", snapshot[2].Barcode)
	})

	t.Run("merges duplicate barcodes by summing quantity", func(t *testing.T) {
		l := New()
		l.Upsert(item("00000000000111", "Acme", 3))
		l.Upsert(item("00000000000111", "Acme", 2))

		snapshot := l.Snapshot()
		require.Len(t, snapshot, 1)
		assert.Equal(t, 5, snapshot[0].Quantity)
	})

	t.Run("keeps originally resolved fields on merge", func(t *testing.T) {
		l := New()
		first := item("00000000000111", "Acme", 1)
		l.Upsert(first)

		refreshed := item("00000000000111", "Acme Renamed", 1)
		refreshed.Description = "Novo Nome"
		l.Upsert(refreshed)

		snapshot := l.Snapshot()
		require.Len(t, snapshot, 1)
		assert.Equal(t, first.Description, snapshot[0].Description)
		assert.Equal(t, first.SupplierName, snapshot[0].SupplierName)
		assert.Equal(t, 2, snapshot[0].Quantity)
	})

	t.Run("merge does not move an entry to the end", func(t *testing.T) {
		l := New()
		l.Upsert(item("00000000000111", "Acme", 1))
		l.Upsert(item("00000000000222", "Acme", 1))
		l.Upsert(item("00000000000111", "Acme", 1))

		snapshot := l.Snapshot()
		require.Len(t, snapshot, 2)
		assert.Equal(t, "00000000000111", snapshot[0].Barcode)
		assert.Equal(t, 2, snapshot[0].Quantity)
	})
}

func TestRemoveLast(t *testing.T) {
	t.Run("pops the most recent entry", func(t *testing.T) {
		l := New()
		l.Upsert(item("00000000000111", "Acme", 1))
		l.Upsert(item("00000000000222", "Acme", 2))

		removed, err := l.RemoveLast()
		require.NoError(t, err)
		assert.Equal(t, "00000000000222", removed.Barcode)
		assert.Equal(t, 1, l.Len())
	})

	t.Run("allows re-adding a removed barcode as a fresh entry", func(t *testing.T) {
		l := New()
		l.Upsert(item("00000000000111", "Acme", 5))
		_, err := l.RemoveLast()
		require.NoError(t, err)

		l.Upsert(item("00000000000111", "Acme", 2))
		snapshot := l.Snapshot()
		require.Len(t, snapshot, 1)
		assert.Equal(t, 2, snapshot[0].Quantity)
	})

	t.Run("fails on an empty ledger without state change", func(t *testing.T) {
		l := New()
		_, err := l.RemoveLast()
		assert.ErrorIs(t, err, ErrEmptyLedger)
		assert.Equal(t, 0, l.Len())
	})
}

func TestSnapshotIsACopy(t *testing.T) {
	l := New()
	l.Upsert(item("00000000000111", "Acme", 1))

	snapshot := l.Snapshot()
	snapshot[0].Quantity = 99

	assert.Equal(t, 1, l.Snapshot()[0].Quantity)
}

func TestDistinctSupplierCount(t *testing.T) {
	l := New()
	assert.Equal(t, 0, l.DistinctSupplierCount())

	l.Upsert(item("00000000000111", "Acme", 1))
	l.Upsert(item("00000000000222", "Acme", 1))
	assert.Equal(t, 1, l.DistinctSupplierCount())

	l.Upsert(item("00000000000333", "Beta", 1))
	assert.Equal(t, 2, l.DistinctSupplierCount())

	noName := item("00000000000444", "", 1)
	l.Upsert(noName)
	assert.Equal(t, 2, l.DistinctSupplierCount())
}
