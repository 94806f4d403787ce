// internal/catalog/ledger_test.go
package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture(t *testing.T) (*EntityStore, *LoanLedger) {
	t.Helper()
	store := NewEntityStore()
	require.NoError(t, store.AddItem(testItem("I1", "First")))
	require.NoError(t, store.AddItem(testItem("I2", "Second")))
	require.NoError(t, store.AddHolder(testHolder("U1", "Ana")))
	require.NoError(t, store.AddHolder(testHolder("U2", "Luis")))
	return store, NewLoanLedger(store)
}

func TestLedgerLoanAndReturnCycle(t *testing.T) {
	_, ledger := newLedgerFixture(t)

	available, err := ledger.IsAvailable("I1")
	require.NoError(t, err)
	assert.True(t, available)

	loan, err := ledger.Loan("I1", "U1")
	require.NoError(t, err)
	assert.Equal(t, "I1", loan.ItemID)
	assert.Equal(t, "U1", loan.HolderID)
	assert.NotEqual(t, uuid.Nil, loan.ID)

	available, err = ledger.IsAvailable("I1")
	require.NoError(t, err)
	assert.False(t, available)

	holderID, loaned := ledger.CurrentHolder("I1")
	assert.True(t, loaned)
	assert.Equal(t, "U1", holderID)

	returned, err := ledger.Return("I1")
	require.NoError(t, err)
	assert.Equal(t, loan.ID, returned.ID)

	// The cycle restarts: the item can be loaned again, to anyone.
	_, err = ledger.Loan("I1", "U2")
	require.NoError(t, err)
}

func TestLedgerRejectsSecondLoan(t *testing.T) {
	_, ledger := newLedgerFixture(t)

	_, err := ledger.Loan("I1", "U1")
	require.NoError(t, err)

	_, err = ledger.Loan("I1", "U2")
	assert.ErrorIs(t, err, ErrAlreadyLoaned)
	// The failure names the current holder.
	assert.Contains(t, err.Error(), "U1")
}

func TestLedgerDoubleReturnFails(t *testing.T) {
	_, ledger := newLedgerFixture(t)

	_, err := ledger.Loan("I1", "U1")
	require.NoError(t, err)

	_, err = ledger.Return("I1")
	require.NoError(t, err)

	_, err = ledger.Return("I1")
	assert.ErrorIs(t, err, ErrNotLoaned)
}

func TestLedgerUnknownIDs(t *testing.T) {
	_, ledger := newLedgerFixture(t)

	_, err := ledger.Loan("missing", "U1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ledger.Loan("I1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ledger.IsAvailable("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ledger.HeldBy("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLedgerHeldByIsDerivedAndOrdered(t *testing.T) {
	_, ledger := newLedgerFixture(t)

	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ledger.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	held, err := ledger.HeldBy("U1")
	require.NoError(t, err)
	assert.Empty(t, held)

	_, err = ledger.Loan("I2", "U1")
	require.NoError(t, err)
	_, err = ledger.Loan("I1", "U1")
	require.NoError(t, err)

	held, err = ledger.HeldBy("U1")
	require.NoError(t, err)
	assert.Equal(t, []string{"I2", "I1"}, held)

	_, err = ledger.Return("I2")
	require.NoError(t, err)

	held, err = ledger.HeldBy("U1")
	require.NoError(t, err)
	assert.Equal(t, []string{"I1"}, held)
	assert.Equal(t, 1, ledger.ActiveCount())
}
