package components

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/tui/themes"
)

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		{
			ID:         "txn-1",
			Type:       model.TypeTransfer,
			Direction:  model.DirectionOutgoing,
			Amount:     decimal.RequireFromString("50.00"),
			Currency:   "USD",
			Status:     "COMPLETED",
			OtherParty: &model.Party{FullName: "Ana García", CBU: "1234567890123456789012"},
			CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        "txn-2",
			Type:      model.TypeDeposit,
			Direction: model.DirectionIncoming,
			Amount:    decimal.RequireFromString("120.50"),
			Currency:  "USD",
			Status:    "COMPLETED",
			CreatedAt: time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestTransactionList_RowsCarrySignedAmounts(t *testing.T) {
	m := NewTransactionList(sampleTransactions(), model.Pagination{Total: 2, Limit: 20}, themes.Default)
	view := m.View()

	assert.Contains(t, view, "-$50.00")
	assert.Contains(t, view, "+$120.50")
	assert.NotContains(t, view, "++$")
	assert.NotContains(t, view, "$$")
}

func TestTransactionList_TypeLabels(t *testing.T) {
	assert.Equal(t, "Transferencia", typeLabel(model.TypeTransfer))
	assert.Equal(t, "Depósito", typeLabel(model.TypeDeposit))
	assert.Equal(t, "Retiro", typeLabel(model.TypeWithdrawal))
	assert.Equal(t, "reversal", typeLabel("reversal"))
}

func TestTransactionList_FormatDate(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "01/06/2025 12:00", formatDate(ts))
	assert.Equal(t, "", formatDate(time.Time{}))
}

func TestTransactionList_FilterNarrowsRows(t *testing.T) {
	m := NewTransactionList(sampleTransactions(), model.Pagination{Total: 2, Limit: 20}, themes.Default)
	m.filterInput.SetValue("ana")
	m.applyFilter()

	assert.Len(t, m.filtered, 1)
	assert.Equal(t, "txn-1", m.filtered[0].ID)
}

func TestTransactionDetail_RendersSignedAmountOnce(t *testing.T) {
	txns := sampleTransactions()
	d := NewTransactionDetail(txns[0], themes.Default)
	view := d.View()

	assert.Contains(t, view, "-$50.00 USD")
	assert.Contains(t, view, "Transferencia")
	assert.Contains(t, view, "Ana García")
	assert.NotContains(t, view, "$-$")
}
