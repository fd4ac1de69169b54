package components

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/tui/themes"
)

func testWithdrawalCode(expiresIn time.Duration) (model.WithdrawalCode, time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return model.WithdrawalCode{
		Code:      "482915",
		Amount:    decimal.RequireFromString("75.00"),
		Currency:  "USD",
		Status:    model.WithdrawalStatusPending,
		ExpiresAt: now.Add(expiresIn),
	}, now
}

func TestWithdrawalCode_Countdown(t *testing.T) {
	code, now := testWithdrawalCode(15 * time.Minute)

	view := NewWithdrawalCode(code, themes.Default)
	view.now = func() time.Time { return now }

	assert.False(t, view.Expired())
	assert.Equal(t, "15:00", view.CountdownLabel())

	view.now = func() time.Time { return now.Add(14*time.Minute + 55*time.Second) }
	assert.Equal(t, "0:05", view.CountdownLabel())
	assert.False(t, view.Expired())
}

func TestWithdrawalCode_TickKeepsRunningUntilExpiry(t *testing.T) {
	code, now := testWithdrawalCode(2 * time.Second)

	view := NewWithdrawalCode(code, themes.Default)
	view.now = func() time.Time { return now }

	view, cmd := view.Update(CodeTickMsg(now))
	require.NotNil(t, cmd, "ticker keeps running while the code is live")
	assert.False(t, view.Expired())

	view.now = func() time.Time { return now.Add(3 * time.Second) }
	view, cmd = view.Update(CodeTickMsg(now.Add(3 * time.Second)))
	assert.Nil(t, cmd, "ticker stops at expiry")
	assert.True(t, view.Expired())
}

func TestWithdrawalCode_ViewShowsExpiredState(t *testing.T) {
	code, now := testWithdrawalCode(10 * time.Minute)

	view := NewWithdrawalCode(code, themes.Default)
	view.now = func() time.Time { return now }
	assert.Contains(t, view.View(), "Expira en")
	assert.Contains(t, view.View(), "4 8 2 9 1 5")

	view.now = func() time.Time { return now.Add(11 * time.Minute) }
	assert.Contains(t, view.View(), model.CountdownExpired)
}

func TestWithdrawalCode_LabelTerminalAfterExpiry(t *testing.T) {
	code, now := testWithdrawalCode(time.Minute)

	view := NewWithdrawalCode(code, themes.Default)
	view.now = func() time.Time { return now.Add(time.Hour) }
	assert.Equal(t, model.CountdownExpired, view.CountdownLabel())
	assert.True(t, view.Expired())
}
