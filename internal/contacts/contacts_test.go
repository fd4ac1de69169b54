package contacts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpay/localpay/internal/model"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate_MergesAndDeduplicates(t *testing.T) {
	saved := []model.Contact{
		{CBU: "1111111111111111111111", Name: "Ana (guardada)", LastUsed: day(1)},
	}
	txns := []model.Transaction{
		{
			OtherParty: &model.Party{CBU: "1111111111111111111111", FullName: "Ana García"},
			CreatedAt:  day(10),
		},
		{
			OtherParty: &model.Party{CBU: "2222222222222222222222", FullName: "Bruno"},
			CreatedAt:  day(5),
		},
		{
			// No CBU: cannot be paid, skipped.
			OtherParty: &model.Party{BusinessName: "Kiosco Central"},
			CreatedAt:  day(8),
		},
		{
			// No counterpart at all (withdrawal).
			CreatedAt: day(9),
		},
	}

	got := Aggregate(saved, txns)
	require.Len(t, got, 2)

	assert.Equal(t, "Ana (guardada)", got[0].Name, "saved name wins over history")
	assert.True(t, got[0].LastUsed.Equal(day(10)), "recency refreshed from history")
	assert.Equal(t, "Bruno", got[1].Name)
}

func TestAggregate_SortsMostRecentFirst(t *testing.T) {
	txns := []model.Transaction{
		{OtherParty: &model.Party{CBU: "1111111111111111111111", FullName: "Viejo"}, CreatedAt: day(1)},
		{OtherParty: &model.Party{CBU: "2222222222222222222222", FullName: "Nuevo"}, CreatedAt: day(20)},
		{OtherParty: &model.Party{CBU: "3333333333333333333333", FullName: "Medio"}, CreatedAt: day(10)},
	}

	got := Aggregate(nil, txns)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Nuevo", "Medio", "Viejo"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestAggregate_RepeatCounterpartKeepsLatest(t *testing.T) {
	txns := []model.Transaction{
		{OtherParty: &model.Party{CBU: "1111111111111111111111", FullName: "Ana"}, CreatedAt: day(3)},
		{OtherParty: &model.Party{CBU: "1111111111111111111111", FullName: "Ana"}, CreatedAt: day(12)},
		{OtherParty: &model.Party{CBU: "1111111111111111111111", FullName: "Ana"}, CreatedAt: day(7)},
	}

	got := Aggregate(nil, txns)
	require.Len(t, got, 1)
	assert.True(t, got[0].LastUsed.Equal(day(12)))
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, nil))
}
