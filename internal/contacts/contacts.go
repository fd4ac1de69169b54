// Package contacts aggregates transfer counterparts for the send-money
// quick pick: explicitly saved contacts merged with counterparts seen in
// recent transaction history.
package contacts

import (
	"sort"

	"github.com/localpay/localpay/internal/model"
)

// Aggregate merges saved contacts with the counterparts of the given
// transactions, deduped by CBU with the most recent use winning, and
// returns them most-recently-used first. Parties without a CBU cannot be
// paid directly and are skipped.
func Aggregate(saved []model.Contact, txns []model.Transaction) []model.Contact {
	byCBU := make(map[string]model.Contact, len(saved))

	for _, c := range saved {
		if c.CBU == "" {
			continue
		}
		byCBU[c.CBU] = c
	}

	for _, tx := range txns {
		party := tx.OtherParty
		if party == nil || party.CBU == "" {
			continue
		}
		candidate := model.Contact{
			ID:       party.CBU,
			Name:     party.DisplayName(),
			CBU:      party.CBU,
			Email:    party.Email,
			LastUsed: tx.CreatedAt,
		}
		existing, ok := byCBU[party.CBU]
		if !ok {
			byCBU[party.CBU] = candidate
			continue
		}
		// Saved names win; history only refreshes recency.
		if candidate.LastUsed.After(existing.LastUsed) {
			existing.LastUsed = candidate.LastUsed
		}
		if existing.Name == "" {
			existing.Name = candidate.Name
		}
		byCBU[party.CBU] = existing
	}

	merged := make([]model.Contact, 0, len(byCBU))
	for _, c := range byCBU {
		merged = append(merged, c)
	}
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].LastUsed.Equal(merged[j].LastUsed) {
			return merged[i].LastUsed.After(merged[j].LastUsed)
		}
		return merged[i].Name < merged[j].Name
	})
	return merged
}
