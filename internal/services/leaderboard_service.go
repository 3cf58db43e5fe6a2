package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mintyscan/mintyscan-backend/internal/amount"
	"github.com/mintyscan/mintyscan-backend/internal/metrics"
	"github.com/mintyscan/mintyscan-backend/internal/models"
	repo "github.com/mintyscan/mintyscan-backend/internal/repository"
)

type LeaderboardService struct {
	mints    repo.Mints
	resetKey string
}

func NewLeaderboardService(m repo.Mints, resetKey string) *LeaderboardService {
	return &LeaderboardService{mints: m, resetKey: resetKey}
}

// Leaderboard recomputes the ranking from the full ledger on every call:
// group by user, sum amounts, round totals to 5 places, sort descending.
// A user's wallet is the recipient of their first-seen record. Ties keep
// first-seen user order (stable sort).
func (s *LeaderboardService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	recs, err := s.mints.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	totals := make(map[string]decimal.Decimal)
	wallets := make(map[string]string)
	var order []string
	for _, m := range recs {
		amt := decimal.NewFromFloat(m.Amount)
		if t, ok := totals[m.UserID]; ok {
			totals[m.UserID] = t.Add(amt)
		} else {
			totals[m.UserID] = amt
			wallets[m.UserID] = m.Recipient
			order = append(order, m.UserID)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]].GreaterThan(totals[order[j]])
	})

	entries := make([]models.LeaderboardEntry, 0, len(order))
	for _, uid := range order {
		entries = append(entries, models.LeaderboardEntry{
			UserID:      uid,
			Wallet:      wallets[uid],
			TotalAmount: amount.RoundTotal(totals[uid]).InexactFloat64(),
		})
	}
	metrics.LeaderboardRequests.Inc()
	return entries, nil
}

// Reset deletes the whole ledger when the supplied key matches the configured
// one. Plain string comparison: the key is a coarse operational guard, not an
// authentication scheme.
func (s *LeaderboardService) Reset(ctx context.Context, suppliedKey string) error {
	if suppliedKey != s.resetKey {
		return fmt.Errorf("%w: invalid reset key", ErrForbidden)
	}
	if err := s.mints.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	metrics.LeaderboardResets.Inc()
	return nil
}
