package models

import "time"

// MintRecord is one accepted mint authorization. Rows are append-only; the only
// delete path is the leaderboard reset, which removes all rows at once.
type MintRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Recipient string    `json:"recipient"`
	Amount    float64   `json:"amount"` // whole-unit tokens, not wei
	CreatedAt time.Time `json:"createdAt"`
}

// LeaderboardEntry is derived per request from the mint ledger; it is never
// stored. Wallet is the recipient of the user's first-seen record.
type LeaderboardEntry struct {
	UserID      string  `json:"userId"`
	Wallet      string  `json:"wallet"`
	TotalAmount float64 `json:"totalAmount"` // rounded to 5 decimal places
}
