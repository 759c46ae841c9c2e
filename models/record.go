package models

import "time"

// Ledger actions
const (
	ActionTransfer   = "transfer"
	ActionMarket     = "market"
	ActionUnlist     = "unlist"
	ActionConsume    = "consume"
	ActionSellAdmin  = "sell_admin"
	ActionSellMarket = "sell_market"
)

// PassRecord is an append-only audit entry written in the same transaction
// as the pass mutation it describes. Participants backs the caller's
// "my records" query (array-contains).
type PassRecord struct {
	ID             string    `json:"id" firestore:"-"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
	GymID          string    `json:"gymId" firestore:"gymId"`
	GymDisplayName string    `json:"gymDisplayName" firestore:"gymDisplayName"`
	PassName       string    `json:"passName" firestore:"passName"`
	Count          int64     `json:"count" firestore:"count"`
	Price          float64   `json:"price" firestore:"price"`
	FromUserID     string    `json:"fromUserId,omitempty" firestore:"fromUserId"`
	ToUserID       string    `json:"toUserId,omitempty" firestore:"toUserId"`
	Action         string    `json:"action" firestore:"action"`
	Participants   []string  `json:"participants" firestore:"participants"`
}
