package models

import (
	"fmt"
	"time"
)

// PassType selects which collection a pass operation reads its source from.
type PassType string

const (
	PassTypePrivate PassType = "private"
	PassTypeMarket  PassType = "market"
	PassTypeAdmin   PassType = "admin"
)

// ParsePassType rejects anything outside the closed set of pass kinds.
func ParsePassType(s string) (PassType, error) {
	switch PassType(s) {
	case PassTypePrivate, PassTypeMarket, PassTypeAdmin:
		return PassType(s), nil
	}
	return "", fmt.Errorf("unknown pass type %q", s)
}

// PrivatePass is a user-owned bundle of gym entries.
// PurchasePrice and PurchaseCount record acquisition provenance for
// average-price display only; they take no part in consistency checks.
type PrivatePass struct {
	ID             string    `json:"id" firestore:"-"`
	UserID         string    `json:"userId" firestore:"userId"`
	GymID          string    `json:"gymId" firestore:"gymId"`
	GymDisplayName string    `json:"gymDisplayName" firestore:"gymDisplayName"`
	PassName       string    `json:"passName" firestore:"passName"`
	Count          int64     `json:"count" firestore:"count"`
	LastDay        time.Time `json:"lastDay" firestore:"lastDay"`
	Active         bool      `json:"active" firestore:"active"`
	PurchasePrice  float64   `json:"purchasePrice" firestore:"purchasePrice"`
	PurchaseCount  int64     `json:"purchaseCount" firestore:"purchaseCount"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
}

// MarketPass is a sale listing carved out of a PrivatePass.
// LastDay is inherited verbatim from the parent at listing time.
type MarketPass struct {
	ID             string    `json:"id" firestore:"-"`
	UserID         string    `json:"userId" firestore:"userId"`
	PrivatePassID  string    `json:"privatePassId" firestore:"privatePassId"`
	GymID          string    `json:"gymId" firestore:"gymId"`
	GymDisplayName string    `json:"gymDisplayName" firestore:"gymDisplayName"`
	PassName       string    `json:"passName" firestore:"passName"`
	Count          int64     `json:"count" firestore:"count"`
	Price          float64   `json:"price" firestore:"price"`
	Remarks        string    `json:"remarks,omitempty" firestore:"remarks"`
	LastDay        time.Time `json:"lastDay" firestore:"lastDay"`
	Active         bool      `json:"active" firestore:"active"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
}

// AdminPass is a gym administrator's distribution template. It carries no
// LastDay; expiry is derived from DurationMonths when a grant is minted.
type AdminPass struct {
	ID             string    `json:"id" firestore:"-"`
	GymID          string    `json:"gymId" firestore:"gymId"`
	GymDisplayName string    `json:"gymDisplayName" firestore:"gymDisplayName"`
	PassName       string    `json:"passName" firestore:"passName"`
	Count          int64     `json:"count" firestore:"count"`
	Price          float64   `json:"price" firestore:"price"`
	DurationMonths int       `json:"duration" firestore:"duration"`
	Active         bool      `json:"active" firestore:"active"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
}
