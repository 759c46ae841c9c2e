package services

import (
	"context"
	"sort"

	"passdepot/backend/models"
)

// Read-side queries backing the client's screens. These are advisory,
// non-transactional reads; mutating operations always re-read inside
// their own transaction.

// ListMyRecords returns the caller's ledger trail, newest first.
func (e *Engine) ListMyRecords(ctx context.Context, callerID string) ([]models.PassRecord, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	docs, err := e.passRecords().Where("participants", "array-contains", callerID).Documents(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]models.PassRecord, 0, len(docs))
	for _, doc := range docs {
		var rec models.PassRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, Errf(KindInternal, "failed to decode pass record")
		}
		rec.ID = doc.Ref().ID()
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// MyPasses bundles the caller's holdings for the wallet screen.
type MyPasses struct {
	PrivatePasses []models.PrivatePass `json:"privatePasses"`
	MarketPasses  []models.MarketPass  `json:"marketPasses"`
}

// ListMyPasses returns the caller's live private passes and listings.
func (e *Engine) ListMyPasses(ctx context.Context, callerID string) (*MyPasses, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	result := &MyPasses{
		PrivatePasses: []models.PrivatePass{},
		MarketPasses:  []models.MarketPass{},
	}

	docs, err := e.privatePasses().
		Where("userId", "==", callerID).
		Where("active", "==", true).
		Documents(ctx)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		var p models.PrivatePass
		if err := doc.DataTo(&p); err != nil {
			return nil, Errf(KindInternal, "failed to decode pass")
		}
		p.ID = doc.Ref().ID()
		result.PrivatePasses = append(result.PrivatePasses, p)
	}

	docs, err = e.marketPasses().
		Where("userId", "==", callerID).
		Where("active", "==", true).
		Documents(ctx)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		var p models.MarketPass
		if err := doc.DataTo(&p); err != nil {
			return nil, Errf(KindInternal, "failed to decode listing")
		}
		p.ID = doc.Ref().ID()
		result.MarketPasses = append(result.MarketPasses, p)
	}
	return result, nil
}

// ListMarket returns all live listings, the marketplace browse view.
// Expired listings are filtered out here rather than swept by any
// background job; expiry is re-checked transactionally on purchase.
func (e *Engine) ListMarket(ctx context.Context, callerID string) ([]models.MarketPass, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	docs, err := e.marketPasses().Where("active", "==", true).Documents(ctx)
	if err != nil {
		return nil, err
	}
	now := e.now()
	listings := make([]models.MarketPass, 0, len(docs))
	for _, doc := range docs {
		var p models.MarketPass
		if err := doc.DataTo(&p); err != nil {
			return nil, Errf(KindInternal, "failed to decode listing")
		}
		if p.Count <= 0 || Expired(p.LastDay, now) {
			continue
		}
		p.ID = doc.Ref().ID()
		listings = append(listings, p)
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

// ListGymAdminPasses returns the caller's gym's distribution templates.
func (e *Engine) ListGymAdminPasses(ctx context.Context, callerID string) ([]models.AdminPass, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	caller, err := e.GetUserProfile(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin || caller.AdminGym == "" {
		return nil, Errf(KindPermissionDenied, "admin role required")
	}

	docs, err := e.adminPasses().
		Where("gymId", "==", caller.AdminGym).
		Where("active", "==", true).
		Documents(ctx)
	if err != nil {
		return nil, err
	}
	passes := make([]models.AdminPass, 0, len(docs))
	for _, doc := range docs {
		var p models.AdminPass
		if err := doc.DataTo(&p); err != nil {
			return nil, Errf(KindInternal, "failed to decode admin pass")
		}
		p.ID = doc.Ref().ID()
		passes = append(passes, p)
	}
	sort.Slice(passes, func(i, j int) bool {
		return passes[i].CreatedAt.After(passes[j].CreatedAt)
	})
	return passes, nil
}
