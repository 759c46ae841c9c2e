package services

import (
	"context"

	"passdepot/backend/models"
	"passdepot/backend/store"
)

// ListPassForMarket carves a sale listing out of one of the caller's
// private passes. Sellers must be reachable: a listing is rejected until
// the caller's profile carries a telegram handle. The listing inherits the
// parent's lastDay verbatim and the parent is decremented by exactly the
// listed amount, so parent count plus live listings never exceeds the
// pre-listing total.
func (e *Engine) ListPassForMarket(ctx context.Context, callerID string, req models.ListPassForMarketRequest) (string, error) {
	if err := requireCaller(callerID); err != nil {
		return "", err
	}
	if req.PrivatePassID == "" {
		return "", Errf(KindInvalidArgument, "privatePassId is required")
	}
	if req.Count <= 0 {
		return "", Errf(KindInvalidArgument, "count must be a positive integer")
	}
	if req.Price < 0 {
		return "", Errf(KindInvalidArgument, "price must not be negative")
	}

	var listingID string
	err := e.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		caller, err := e.txUser(tx, callerID)
		if err != nil {
			return err
		}
		if caller.TelegramID == "" {
			return Errf(KindFailedPrecondition, "a telegram handle is required before listing a pass for sale")
		}
		src, err := e.txPrivatePass(tx, req.PrivatePassID)
		if err != nil {
			return err
		}
		if err := requireOwner(callerID, src.UserID); err != nil {
			return err
		}
		if err := e.checkUsable(src.Active, src.LastDay, src.Count, req.Count); err != nil {
			return err
		}

		ref := e.marketPasses().NewDoc()
		if err := tx.Create(ref, models.MarketPass{
			UserID:         callerID,
			PrivatePassID:  src.ID,
			GymID:          src.GymID,
			GymDisplayName: src.GymDisplayName,
			PassName:       src.PassName,
			Count:          req.Count,
			Price:          req.Price,
			Remarks:        req.Remarks,
			LastDay:        src.LastDay,
			Active:         true,
			CreatedAt:      e.now(),
		}); err != nil {
			return err
		}
		listingID = ref.ID()

		src.Count -= req.Count
		if err := tx.Set(e.privatePasses().Doc(src.ID), src); err != nil {
			return err
		}

		// A listing is one-party: not yet a transfer between two people.
		return e.appendRecord(tx, models.PassRecord{
			GymID:          src.GymID,
			GymDisplayName: src.GymDisplayName,
			PassName:       src.PassName,
			Count:          req.Count,
			Price:          req.Price,
			FromUserID:     callerID,
			Action:         models.ActionMarket,
			Participants:   []string{callerID},
		})
	})
	if err != nil {
		return "", err
	}
	return listingID, nil
}

// UnlistPass withdraws a listing, returning its full remaining count to
// the parent private pass and hard-deleting the listing.
func (e *Engine) UnlistPass(ctx context.Context, callerID, marketPassID string) (int64, error) {
	if err := requireCaller(callerID); err != nil {
		return 0, err
	}
	if marketPassID == "" {
		return 0, Errf(KindInvalidArgument, "marketPassId is required")
	}

	var returned int64
	err := e.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		listing, err := e.txMarketPass(tx, marketPassID)
		if err != nil {
			return err
		}
		if err := requireOwner(callerID, listing.UserID); err != nil {
			return err
		}
		if !listing.Active {
			return Errf(KindFailedPrecondition, "listing is no longer active")
		}
		if Expired(listing.LastDay, e.now()) {
			return Errf(KindFailedPrecondition, "listing has expired")
		}
		parent, err := e.txPrivatePass(tx, listing.PrivatePassID)
		if err != nil {
			return err
		}
		if err := requireOwner(callerID, parent.UserID); err != nil {
			return err
		}
		if !parent.Active {
			return Errf(KindFailedPrecondition, "parent pass is no longer active")
		}

		parent.Count += listing.Count
		if err := tx.Set(e.privatePasses().Doc(parent.ID), parent); err != nil {
			return err
		}
		if err := tx.Delete(e.marketPasses().Doc(listing.ID)); err != nil {
			return err
		}
		returned = listing.Count

		return e.appendRecord(tx, models.PassRecord{
			GymID:          listing.GymID,
			GymDisplayName: listing.GymDisplayName,
			PassName:       listing.PassName,
			Count:          listing.Count,
			Price:          0,
			FromUserID:     callerID,
			Action:         models.ActionUnlist,
			Participants:   []string{callerID},
		})
	})
	if err != nil {
		return 0, err
	}
	return returned, nil
}

// SellMarketPass completes a sale off one of the caller's listings,
// minting a private pass for the buyer. The minted pass carries the total
// paid (unit price times count) as its purchase provenance.
func (e *Engine) SellMarketPass(ctx context.Context, callerID string, req models.SellMarketPassRequest) (string, error) {
	if err := requireCaller(callerID); err != nil {
		return "", err
	}
	if req.PassID == "" {
		return "", Errf(KindInvalidArgument, "passId is required")
	}
	if req.FromUserID == "" || req.ToUserID == "" {
		return "", Errf(KindInvalidArgument, "fromUserId and toUserId are required")
	}
	if req.FromUserID == req.ToUserID {
		return "", Errf(KindInvalidArgument, "cannot sell a pass to yourself")
	}
	if req.Count <= 0 {
		return "", Errf(KindInvalidArgument, "count must be a positive integer")
	}
	if req.Price < 0 {
		return "", Errf(KindInvalidArgument, "price must not be negative")
	}
	if err := requireOwner(callerID, req.FromUserID); err != nil {
		return "", err
	}

	var newPassID string
	err := e.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := e.txUser(tx, req.ToUserID); err != nil {
			return err
		}
		listing, err := e.txMarketPass(tx, req.PassID)
		if err != nil {
			return err
		}
		if err := requireOwner(req.FromUserID, listing.UserID); err != nil {
			return err
		}
		if err := e.checkUsable(listing.Active, listing.LastDay, listing.Count, req.Count); err != nil {
			return err
		}

		now := e.now()
		ref := e.privatePasses().NewDoc()
		if err := tx.Create(ref, models.PrivatePass{
			UserID:         req.ToUserID,
			GymID:          listing.GymID,
			GymDisplayName: listing.GymDisplayName,
			PassName:       listing.PassName,
			Count:          req.Count,
			LastDay:        listing.LastDay,
			Active:         true,
			PurchasePrice:  req.Price * float64(req.Count),
			PurchaseCount:  req.Count,
			CreatedAt:      now,
		}); err != nil {
			return err
		}
		newPassID = ref.ID()

		listing.Count -= req.Count
		if err := tx.Set(e.marketPasses().Doc(listing.ID), listing); err != nil {
			return err
		}

		return e.appendRecord(tx, models.PassRecord{
			GymID:          listing.GymID,
			GymDisplayName: listing.GymDisplayName,
			PassName:       listing.PassName,
			Count:          req.Count,
			Price:          req.Price,
			FromUserID:     req.FromUserID,
			ToUserID:       req.ToUserID,
			Action:         models.ActionSellMarket,
			Participants:   []string{req.FromUserID, req.ToUserID},
		})
	})
	if err != nil {
		return "", err
	}
	return newPassID, nil
}
