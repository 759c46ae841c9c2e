package services

import (
	"context"
	"time"

	"passdepot/backend/models"
	"passdepot/backend/store"
)

// TransferPass moves entries from a private, market, or admin source to a
// new private pass owned by the recipient. Private and market sources are
// decremented and keep their lastDay on the minted pass verbatim; an admin
// source is a reusable template, left unmodified, with the minted pass's
// lastDay derived from the template's validity period.
func (e *Engine) TransferPass(ctx context.Context, callerID string, req models.TransferPassRequest) (string, error) {
	if err := requireCaller(callerID); err != nil {
		return "", err
	}
	passType, err := models.ParsePassType(req.PassType)
	if err != nil {
		return "", Errf(KindInvalidArgument, "%v", err)
	}
	if req.PassID == "" {
		return "", Errf(KindInvalidArgument, "passId is required")
	}
	if req.FromUserID == "" || req.ToUserID == "" {
		return "", Errf(KindInvalidArgument, "fromUserId and toUserId are required")
	}
	// Rejected before any document read.
	if req.FromUserID == req.ToUserID {
		return "", Errf(KindInvalidArgument, "cannot transfer a pass to yourself")
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
	err = e.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		if _, err := e.txUser(tx, req.ToUserID); err != nil {
			return err
		}

		var (
			minted models.PrivatePass
			record models.PassRecord
		)
		now := e.now()

		switch passType {
		case models.PassTypePrivate:
			src, err := e.txPrivatePass(tx, req.PassID)
			if err != nil {
				return err
			}
			if err := requireOwner(req.FromUserID, src.UserID); err != nil {
				return err
			}
			if err := e.checkUsable(src.Active, src.LastDay, src.Count, req.Count); err != nil {
				return err
			}
			minted = mintedFromSource(req, src.GymID, src.GymDisplayName, src.PassName, src.LastDay, now)
			record = transferRecord(req, src.GymID, src.GymDisplayName, src.PassName, models.ActionTransfer)

			src.Count -= req.Count
			if err := tx.Set(e.privatePasses().Doc(src.ID), src); err != nil {
				return err
			}

		case models.PassTypeMarket:
			src, err := e.txMarketPass(tx, req.PassID)
			if err != nil {
				return err
			}
			if err := requireOwner(req.FromUserID, src.UserID); err != nil {
				return err
			}
			if err := e.checkUsable(src.Active, src.LastDay, src.Count, req.Count); err != nil {
				return err
			}
			minted = mintedFromSource(req, src.GymID, src.GymDisplayName, src.PassName, src.LastDay, now)
			record = transferRecord(req, src.GymID, src.GymDisplayName, src.PassName, models.ActionTransfer)

			src.Count -= req.Count
			if err := tx.Set(e.marketPasses().Doc(src.ID), src); err != nil {
				return err
			}

		case models.PassTypeAdmin:
			caller, err := e.txUser(tx, callerID)
			if err != nil {
				return err
			}
			src, err := e.txAdminPass(tx, req.PassID)
			if err != nil {
				return err
			}
			if err := requireGymAdmin(caller, src.GymID); err != nil {
				return err
			}
			if !src.Active {
				return Errf(KindFailedPrecondition, "admin pass is no longer active")
			}
			if src.Count < req.Count {
				return Errf(KindFailedPrecondition, "insufficient entries: %d available, %d requested", src.Count, req.Count)
			}
			base := src.CreatedAt
			if base.IsZero() {
				base = now
			}
			minted = models.PrivatePass{
				UserID:         req.ToUserID,
				GymID:          src.GymID,
				GymDisplayName: src.GymDisplayName,
				PassName:       src.PassName,
				Count:          req.Count,
				LastDay:        ExpiryFromDuration(base, src.DurationMonths),
				Active:         true,
				PurchasePrice:  src.Price,
				PurchaseCount:  src.Count,
				CreatedAt:      now,
			}
			record = transferRecord(req, src.GymID, src.GymDisplayName, src.PassName, models.ActionSellAdmin)
			record.Price = src.Price
			// The template is a reusable allotment, not depleted inventory;
			// it is deliberately left unmodified.
		}

		ref := e.privatePasses().NewDoc()
		if err := tx.Create(ref, minted); err != nil {
			return err
		}
		newPassID = ref.ID()
		return e.appendRecord(tx, record)
	})
	if err != nil {
		return "", err
	}
	return newPassID, nil
}

// mintedFromSource builds the recipient's pass for a private or market
// source: lastDay is copied verbatim, provenance is the transfer price and
// count.
func mintedFromSource(req models.TransferPassRequest, gymID, gymDisplayName, passName string, lastDay time.Time, now time.Time) models.PrivatePass {
	return models.PrivatePass{
		UserID:         req.ToUserID,
		GymID:          gymID,
		GymDisplayName: gymDisplayName,
		PassName:       passName,
		Count:          req.Count,
		LastDay:        lastDay,
		Active:         true,
		PurchasePrice:  req.Price,
		PurchaseCount:  req.Count,
		CreatedAt:      now,
	}
}

func transferRecord(req models.TransferPassRequest, gymID, gymDisplayName, passName, action string) models.PassRecord {
	return models.PassRecord{
		GymID:          gymID,
		GymDisplayName: gymDisplayName,
		PassName:       passName,
		Count:          req.Count,
		Price:          req.Price,
		FromUserID:     req.FromUserID,
		ToUserID:       req.ToUserID,
		Action:         action,
		Participants:   []string{req.FromUserID, req.ToUserID},
	}
}
