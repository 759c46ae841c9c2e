package services

import (
	"context"

	"passdepot/backend/models"
	"passdepot/backend/store"
)

// RemovePass soft-deletes one of the caller's passes by flipping its
// active flag. Removal is terminal for the document but writes no ledger
// record; nothing moved.
func (e *Engine) RemovePass(ctx context.Context, callerID string, req models.RemovePassRequest) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	passType, err := models.ParsePassType(req.PassType)
	if err != nil {
		return Errf(KindInvalidArgument, "%v", err)
	}
	if passType == models.PassTypeAdmin {
		return Errf(KindInvalidArgument, "admin passes are deleted, not removed")
	}
	if req.PassID == "" {
		return Errf(KindInvalidArgument, "passId is required")
	}

	return e.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		switch passType {
		case models.PassTypePrivate:
			pass, err := e.txPrivatePass(tx, req.PassID)
			if err != nil {
				return err
			}
			if err := requireOwner(callerID, pass.UserID); err != nil {
				return err
			}
			if !pass.Active {
				return Errf(KindFailedPrecondition, "pass is already removed")
			}
			pass.Active = false
			return tx.Set(e.privatePasses().Doc(pass.ID), pass)

		default: // market
			pass, err := e.txMarketPass(tx, req.PassID)
			if err != nil {
				return err
			}
			if err := requireOwner(callerID, pass.UserID); err != nil {
				return err
			}
			if !pass.Active {
				return Errf(KindFailedPrecondition, "listing is already removed")
			}
			pass.Active = false
			return tx.Set(e.marketPasses().Doc(pass.ID), pass)
		}
	})
}
