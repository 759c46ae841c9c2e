package services

import (
	"context"

	"passdepot/backend/models"
	"passdepot/backend/store"
)

// AddAdminPass creates a distribution template for the caller's gym.
// Inventory creation is not a pass movement, so no ledger record is
// written.
func (e *Engine) AddAdminPass(ctx context.Context, callerID string, req models.AddAdminPassRequest) (string, error) {
	if err := requireCaller(callerID); err != nil {
		return "", err
	}
	if req.GymID == "" {
		return "", Errf(KindInvalidArgument, "gymId is required")
	}
	if req.PassName == "" {
		return "", Errf(KindInvalidArgument, "passName is required")
	}
	if req.Count <= 0 {
		return "", Errf(KindInvalidArgument, "count must be a positive integer")
	}
	if req.Price < 0 {
		return "", Errf(KindInvalidArgument, "price must not be negative")
	}
	if req.Duration <= 0 {
		return "", Errf(KindInvalidArgument, "duration must be a positive number of months")
	}
	displayName := req.GymDisplayName
	if displayName == "" {
		displayName = req.GymID
	}

	ref := e.adminPasses().NewDoc()
	err := e.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		caller, err := e.txUser(tx, callerID)
		if err != nil {
			return err
		}
		if err := requireGymAdmin(caller, req.GymID); err != nil {
			return err
		}
		return tx.Create(ref, models.AdminPass{
			GymID:          req.GymID,
			GymDisplayName: displayName,
			PassName:       req.PassName,
			Count:          req.Count,
			Price:          req.Price,
			DurationMonths: req.Duration,
			Active:         true,
			CreatedAt:      e.now(),
		})
	})
	if err != nil {
		return "", err
	}
	return ref.ID(), nil
}

// DeleteAdminPass hard-deletes a template. Template removal is not a
// transaction between users, so no ledger record is written.
func (e *Engine) DeleteAdminPass(ctx context.Context, callerID, adminPassID string) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	if adminPassID == "" {
		return Errf(KindInvalidArgument, "adminPassId is required")
	}

	return e.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		caller, err := e.txUser(tx, callerID)
		if err != nil {
			return err
		}
		pass, err := e.txAdminPass(tx, adminPassID)
		if err != nil {
			return err
		}
		if err := requireGymAdmin(caller, pass.GymID); err != nil {
			return err
		}
		return tx.Delete(e.adminPasses().Doc(adminPassID))
	})
}

// SellAdminPass distributes a template's allotment to a user as a new
// private pass. The template itself is not decremented: each grant hands
// out the full allotment and the template stays reusable. lastDay is
// derived from the template's validity period against its creation time,
// per the calendar-month rule in ExpiryFromDuration.
func (e *Engine) SellAdminPass(ctx context.Context, callerID string, req models.SellAdminPassRequest) (string, error) {
	if err := requireCaller(callerID); err != nil {
		return "", err
	}
	if req.AdminPassID == "" {
		return "", Errf(KindInvalidArgument, "adminPassId is required")
	}
	if req.RecipientUserID == "" {
		return "", Errf(KindInvalidArgument, "recipientUserId is required")
	}
	if req.RecipientUserID == callerID {
		return "", Errf(KindInvalidArgument, "cannot sell a pass to yourself")
	}

	var newPassID string
	err := e.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		caller, err := e.txUser(tx, callerID)
		if err != nil {
			return err
		}
		pass, err := e.txAdminPass(tx, req.AdminPassID)
		if err != nil {
			return err
		}
		if err := requireGymAdmin(caller, pass.GymID); err != nil {
			return err
		}
		if !pass.Active {
			return Errf(KindFailedPrecondition, "admin pass is no longer active")
		}
		if _, err := e.txUser(tx, req.RecipientUserID); err != nil {
			return err
		}

		base := pass.CreatedAt
		if base.IsZero() {
			base = e.now()
		}
		ref := e.privatePasses().NewDoc()
		if err := tx.Create(ref, models.PrivatePass{
			UserID:         req.RecipientUserID,
			GymID:          pass.GymID,
			GymDisplayName: pass.GymDisplayName,
			PassName:       pass.PassName,
			Count:          pass.Count,
			LastDay:        ExpiryFromDuration(base, pass.DurationMonths),
			Active:         true,
			PurchasePrice:  pass.Price,
			PurchaseCount:  pass.Count,
			CreatedAt:      e.now(),
		}); err != nil {
			return err
		}
		newPassID = ref.ID()

		return e.appendRecord(tx, models.PassRecord{
			GymID:          pass.GymID,
			GymDisplayName: pass.GymDisplayName,
			PassName:       pass.PassName,
			Count:          pass.Count,
			Price:          pass.Price,
			FromUserID:     callerID,
			ToUserID:       req.RecipientUserID,
			Action:         models.ActionSellAdmin,
			Participants:   []string{callerID, req.RecipientUserID},
		})
	})
	if err != nil {
		return "", err
	}
	return newPassID, nil
}
