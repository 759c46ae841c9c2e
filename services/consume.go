package services

import (
	"context"

	"passdepot/backend/models"
	"passdepot/backend/store"
)

// ConsumeResult reports a committed consumption.
type ConsumeResult struct {
	ConsumedCount  int64
	RemainingCount int64
}

// ConsumePass burns entries when a holder checks in at the gym desk. Only
// an admin of the pass's gym may consume. The holder's private pass is
// probed first, then the market listings, so a pass mid-listing can still
// be used. Consumption is destructive, not a sale: the ledger price is
// always zero.
func (e *Engine) ConsumePass(ctx context.Context, callerID string, req models.ConsumePassRequest) (*ConsumeResult, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if req.PassID == "" {
		return nil, Errf(KindInvalidArgument, "passId is required")
	}
	if req.UserID == "" {
		return nil, Errf(KindInvalidArgument, "userId is required")
	}
	if req.Count <= 0 {
		return nil, Errf(KindInvalidArgument, "count must be a positive integer")
	}

	var result ConsumeResult
	err := e.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		caller, err := e.txUser(tx, callerID)
		if err != nil {
			return err
		}
		if !caller.IsAdmin {
			return Errf(KindPermissionDenied, "admin role required")
		}

		// Private pass first, market listing as fallback.
		var (
			gymID, gymDisplayName, passName string
			write                           func() error
		)
		if src, err := e.txPrivatePass(tx, req.PassID); err == nil {
			if src.UserID != req.UserID {
				return Errf(KindFailedPrecondition, "pass does not belong to user %s", req.UserID)
			}
			if err := requireGymAdmin(caller, src.GymID); err != nil {
				return err
			}
			if err := e.checkUsable(src.Active, src.LastDay, src.Count, req.Count); err != nil {
				return err
			}
			src.Count -= req.Count
			gymID, gymDisplayName, passName = src.GymID, src.GymDisplayName, src.PassName
			result = ConsumeResult{ConsumedCount: req.Count, RemainingCount: src.Count}
			write = func() error { return tx.Set(e.privatePasses().Doc(src.ID), src) }
		} else if KindOf(err) != KindNotFound {
			return err
		} else {
			src, err := e.txMarketPass(tx, req.PassID)
			if err != nil {
				return err
			}
			if src.UserID != req.UserID {
				return Errf(KindFailedPrecondition, "pass does not belong to user %s", req.UserID)
			}
			if err := requireGymAdmin(caller, src.GymID); err != nil {
				return err
			}
			if err := e.checkUsable(src.Active, src.LastDay, src.Count, req.Count); err != nil {
				return err
			}
			src.Count -= req.Count
			gymID, gymDisplayName, passName = src.GymID, src.GymDisplayName, src.PassName
			result = ConsumeResult{ConsumedCount: req.Count, RemainingCount: src.Count}
			write = func() error { return tx.Set(e.marketPasses().Doc(src.ID), src) }
		}

		if err := write(); err != nil {
			return err
		}
		return e.appendRecord(tx, models.PassRecord{
			GymID:          gymID,
			GymDisplayName: gymDisplayName,
			PassName:       passName,
			Count:          req.Count,
			Price:          0,
			FromUserID:     req.UserID,
			ToUserID:       callerID,
			Action:         models.ActionConsume,
			Participants:   []string{req.UserID, callerID},
		})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
