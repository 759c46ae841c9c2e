package services

import "passdepot/backend/models"

// Authorization checks shared by the pass operations. Every check returns
// a kinded error and short-circuits the transaction before any write is
// staged.

func requireCaller(callerID string) error {
	if callerID == "" {
		return Errf(KindUnauthenticated, "authentication required")
	}
	return nil
}

// requireGymAdmin gates the admin operations: the caller must hold the
// admin role and be scoped to the resource's gym. A cross-gym admin may
// not touch another gym's inventory.
func requireGymAdmin(caller *models.User, gymID string) error {
	if !caller.IsAdmin {
		return Errf(KindPermissionDenied, "admin role required")
	}
	if caller.AdminGym != gymID {
		return Errf(KindPermissionDenied, "not an admin of gym %s", gymID)
	}
	return nil
}

func requireOwner(callerID, ownerID string) error {
	if callerID != ownerID {
		return Errf(KindPermissionDenied, "pass is not owned by the caller")
	}
	return nil
}
