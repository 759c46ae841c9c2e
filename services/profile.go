package services

import (
	"context"
	"errors"

	"passdepot/backend/models"
	"passdepot/backend/store"
)

// SyncUserProfile creates the caller's profile document on first sign-in.
// It is idempotent: if the document already exists, nothing is overwritten
// and the stored profile is returned unchanged.
func (e *Engine) SyncUserProfile(ctx context.Context, callerID, name string) (*models.User, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}

	var result *models.User
	err := e.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		existing, err := e.txUser(tx, callerID)
		if err == nil {
			result = existing
			return nil
		}
		if KindOf(err) != KindNotFound {
			return err
		}

		now := e.now()
		u := models.User{
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(e.users().Doc(callerID), u); err != nil {
			return err
		}
		u.ID = callerID
		result = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateUserProfile mutates the caller's own mutable profile fields. The
// admin fields are administrative state and never pass through here.
func (e *Engine) UpdateUserProfile(ctx context.Context, callerID string, req models.UpdateProfileRequest) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	if req.Name == "" {
		return Errf(KindInvalidArgument, "name is required")
	}

	return e.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		u, err := e.txUser(tx, callerID)
		if err != nil {
			return err
		}
		u.Name = req.Name
		u.PhoneNumber = req.PhoneNumber
		u.TelegramID = req.TelegramID
		if req.GymMemberIDs != nil {
			u.GymMemberIDs = req.GymMemberIDs
		}
		u.UpdatedAt = e.now()
		return tx.Set(e.users().Doc(callerID), u)
	})
}

// GetUserProfile returns the caller's own profile.
func (e *Engine) GetUserProfile(ctx context.Context, callerID string) (*models.User, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	doc, err := e.users().Doc(callerID).Get(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, Errf(KindNotFound, "profile not found")
		}
		return nil, err
	}
	var u models.User
	if err := doc.DataTo(&u); err != nil {
		return nil, Errf(KindInternal, "failed to decode profile")
	}
	u.ID = callerID
	return &u, nil
}

// LookupUserByPhone finds a transfer recipient by phone number. Phone
// numbers are not globally unique; the first match wins, matching how the
// client uses this as a convenience lookup.
func (e *Engine) LookupUserByPhone(ctx context.Context, callerID, phone string) (*models.User, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if phone == "" {
		return nil, Errf(KindInvalidArgument, "phone number is required")
	}

	docs, err := e.users().Where("phoneNumber", "==", phone).Documents(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, Errf(KindNotFound, "no user with phone number %s", phone)
	}
	var u models.User
	if err := docs[0].DataTo(&u); err != nil {
		return nil, Errf(KindInternal, "failed to decode user")
	}
	u.ID = docs[0].Ref().ID()
	return &u, nil
}
