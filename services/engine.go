package services

import (
	"errors"
	"time"

	"passdepot/backend/models"
	"passdepot/backend/store"
)

// Engine is the pass-ledger transaction engine. Every mutating operation
// runs as exactly one store transaction with read-verify-write structure;
// the store's optimistic concurrency is the only concurrency control the
// engine relies on, so transaction callbacks stay free of side effects
// outside the store handle.
type Engine struct {
	store store.Store
	now   func() time.Time
}

func NewEngine(s store.Store) *Engine {
	return &Engine{store: s, now: time.Now}
}

// NewEngineWithClock fixes the engine's clock. Tests only.
func NewEngineWithClock(s store.Store, now func() time.Time) *Engine {
	return &Engine{store: s, now: now}
}

func (e *Engine) users() store.CollectionRef {
	return e.store.Collection(models.CollectionUsers)
}

func (e *Engine) privatePasses() store.CollectionRef {
	return e.store.Collection(models.CollectionPrivatePasses)
}

func (e *Engine) marketPasses() store.CollectionRef {
	return e.store.Collection(models.CollectionMarketPasses)
}

func (e *Engine) adminPasses() store.CollectionRef {
	return e.store.Collection(models.CollectionAdminPasses)
}

func (e *Engine) passRecords() store.CollectionRef {
	return e.store.Collection(models.CollectionPassRecords)
}

// Transactional point reads. Each maps a missing document to a kinded
// not-found error and a decode failure to internal.

func (e *Engine) txUser(tx store.Tx, id string) (*models.User, error) {
	doc, err := tx.Get(e.users().Doc(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, Errf(KindNotFound, "user %s not found", id)
		}
		return nil, err
	}
	var u models.User
	if err := doc.DataTo(&u); err != nil {
		return nil, Errf(KindInternal, "failed to decode user %s", id)
	}
	u.ID = id
	return &u, nil
}

func (e *Engine) txPrivatePass(tx store.Tx, id string) (*models.PrivatePass, error) {
	doc, err := tx.Get(e.privatePasses().Doc(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, Errf(KindNotFound, "pass %s not found", id)
		}
		return nil, err
	}
	var p models.PrivatePass
	if err := doc.DataTo(&p); err != nil {
		return nil, Errf(KindInternal, "failed to decode pass %s", id)
	}
	p.ID = id
	return &p, nil
}

func (e *Engine) txMarketPass(tx store.Tx, id string) (*models.MarketPass, error) {
	doc, err := tx.Get(e.marketPasses().Doc(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, Errf(KindNotFound, "listing %s not found", id)
		}
		return nil, err
	}
	var p models.MarketPass
	if err := doc.DataTo(&p); err != nil {
		return nil, Errf(KindInternal, "failed to decode listing %s", id)
	}
	p.ID = id
	return &p, nil
}

func (e *Engine) txAdminPass(tx store.Tx, id string) (*models.AdminPass, error) {
	doc, err := tx.Get(e.adminPasses().Doc(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, Errf(KindNotFound, "admin pass %s not found", id)
		}
		return nil, err
	}
	var p models.AdminPass
	if err := doc.DataTo(&p); err != nil {
		return nil, Errf(KindInternal, "failed to decode admin pass %s", id)
	}
	p.ID = id
	return &p, nil
}

// appendRecord stages the single audit entry every mutating operation
// writes, in the same atomic write set as the business mutation.
func (e *Engine) appendRecord(tx store.Tx, rec models.PassRecord) error {
	rec.CreatedAt = e.now()
	return tx.Create(e.passRecords().NewDoc(), rec)
}

// checkUsable validates the common domain preconditions on a pass read
// inside a transaction: live, not expired, enough entries for the
// requested quantity. The insufficient-count message carries both amounts
// so callers can act on it.
func (e *Engine) checkUsable(active bool, lastDay time.Time, available, requested int64) error {
	if !active {
		return Errf(KindFailedPrecondition, "pass is no longer active")
	}
	if Expired(lastDay, e.now()) {
		return Errf(KindFailedPrecondition, "pass expired on %s", lastDay.In(passZone).Format("2006-01-02"))
	}
	if available < requested {
		return Errf(KindFailedPrecondition, "insufficient entries: %d available, %d requested", available, requested)
	}
	return nil
}
