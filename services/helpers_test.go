package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"passdepot/backend/models"
	"passdepot/backend/store"
)

// Fixed test identities used across the engine tests.
const (
	testUserA     = "user-a"
	testUserB     = "user-b"
	testAdminID   = "admin-gym-x"
	testOtherGym  = "admin-gym-y"
	testGymX      = "gym-x"
	testGymY      = "gym-y"
	testPrivateID = "private-pass-1"
	testMarketID  = "market-pass-1"
	testAdminPass = "admin-pass-1"
)

// testNow is the engine clock in every test: 2024-06-01 12:00 UTC.
var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// futureDay is a lastDay comfortably after testNow.
var futureDay = time.Date(2024, 12, 31, 15, 59, 59, 999_000_000, time.UTC)

// pastDay is a lastDay before testNow.
var pastDay = time.Date(2024, 1, 31, 15, 59, 59, 999_000_000, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemory()
	// The clock ticks forward on every read so consecutive operations get
	// distinct record timestamps.
	var tick int64
	engine := NewEngineWithClock(mem, func() time.Time {
		return testNow.Add(time.Duration(atomic.AddInt64(&tick, 1)) * time.Second)
	})
	seedUsers(t, mem)
	return engine, mem
}

func seedUsers(t *testing.T, mem *store.MemoryStore) {
	t.Helper()
	users := map[string]models.User{
		testUserA:    {Name: "Alice", PhoneNumber: "+6591230001", TelegramID: "alice_tg"},
		testUserB:    {Name: "Bob", PhoneNumber: "+6591230002"},
		testAdminID:  {Name: "Xavier", IsAdmin: true, AdminGym: testGymX},
		testOtherGym: {Name: "Yvonne", IsAdmin: true, AdminGym: testGymY},
	}
	for id, u := range users {
		if err := mem.Seed(models.CollectionUsers, id, u); err != nil {
			t.Fatalf("failed to seed user %s: %v", id, err)
		}
	}
}

func seedPrivatePass(t *testing.T, mem *store.MemoryStore, id string, p models.PrivatePass) {
	t.Helper()
	if err := mem.Seed(models.CollectionPrivatePasses, id, p); err != nil {
		t.Fatalf("failed to seed private pass %s: %v", id, err)
	}
}

func seedMarketPass(t *testing.T, mem *store.MemoryStore, id string, p models.MarketPass) {
	t.Helper()
	if err := mem.Seed(models.CollectionMarketPasses, id, p); err != nil {
		t.Fatalf("failed to seed market pass %s: %v", id, err)
	}
}

func seedAdminPass(t *testing.T, mem *store.MemoryStore, id string, p models.AdminPass) {
	t.Helper()
	if err := mem.Seed(models.CollectionAdminPasses, id, p); err != nil {
		t.Fatalf("failed to seed admin pass %s: %v", id, err)
	}
}

// basePrivatePass returns a live pass owned by user A at gym X.
func basePrivatePass() models.PrivatePass {
	return models.PrivatePass{
		UserID:         testUserA,
		GymID:          testGymX,
		GymDisplayName: "Gym X",
		PassName:       "10-entry pass",
		Count:          5,
		LastDay:        futureDay,
		Active:         true,
		PurchasePrice:  100,
		PurchaseCount:  5,
		CreatedAt:      testNow.AddDate(0, -1, 0),
	}
}

func getPrivatePass(t *testing.T, engine *Engine, id string) models.PrivatePass {
	t.Helper()
	doc, err := engine.privatePasses().Doc(id).Get(context.Background())
	if err != nil {
		t.Fatalf("failed to read private pass %s: %v", id, err)
	}
	var p models.PrivatePass
	if err := doc.DataTo(&p); err != nil {
		t.Fatalf("failed to decode private pass %s: %v", id, err)
	}
	p.ID = id
	return p
}

func getMarketPass(t *testing.T, engine *Engine, id string) models.MarketPass {
	t.Helper()
	doc, err := engine.marketPasses().Doc(id).Get(context.Background())
	if err != nil {
		t.Fatalf("failed to read market pass %s: %v", id, err)
	}
	var p models.MarketPass
	if err := doc.DataTo(&p); err != nil {
		t.Fatalf("failed to decode market pass %s: %v", id, err)
	}
	p.ID = id
	return p
}

// records returns user's ledger entries, newest first.
func records(t *testing.T, engine *Engine, userID string) []models.PassRecord {
	t.Helper()
	recs, err := engine.ListMyRecords(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to list records for %s: %v", userID, err)
	}
	return recs
}

// wantKind asserts an error carries the expected kind.
func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("expected %s error, got %s (%v)", kind, got, err)
	}
}
