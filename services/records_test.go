package services

import (
	"context"
	"testing"

	"passdepot/backend/models"
)

func TestListMyPasses(t *testing.T) {
	engine, mem := newTestEngine(t)
	seedPrivatePass(t, mem, testPrivateID, basePrivatePass())
	inactive := basePrivatePass()
	inactive.Active = false
	seedPrivatePass(t, mem, "inactive-pass", inactive)
	other := basePrivatePass()
	other.UserID = testUserB
	seedPrivatePass(t, mem, "bobs-pass", other)
	seedMarketPass(t, mem, testMarketID, models.MarketPass{
		UserID: testUserA, PrivatePassID: testPrivateID, GymID: testGymX,
		Count: 2, Price: 20, LastDay: futureDay, Active: true,
	})

	mine, err := engine.ListMyPasses(context.Background(), testUserA)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if len(mine.PrivatePasses) != 1 || mine.PrivatePasses[0].ID != testPrivateID {
		t.Errorf("private passes = %+v, want only %s", mine.PrivatePasses, testPrivateID)
	}
	if len(mine.MarketPasses) != 1 || mine.MarketPasses[0].ID != testMarketID {
		t.Errorf("market passes = %+v, want only %s", mine.MarketPasses, testMarketID)
	}
}

func TestListMarketHidesExpiredAndSoldOut(t *testing.T) {
	engine, mem := newTestEngine(t)
	seedMarketPass(t, mem, "live", models.MarketPass{
		UserID: testUserA, GymID: testGymX, Count: 2, Price: 20, LastDay: futureDay, Active: true,
	})
	seedMarketPass(t, mem, "expired", models.MarketPass{
		UserID: testUserA, GymID: testGymX, Count: 2, Price: 20, LastDay: pastDay, Active: true,
	})
	seedMarketPass(t, mem, "sold-out", models.MarketPass{
		UserID: testUserA, GymID: testGymX, Count: 0, Price: 20, LastDay: futureDay, Active: true,
	})
	seedMarketPass(t, mem, "removed", models.MarketPass{
		UserID: testUserA, GymID: testGymX, Count: 2, Price: 20, LastDay: futureDay, Active: false,
	})

	listings, err := engine.ListMarket(context.Background(), testUserB)
	if err != nil {
		t.Fatalf("market listing failed: %v", err)
	}
	if len(listings) != 1 || listings[0].ID != "live" {
		t.Errorf("market = %+v, want only the live listing", listings)
	}
}

func TestListMyRecordsNewestFirstAndScoped(t *testing.T) {
	engine, mem := newTestEngine(t)
	pass := basePrivatePass()
	pass.Count = 10
	seedPrivatePass(t, mem, testPrivateID, pass)
	ctx := context.Background()

	// Transfer to B, then consume from A: A sees both, B only the first.
	_, err := engine.TransferPass(ctx, testUserA,
		transferReq(testUserA, testUserB, testPrivateID, models.PassTypePrivate, 2, 10))
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	_, err = engine.ConsumePass(ctx, testAdminID, models.ConsumePassRequest{
		UserID: testUserA, PassID: testPrivateID, Count: 1,
	})
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	aRecs := records(t, engine, testUserA)
	if len(aRecs) != 2 {
		t.Fatalf("user A records = %d, want 2", len(aRecs))
	}
	if aRecs[0].Action != models.ActionConsume || aRecs[1].Action != models.ActionTransfer {
		t.Errorf("record order = [%s %s], want newest first [consume transfer]", aRecs[0].Action, aRecs[1].Action)
	}

	bRecs := records(t, engine, testUserB)
	if len(bRecs) != 1 || bRecs[0].Action != models.ActionTransfer {
		t.Errorf("user B records = %+v, want only the transfer", bRecs)
	}
}
