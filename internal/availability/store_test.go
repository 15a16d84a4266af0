package availability

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("ATLASFIT_REDIS_ADDR")
	if addr == "" {
		t.Skip("ATLASFIT_REDIS_ADDR not set; skipping integration test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestOnDutyRoundTrip(t *testing.T) {
	rdb := testClient(t)
	store := NewStore(rdb, time.Hour)
	ctx := context.Background()

	driverID := fmt.Sprintf("driver_test_%d", time.Now().UnixNano())
	if err := store.MarkOnDuty(ctx, driverID); err != nil {
		t.Fatalf("MarkOnDuty: %v", err)
	}

	onDuty, err := store.IsOnDuty(ctx, driverID)
	if err != nil {
		t.Fatalf("IsOnDuty: %v", err)
	}
	if !onDuty {
		t.Errorf("expected driver %s to be on duty", driverID)
	}

	ids, err := store.OnDuty(ctx)
	if err != nil {
		t.Fatalf("OnDuty: %v", err)
	}
	found := false
	for _, id := range ids {
		if id == driverID {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s in on-duty list %v", driverID, ids)
	}

	if err := store.MarkOffDuty(ctx, driverID); err != nil {
		t.Fatalf("MarkOffDuty: %v", err)
	}
	onDuty, err = store.IsOnDuty(ctx, driverID)
	if err != nil {
		t.Fatalf("IsOnDuty after off duty: %v", err)
	}
	if onDuty {
		t.Errorf("expected driver %s to be off duty", driverID)
	}
}

func TestExpiredShiftPruned(t *testing.T) {
	rdb := testClient(t)
	store := NewStore(rdb, time.Hour)
	ctx := context.Background()

	driverID := fmt.Sprintf("driver_expired_%d", time.Now().UnixNano())
	// Insert with an already-expired score directly.
	expired := float64(time.Now().Add(-time.Minute).Unix())
	if err := rdb.ZAdd(ctx, onDutyKey, redis.Z{Score: expired, Member: driverID}).Err(); err != nil {
		t.Fatalf("seed expired entry: %v", err)
	}

	ids, err := store.OnDuty(ctx)
	if err != nil {
		t.Fatalf("OnDuty: %v", err)
	}
	for _, id := range ids {
		if id == driverID {
			t.Errorf("expected expired driver %s to be pruned", driverID)
		}
	}

	onDuty, err := store.IsOnDuty(ctx, driverID)
	if err != nil {
		t.Fatalf("IsOnDuty: %v", err)
	}
	if onDuty {
		t.Errorf("expected expired driver %s to be off duty", driverID)
	}
}

func TestDefaultTTL(t *testing.T) {
	store := NewStore(nil, 0)
	if store.ttl != defaultShiftTTL {
		t.Errorf("ttl = %v, want %v", store.ttl, defaultShiftTTL)
	}
	store = NewStore(nil, 2*time.Hour)
	if store.ttl != 2*time.Hour {
		t.Errorf("ttl = %v, want %v", store.ttl, 2*time.Hour)
	}
}
