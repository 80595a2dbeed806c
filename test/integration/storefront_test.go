package integration

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	cartdom "github.com/boolshop/storefront/internal/cart/domain"
	cartredis "github.com/boolshop/storefront/internal/cart/infrastructure/redis"
	checkoutdom "github.com/boolshop/storefront/internal/checkout/domain"
	checkoutpg "github.com/boolshop/storefront/internal/checkout/infrastructure/postgres"
	coupondom "github.com/boolshop/storefront/internal/coupon/domain"
	"github.com/boolshop/storefront/pkg/logging"
)

func TestOrderPersistenceAndOutbox(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	env, err := Setup(ctx)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer env.Teardown(ctx)

	pool, err := pgxpool.New(ctx, env.PGURL)
	if err != nil {
		t.Fatalf("pg connect: %v", err)
	}
	defer pool.Close()

	if err := checkoutpg.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("schema: %v", err)
	}

	log := logging.New()
	repo := checkoutpg.NewRepository(log, pool)

	cart := cartdom.Cart{Items: []cartdom.LineItem{
		{ProductID: 1, Name: "Tramonto sul Mare", UnitPrice: 2999, Quantity: 2, MaxStock: 10},
	}}
	breakdown := cartdom.ComputeTotals(cart, cartdom.DefaultPricingConfig())
	customer := checkoutdom.Customer{
		FirstName: "Giulia",
		LastName:  "Rossi",
		Email:     "giulia@example.com",
	}
	order := checkoutdom.NewOrder("ord-integration-1", customer, cart, breakdown)

	if err := repo.SaveWithOutbox(ctx, order, "OrderPlaced", []byte(`{"orderId":"ord-integration-1"}`), ""); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TotalCents != order.TotalCents {
		t.Fatalf("total = %d, want %d", got.TotalCents, order.TotalCents)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
	if got.Status != checkoutdom.StatusPending {
		t.Fatalf("status = %q, want pending", got.Status)
	}

	if _, err := repo.Get(ctx, "no-such-order"); err != checkoutpg.ErrOrderNotFound {
		t.Fatalf("missing order err = %v, want ErrOrderNotFound", err)
	}

	store := checkoutpg.NewOutboxStore(log, pool)
	events, err := store.LockBatch(ctx, "test-relay", 10, 5*time.Second)
	if err != nil {
		t.Fatalf("lock batch: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("locked %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Type != "OrderPlaced" || ev.AggregateID != order.ID {
		t.Fatalf("unexpected event: %+v", ev)
	}

	// While the lease is live another relay must not see the event.
	other, err := store.LockBatch(ctx, "other-relay", 10, 5*time.Second)
	if err != nil {
		t.Fatalf("concurrent lock batch: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("leased event visible to another relay: %+v", other)
	}

	// Once the lease expires the event is reclaimable, as after a relay crash.
	if _, err := pool.Exec(ctx, `UPDATE outbox SET lease_until = now() - interval '1 minute' WHERE id = $1`, ev.ID); err != nil {
		t.Fatalf("expire lease: %v", err)
	}
	reclaimed, err := store.LockBatch(ctx, "other-relay", 10, 5*time.Second)
	if err != nil {
		t.Fatalf("reclaim lock batch: %v", err)
	}
	if len(reclaimed) != 1 || reclaimed[0].ID != ev.ID {
		t.Fatalf("expired lease not reclaimed: %+v", reclaimed)
	}

	if err := store.MarkSent(ctx, []int64{ev.ID}); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	again, err := store.LockBatch(ctx, "test-relay", 10, 5*time.Second)
	if err != nil {
		t.Fatalf("second lock batch: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("locked %d events after mark sent, want 0", len(again))
	}
}

func TestCartStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	env, err := Setup(ctx)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer env.Teardown(ctx)

	opts, err := goredis.ParseURL(env.RedisURL)
	if err != nil {
		t.Fatalf("redis url: %v", err)
	}
	rdb := goredis.NewClient(opts)
	defer rdb.Close()

	store := cartredis.NewStore(rdb, time.Hour)

	empty, err := store.Load(ctx, "missing-session")
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if len(empty.Items) != 0 || empty.Coupon != nil {
		t.Fatalf("missing session not empty: %+v", empty)
	}

	cart := cartdom.Cart{
		Items: []cartdom.LineItem{
			{ProductID: 3, Name: "Colline Toscane", UnitPrice: 4599, Quantity: 1, MaxStock: 3},
		},
		Coupon: &coupondom.Coupon{Code: "BENVENUTO10", Type: coupondom.TypePercentage, Value: 10},
	}
	if err := store.Save(ctx, "sess-1", cart); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].UnitPrice != 4599 {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
	if got.Coupon == nil || got.Coupon.Code != "BENVENUTO10" {
		t.Fatalf("coupon not restored: %+v", got.Coupon)
	}

	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	gone, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if len(gone.Items) != 0 {
		t.Fatalf("cart survived delete: %+v", gone)
	}
}
