package cart

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/fermedirect/storefront-backend/pkg/money"
)

type fakeCartRedis struct {
	data    map[string]string
	setTTLs []time.Duration
}

func newFakeCartRedis() *fakeCartRedis {
	return &fakeCartRedis{data: map[string]string{}}
}

func (f *fakeCartRedis) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	default:
		f.data[key] = fmt.Sprint(v)
	}
	f.setTTLs = append(f.setTTLs, ttl)
	return nil
}

func (f *fakeCartRedis) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (f *fakeCartRedis) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeCartRedis) CartKey(sessionID string) string {
	return "fd:cart:" + sessionID
}

func TestStoreLoadMissingKeyReadsEmpty(t *testing.T) {
	store := &Store{redis: newFakeCartRedis(), ttl: time.Hour}

	state, err := store.Load(context.Background(), "fresh-session")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !state.IsEmpty() || state.PromoCode != "" || !state.PromoDiscount.IsZero() {
		t.Fatalf("expected empty state for missing key, got %+v", state)
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	fake := newFakeCartRedis()
	store := &Store{redis: fake, ttl: time.Hour}

	saved := State{
		Items: []Line{{
			ProductID:   uuid.New(),
			ProductName: "Tomates anciennes",
			VariantName: "500g",
			UnitPrice:   money.MustParse("4.50"),
			Quantity:    2,
		}},
		PromoCode:     "SAVE10",
		PromoDiscount: money.MustParse("0.90"),
	}
	if err := store.Save(context.Background(), "s1", saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, ok := fake.data["fd:cart:s1"]; !ok {
		t.Fatal("expected snapshot stored under the cart key")
	}

	loaded, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].VariantName != "500g" || loaded.Items[0].Quantity != 2 {
		t.Fatalf("items did not survive the round trip: %+v", loaded.Items)
	}
	if loaded.PromoCode != "SAVE10" || loaded.PromoDiscount.Format2() != "0.90" {
		t.Fatalf("promo state did not survive the round trip: %+v", loaded)
	}
	if loaded.Subtotal().Format2() != "9.00" {
		t.Fatalf("expected subtotal 9.00, got %s", loaded.Subtotal().Format2())
	}
}

func TestStoreSaveRefreshesTTL(t *testing.T) {
	fake := newFakeCartRedis()
	store := &Store{redis: fake, ttl: 30 * time.Minute}

	for i := 0; i < 3; i++ {
		if err := store.Save(context.Background(), "s1", State{}); err != nil {
			t.Fatalf("save %d failed: %v", i, err)
		}
	}
	if len(fake.setTTLs) != 3 {
		t.Fatalf("expected 3 writes, got %d", len(fake.setTTLs))
	}
	for i, ttl := range fake.setTTLs {
		if ttl != 30*time.Minute {
			t.Fatalf("write %d: expected ttl refreshed to 30m, got %s", i, ttl)
		}
	}
}

func TestStoreDeleteRemovesKey(t *testing.T) {
	fake := newFakeCartRedis()
	store := &Store{redis: fake, ttl: time.Hour}

	if err := store.Save(context.Background(), "s1", State{PromoCode: "SAVE10"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	state, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("load after delete failed: %v", err)
	}
	if !state.IsEmpty() || state.PromoCode != "" {
		t.Fatalf("expected empty state after delete, got %+v", state)
	}
}

func TestStoreLoadCorruptPayload(t *testing.T) {
	fake := newFakeCartRedis()
	fake.data["fd:cart:s1"] = "{not json"
	store := &Store{redis: fake, ttl: time.Hour}

	if _, err := store.Load(context.Background(), "s1"); err == nil {
		t.Fatal("expected error for corrupt payload")
	}
}
