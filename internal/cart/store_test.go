package cart

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/Payphone-Digital/storefront/pkg/broadcast"
	"github.com/Payphone-Digital/storefront/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, storage.Storage, *broadcast.Bus) {
	t.Helper()
	st := storage.NewMemoryProvider().Scope("origin-1")
	bus := broadcast.NewBus(nil)
	return NewStore(context.Background(), st, bus, nil), st, bus
}

func countEvents(bus *broadcast.Bus) *int {
	n := 0
	bus.Subscribe(EventUpdated, func() { n++ })
	return &n
}

type failingStorage struct{}

func (failingStorage) GetItem(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}
func (failingStorage) SetItem(context.Context, string, string) error {
	return errors.New("storage unavailable")
}
func (failingStorage) RemoveItem(context.Context, string) error {
	return errors.New("storage unavailable")
}

func TestAddToCart_AppendsAndIncrements(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	s.AddToCart(ctx, 1, ProductSnapshot{"price": 10.0}, 1)
	s.AddToCart(ctx, 2, ProductSnapshot{"price": 5.0}, 2)
	s.AddToCart(ctx, 1, ProductSnapshot{"price": 99.0}, 3)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 10.0, items[0].Data["price"], "snapshot is taken on first add only")
	assert.Equal(t, 2, items[1].ID)
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, 6, s.TotalQuantity())
	assert.True(t, decimal.NewFromInt(50).Equal(s.TotalPrice()))
}

func TestAddToCart_NonPositiveQuantityAddsOne(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.AddToCart(context.Background(), 7, ProductSnapshot{}, 0)
	assert.Equal(t, 1, s.ItemQuantity(7))
}

func TestAddToCart_SnapshotIsCopied(t *testing.T) {
	s, _, _ := newTestStore(t)
	data := ProductSnapshot{"name": "Mug", "images": []any{"a.png"}}
	s.AddToCart(context.Background(), 1, data, 1)

	data["name"] = "Changed"
	data["images"].([]any)[0] = "b.png"

	item, ok := s.Item(1)
	require.True(t, ok)
	assert.Equal(t, "Mug", item.Data["name"])
	assert.Equal(t, "a.png", item.Data["images"].([]any)[0])
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()
	s, _, bus := newTestStore(t)
	s.AddToCart(ctx, 1, ProductSnapshot{}, 1)
	s.AddToCart(ctx, 2, ProductSnapshot{}, 1)
	events := countEvents(bus)

	s.RemoveFromCart(ctx, 1)
	assert.False(t, s.IsInCart(1))
	assert.True(t, s.IsInCart(2))
	assert.Equal(t, 1, *events)

	s.RemoveFromCart(ctx, 42)
	assert.Equal(t, 1, *events, "removing an absent id is a no-op")
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	s.AddToCart(ctx, 1, ProductSnapshot{"price": "2.50"}, 1)

	s.UpdateQuantity(ctx, 1, 4)
	assert.Equal(t, 4, s.ItemQuantity(1))
	assert.Equal(t, "10", s.TotalPrice().String())

	s.UpdateQuantity(ctx, 99, 3)
	assert.False(t, s.IsInCart(99), "update does not create lines")

	s.UpdateQuantity(ctx, 1, 0)
	assert.False(t, s.IsInCart(1))
	assert.Equal(t, 0, s.ItemQuantity(1))
}

func TestUpdateQuantity_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, st, bus := newTestStore(t)
	s.AddToCart(ctx, 1, ProductSnapshot{"price": 3}, 1)
	events := countEvents(bus)

	s.UpdateQuantity(ctx, 1, 5)
	once := s.Items()
	raw1, _, _ := st.GetItem(ctx, StorageKey)

	s.UpdateQuantity(ctx, 1, 5)
	assert.Equal(t, once, s.Items())
	raw2, _, _ := st.GetItem(ctx, StorageKey)
	assert.Equal(t, raw1, raw2)
	assert.Equal(t, 1, *events)
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	s, st, bus := newTestStore(t)
	s.AddToCart(ctx, 1, ProductSnapshot{}, 1)
	events := countEvents(bus)

	s.ClearCart(ctx)
	assert.Equal(t, 0, s.Count())
	raw, ok, _ := st.GetItem(ctx, StorageKey)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
	assert.Equal(t, 1, *events)

	s.ClearCart(ctx)
	assert.Equal(t, 1, *events)
}

func TestTotalsInvariant_RandomOperations(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	rng := rand.New(rand.NewSource(42))
	prices := map[int]float64{1: 1.5, 2: 20, 3: 0.25, 4: 7, 5: 0}

	for i := 0; i < 500; i++ {
		id := rng.Intn(5) + 1
		switch rng.Intn(3) {
		case 0:
			s.AddToCart(ctx, id, ProductSnapshot{"price": prices[id]}, rng.Intn(4))
		case 1:
			s.RemoveFromCart(ctx, id)
		case 2:
			s.UpdateQuantity(ctx, id, rng.Intn(6)-1)
		}

		var qty int
		total := decimal.Zero
		for _, it := range s.Items() {
			require.GreaterOrEqual(t, it.Quantity, 1)
			qty += it.Quantity
			total = total.Add(decimal.NewFromFloat(prices[it.ID]).Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		require.Equal(t, qty, s.TotalQuantity())
		require.True(t, total.Equal(s.TotalPrice()), "step %d: %s != %s", i, total, s.TotalPrice())
	}
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, st, _ := newTestStore(t)
	s.AddToCart(ctx, 3, ProductSnapshot{"name": "Lamp", "price": 42.5, "images": []any{"lamp.jpg"}}, 2)
	s.AddToCart(ctx, 1, ProductSnapshot{"name": "Chair", "price": 120.0}, 1)

	reloaded := NewStore(ctx, st, broadcast.NewBus(nil), nil)
	assert.Equal(t, s.Items(), reloaded.Items())
	assert.Equal(t, s.Snapshot().TotalQuantity, reloaded.Snapshot().TotalQuantity)
}

func TestPersistence_RoundTripLargeIDs(t *testing.T) {
	ctx := context.Background()
	s, st, _ := newTestStore(t)
	s.AddToCart(ctx, 7, ProductSnapshot{"price": 10}, 1)
	s.AddToCart(ctx, 3000000000, ProductSnapshot{"price": 5}, 1)
	s.AddToCart(ctx, MaxExactInt, ProductSnapshot{"price": 1}, 2)

	reloaded := NewStore(ctx, st, nil, nil)
	require.Len(t, reloaded.Items(), 3)
	assert.Equal(t, 1, reloaded.ItemQuantity(7))
	assert.Equal(t, 1, reloaded.ItemQuantity(3000000000))
	assert.Equal(t, 2, reloaded.ItemQuantity(MaxExactInt))
}

func TestLoad_CorruptionTolerance(t *testing.T) {
	cases := map[string]string{
		"bad json":         `{bad json`,
		"not an array":     `{"id":1}`,
		"null":             `null`,
		"string id":        `[{"id":"1","quantity":1,"data":{}}]`,
		"missing data":     `[{"id":1,"quantity":1}]`,
		"null data":        `[{"id":1,"quantity":1,"data":null}]`,
		"array data":       `[{"id":1,"quantity":1,"data":[]}]`,
		"fractional id":    `[{"id":1.5,"quantity":1,"data":{}}]`,
		"missing quantity": `[{"id":1,"data":{}}]`,
		"inexact id":       `[{"id":1e20,"quantity":1,"data":{}}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := storage.NewMemoryProvider().Scope("o")
			require.NoError(t, st.SetItem(ctx, StorageKey, raw))

			var s *Store
			require.NotPanics(t, func() {
				s = NewStore(ctx, st, nil, nil)
			})
			assert.Equal(t, 0, s.Count())
		})
	}
}

func TestLoad_DropsNonPositiveQuantitiesAndDuplicates(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryProvider().Scope("o")
	raw := `[{"id":1,"quantity":2,"data":{"price":1}},{"id":2,"quantity":0,"data":{}},{"id":1,"quantity":9,"data":{}}]`
	require.NoError(t, st.SetItem(ctx, StorageKey, raw))

	s := NewStore(ctx, st, nil, nil)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestNewStore_EmitsAfterLoad(t *testing.T) {
	bus := broadcast.NewBus(nil)
	events := countEvents(bus)
	NewStore(context.Background(), storage.NewMemoryProvider().Scope("o"), bus, nil)
	assert.Equal(t, 1, *events)
}

func TestStorageFailuresAreAbsorbed(t *testing.T) {
	ctx := context.Background()
	bus := broadcast.NewBus(nil)
	s := NewStore(ctx, failingStorage{}, bus, nil)
	events := countEvents(bus)

	s.AddToCart(ctx, 1, ProductSnapshot{"price": 2}, 1)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 1, *events)
}

func TestListenersSeeCommittedState(t *testing.T) {
	ctx := context.Background()
	s, _, bus := newTestStore(t)
	var seen int
	bus.Subscribe(EventUpdated, func() { seen = s.TotalQuantity() })

	s.AddToCart(ctx, 1, ProductSnapshot{}, 3)
	assert.Equal(t, 3, seen)
}

func TestProductSnapshot_Price(t *testing.T) {
	cases := []struct {
		name string
		data ProductSnapshot
		want string
	}{
		{"float", ProductSnapshot{"price": 19.99}, "19.99"},
		{"int", ProductSnapshot{"price": 5}, "5"},
		{"numeric string", ProductSnapshot{"price": "3.10"}, "3.1"},
		{"garbage string", ProductSnapshot{"price": "free"}, "0"},
		{"missing", ProductSnapshot{}, "0"},
		{"nil", ProductSnapshot{"price": nil}, "0"},
		{"object", ProductSnapshot{"price": map[string]any{}}, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.data.Price().String())
		})
	}
}
