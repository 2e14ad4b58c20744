package cart

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ProductSnapshot is the copy of product fields taken when an item is added.
// It is never re-validated against the catalog.
type ProductSnapshot map[string]any

// Price reads the "price" field as a number or numeric string; anything else
// counts as 0.
func (p ProductSnapshot) Price() decimal.Decimal {
	raw, ok := p["price"]
	if !ok || raw == nil {
		return decimal.Zero
	}
	if s, ok := raw.(string); ok {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func (p ProductSnapshot) clone() ProductSnapshot {
	if p == nil {
		return ProductSnapshot{}
	}
	out := make(ProductSnapshot, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(ProductSnapshot(t).clone())
	case ProductSnapshot:
		return t.clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// LineItem is one cart entry keyed by product id. Quantity is always >= 1.
type LineItem struct {
	ID       int             `json:"id"`
	Quantity int             `json:"quantity"`
	Data     ProductSnapshot `json:"data"`
}

// Subtotal is quantity times unit price.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Data.Price().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l LineItem) clone() LineItem {
	l.Data = l.Data.clone()
	return l
}

// Snapshot holds the derived totals. It is never persisted.
type Snapshot struct {
	Count         int             `json:"count"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

func summarize(items []LineItem) Snapshot {
	s := Snapshot{Count: len(items), TotalPrice: decimal.Zero}
	for _, it := range items {
		s.TotalQuantity += it.Quantity
		s.TotalPrice = s.TotalPrice.Add(it.Subtotal())
	}
	return s
}
