package cart

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// StorageKey is the durable storage key holding the serialized line items.
const StorageKey = "cart"

// MaxExactInt is the largest integer a JSON number decodes to exactly. Ids
// and quantities beyond it cannot round-trip through storage.
const MaxExactInt = 1<<53 - 1

// persistedLine mirrors the stored shape loosely so a tampered value can be
// inspected before it is trusted.
type persistedLine struct {
	ID       *float64       `json:"id" validate:"required,integral"`
	Quantity *float64       `json:"quantity" validate:"required,integral"`
	Data     map[string]any `json:"data" validate:"required"`
}

var shapeValidator = newShapeValidator()

func newShapeValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("integral", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.Float64 {
			return false
		}
		f := field.Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) &&
			f >= -MaxExactInt && f <= MaxExactInt
	})
	return v
}

func encode(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// decode parses a stored cart. Entries with quantity <= 0 are dropped and a
// repeated id keeps its first occurrence.
func decode(raw string) ([]LineItem, error) {
	var lines []persistedLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if lines == nil {
		return nil, fmt.Errorf("decode cart: not an array")
	}

	items := make([]LineItem, 0, len(lines))
	seen := make(map[int]struct{}, len(lines))
	for i, line := range lines {
		if err := shapeValidator.Struct(line); err != nil {
			return nil, fmt.Errorf("decode cart: entry %d: %w", i, err)
		}
		id := int(*line.ID)
		qty := int(*line.Quantity)
		if qty <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		items = append(items, LineItem{ID: id, Quantity: qty, Data: ProductSnapshot(line.Data)})
	}
	return items, nil
}
