package validation

// CustomMessage returns the per-tag messages for fields that need wording
// more specific than the defaults.
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"ID": {
			"required": "id is required",
			"gt":       "id must be a positive product id",
		},
		"Quantity": {
			"gte": "quantity must not be negative",
			"lte": "quantity is too large",
		},
		"Page": {
			"required": "page is required",
			"gte":      "page must be at least 1",
		},
		"TotalItems": {
			"gte": "total_items must not be negative",
		},
		"ItemsPerPage": {
			"gte": "items_per_page must be at least 1",
			"lte": "items_per_page is too large",
		},
		"Type": {
			"required": "modal type is required",
			"oneof":    "modal type is not supported",
		},
		"Data": {
			"required": "product data is required",
		},
	}
	return customValidationMessages[field]
}
