package constants

// Query Parameters
const (
	QueryParamPage     = "page"
	QueryParamTab      = "tab"
	QueryParamCategory = "category"
)

// Pagination Limits
const (
	MinPage         = 1
	MinItemsPerPage = 1
	MaxItemsPerPage = 100
)
