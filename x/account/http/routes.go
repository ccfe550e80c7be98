package http

// Route patterns for the account HTTP surface.
const (
	routeAccounts = "/v1/accounts"
	routeAccount  = "/v1/accounts/{owner}"
)

// Route names for mux URL building.
const (
	routeNameCreate  = "account_create"
	routeNameGet     = "account_get"
	routeNameDestroy = "account_destroy"
)
