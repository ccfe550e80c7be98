package http

// Route patterns for the vault HTTP surface. One vault per account.
const (
	routeVault = "/v1/accounts/{owner}/vault"
)

// Route names for mux URL building.
const (
	routeNameGetVault    = "vault_get"
	routeNamePutVault    = "vault_put"
	routeNameDeleteVault = "vault_delete"
)
