package http

// Route patterns for the beneficiary HTTP surface.
const (
	routeBeneficiaries = "/v1/accounts/{owner}/beneficiaries"
	routeBeneficiary   = "/v1/accounts/{owner}/beneficiaries/{id}"
)

// Route names for mux URL building.
const (
	routeNameList   = "beneficiary_list"
	routeNameAdd    = "beneficiary_add"
	routeNameGet    = "beneficiary_get"
	routeNameUpdate = "beneficiary_update"
	routeNameRemove = "beneficiary_remove"
)
