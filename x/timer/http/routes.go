package http

// Route patterns for the timer HTTP surface.
const (
	routeTimer     = "/v1/accounts/{owner}/timer"
	routeHeartbeat = "/v1/accounts/{owner}/heartbeat"
)

// Route names for mux URL building.
const (
	routeNameGetTimer  = "timer_get"
	routeNameSetWindow = "timer_set_window"
	routeNameHeartbeat = "timer_heartbeat"
)
