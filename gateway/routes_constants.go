package gateway

// Route path constants
// All gateway routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/"

	// Auth Routes
	RouteLogin    = "/auth/login"
	RouteLogout   = "/auth/logout"
	RouteRegister = "/auth/register"

	// Protected UI Routes
	RouteDashboard = "/dashboard"

	// Proxy Routes
	RouteAPIIntegrationsAvailable = "/api/integrations/available"
)

// backendIntegrationsPath is the backend path the proxy endpoint relays.
const backendIntegrationsPath = "/api/v1/settings/integrations/available"
