package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth     = RouteApiV1 + "/auth"
	RouteRegister = RouteAuth + "/register"
	RouteLogin    = RouteAuth + "/login"
	RouteMe       = RouteAuth + "/me"

	RouteUsers      = RouteApiV1 + "/users"
	RouteUser       = RouteUsers + "/:user_id"
	RouteGroupUsers = RouteApiV1 + "/groups/:group/users"

	RouteAssignmentNotify = RouteApiV1 + "/assignments/notify"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
