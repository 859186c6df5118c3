package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	KeyUserID    = "user_id"
	KeyUserEmail = "user_email"
	KeyContext   = "USER_CONTEXT"
)
