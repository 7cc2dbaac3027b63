package domain

type ctxKey string

// Request-scoped identity, set by the auth middleware.
const (
	RequesterIdCtxKey   ctxKey = "requesterId"
	RequesterRoleCtxKey ctxKey = "requesterRole"
)
