package utils

const (
	// UserIdKey is the gin context key holding the authenticated user's ID.
	UserIdKey = "userId"

	// EmailKey is the gin context key holding the authenticated user's email.
	EmailKey = "email"

	// TraceIdKey is the gin context key holding the per-request trace ID.
	TraceIdKey = "traceId"

	// SanitizedPayloadKey is the gin context key holding the validated request body.
	SanitizedPayloadKey = "sanitizedPayload"
)
