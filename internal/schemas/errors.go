package schemas

// CustomError is the wire representation of a failure. Code is stable across
// releases, Message is safe to show to callers.
type CustomError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	// InvalidContent covers malformed or missing bodies and wrong content types.
	InvalidContent = &CustomError{
		Code:    "ERR-001",
		Message: "The request body is invalid. Please check the request body and try again.",
	}
	// Unauthorized covers missing, invalid and expired tokens as well as insufficient claims.
	Unauthorized = &CustomError{
		Code:    "ERR-002",
		Message: "You have no access.",
	}
	// NotFound covers reads and mutations that matched no owned record.
	NotFound = &CustomError{
		Code:    "ERR-003",
		Message: "The requested resource was not found.",
	}
	// OperationFailed covers store rejections and zero-row mutations.
	OperationFailed = &CustomError{
		Code:    "ERR-004",
		Message: "The operation could not be completed. Please try again later.",
	}
	// InternalServerError covers everything the other buckets do not.
	InternalServerError = &CustomError{
		Code:    "ERR-005",
		Message: "An unexpected error occurred. Please try again later.",
	}
	// DatabaseError covers failures talking to the store.
	DatabaseError = &CustomError{
		Code:    "ERR-006",
		Message: "The database is currently not available. Please try again later.",
	}
)
