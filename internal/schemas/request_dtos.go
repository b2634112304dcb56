// Package schemas defines the request structures for various operations in the application.
package schemas

// RegistrationRequest is a struct that represents a registration request
// UserName is optional and must be between 3 and 50 characters when given
// Email is required and must be a valid email
// Password is required and must be at least 10 characters
type RegistrationRequest struct {
	UserName string `json:"userName" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=10"`
}

// LoginRequest is a struct that represents a login request
// Email is required and must be a valid email
// Password is required
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateActivityRequest is a struct that represents a create activity request
// Type is required and must be a supported activity type
// Duration is required and must be positive
// DateTime is required and accepts RFC3339 or a zone-less ISO-8601 timestamp
// Description and Location are optional
type CreateActivityRequest struct {
	Type        string  `json:"type" validate:"required,activity_type"`
	Description *string `json:"description"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	DateTime    string  `json:"dateTime" validate:"required"`
	Location    *string `json:"location" validate:"omitempty,min=2,max=50"`
}

// UpdateActivityRequest is a struct that represents a partial activity update.
// Every field is optional; absent fields keep their stored value.
type UpdateActivityRequest struct {
	Type        *string `json:"type" validate:"omitempty,activity_type"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration" validate:"omitempty,gt=0"`
	DateTime    *string `json:"dateTime"`
	Location    *string `json:"location" validate:"omitempty,min=2,max=50"`
}
