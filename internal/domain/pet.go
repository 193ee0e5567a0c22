package domain

// Pet represents a pet in the store catalog
type Pet struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Category  string `json:"category" db:"category"`
	Available bool   `json:"available" db:"available"`
}

// ValidationError signals a client payload that cannot be turned into a Pet.
// The message is part of the API contract and is returned verbatim in the
// 400 response body.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewMissingFieldError reports a required field absent from the payload
func NewMissingFieldError(field string) *ValidationError {
	return &ValidationError{Message: "Invalid pet: missing " + field}
}

// ErrBadPayload is returned when the request body is not a JSON object at all
var ErrBadPayload = &ValidationError{Message: "Invalid pet: body of request contained bad or no data"}
