package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when a required field is missing or empty.
	ErrValidation = errors.New("pickup and destination addresses are required")
	// ErrMissingCredentials is returned when register or login lacks an email or password.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrFieldTooLong is returned when an identifier does not fit its column.
	ErrFieldTooLong = errors.New("field too long")
	// ErrMissingFields is returned when a payment request lacks required fields.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidAmount is returned when a payment amount is negative.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrDuplicateUser is returned when registering an email that already exists.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrUserNotFound is returned when logging in with an unknown email.
	ErrUserNotFound = errors.New("user does not exist")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTransactionNotFound is returned when a gateway reports an unknown transaction id.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrPaymentVerificationFailed is returned when a gateway does not confirm a payment.
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	// ErrGateway is returned when a payment gateway cannot be reached or answers garbage.
	ErrGateway = errors.New("payment gateway error")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
// Server errors carry the message in "error", client errors in "msg".
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	if e.StatusCode >= http.StatusInternalServerError && e.Code == "INTERNAL_ERROR" {
		return ErrorResponse{Error: e.Message, Code: e.Code}
	}
	return ErrorResponse{Msg: e.Message, Code: e.Code}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Unknown errors keep their raw message, which the static site displays.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, ErrValidation.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrMissingCredentials):
		return NewHTTPError(http.StatusBadRequest, ErrMissingCredentials.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrFieldTooLong):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "FIELD_TOO_LONG")
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, ErrMissingFields.Error(), "MISSING_FIELDS")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidAmount.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrDuplicateUser):
		return NewHTTPError(http.StatusBadRequest, ErrDuplicateUser.Error(), "DUPLICATE_USER")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusBadRequest, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrTransactionNotFound):
		return NewHTTPError(http.StatusNotFound, ErrTransactionNotFound.Error(), "TRANSACTION_NOT_FOUND")
	case errors.Is(err, ErrPaymentVerificationFailed):
		return NewHTTPError(http.StatusBadRequest, ErrPaymentVerificationFailed.Error(), "PAYMENT_VERIFICATION_FAILED")
	case errors.Is(err, ErrGateway):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "EXTERNAL_GATEWAY_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
}
