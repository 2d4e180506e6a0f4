package response

import "net/http"

// HTTPError is an error carrying an HTTP status and a machine-readable code.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode lets the router and middleware read the status.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithError returns a copy recording err as the cause.
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

// Is matches any HTTPError with the same status and code.
func (e HTTPError) Is(target error) bool {
	t, ok := target.(HTTPError)
	return ok && t.Status == e.Status && t.Code == e.Code
}

var (
	ErrBadRequest = HTTPError{
		Status:  http.StatusBadRequest,
		Code:    "bad_request",
		Message: http.StatusText(http.StatusBadRequest),
	}

	ErrNotFound = HTTPError{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: http.StatusText(http.StatusNotFound),
	}

	ErrMethodNotAllowed = HTTPError{
		Status:  http.StatusMethodNotAllowed,
		Code:    "method_not_allowed",
		Message: http.StatusText(http.StatusMethodNotAllowed),
	}

	ErrInternalServerError = HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_server_error",
		Message: http.StatusText(http.StatusInternalServerError),
	}

	ErrBadGateway = HTTPError{
		Status:  http.StatusBadGateway,
		Code:    "bad_gateway",
		Message: http.StatusText(http.StatusBadGateway),
	}

	ErrServiceUnavailable = HTTPError{
		Status:  http.StatusServiceUnavailable,
		Code:    "service_unavailable",
		Message: http.StatusText(http.StatusServiceUnavailable),
	}
)

var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusNotFound:            ErrNotFound,
	http.StatusMethodNotAllowed:    ErrMethodNotAllowed,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
}
