package response

import (
	"errors"
	"net/http"

	"github.com/eurodata/site/core/handler"
)

type statusCode interface {
	StatusCode() int
}

// AsHTTPError converts any error into an HTTPError, keeping the status of
// errors that report one and defaulting to 500.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = HTTPError{Status: status, Code: "error", Message: http.StatusText(status)}
		if base.Message == "" {
			base = ErrInternalServerError
		}
	}
	return base.WithError(err)
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}
