package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the shape handlers hand to response.Error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// StatusCarrier is implemented by errors that come back from the upstream
// backend and know their own HTTP status.
type StatusCarrier interface {
	error
	StatusCode() int
}

func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: http.StatusOK}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	var upstreamErr StatusCarrier
	if errors.As(err, &upstreamErr) {
		status := upstreamErr.StatusCode()
		if status >= 400 && status < 500 {
			return HTTPError{
				Status:  status,
				Code:    CodeUpstreamRejected,
				Message: upstreamErr.Error(),
			}
		}
		return HTTPError{
			Status:  http.StatusBadGateway,
			Code:    CodeUpstreamUnavailable,
			Message: upstreamErr.Error(),
		}
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
		Details: err.Error(),
	}
}
