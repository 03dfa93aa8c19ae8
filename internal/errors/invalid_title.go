package errors

import "net/http"

var ErrInvalidTitle = &Exception{
	Message:    "invalid task title",
	StatusCode: http.StatusUnprocessableEntity,
}
