package errors

import "net/http"

var ErrQueueUnavailable = &Exception{
	Message:    "failed to enqueue task",
	StatusCode: http.StatusServiceUnavailable,
}
