package weberr

import (
	"errors"
	"net/http"
)

type responder interface {
	Response() (body any, status int)
}

func Response(err error) (body any, status int, ok bool) {
	var re responder
	if errors.As(err, &re) {
		body, code := re.Response()
		return body, code, true
	}
	return nil, 0, false
}

// Status reports the HTTP status err would be rendered with.
func Status(err error) int {
	if _, code, ok := Response(err); ok {
		return code
	}
	return http.StatusInternalServerError
}

type responseError struct {
	error
	body   any
	status int
}

func (e *responseError) Response() (any, int) {
	return e.body, e.status
}

func (e *responseError) Unwrap() error {
	return e.error
}
