package main

import (
	"errors"
	"net/http"
)

var ErrNotFound = errors.New("not found")

type HTTPError struct {
	Err     error
	Message string
	Code    int
}

func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e HTTPError) Unwrap() error {
	return e.Err
}

type appHandler func(http.ResponseWriter, *http.Request) error

func (fn appHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := fn(w, r); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		var httpError HTTPError
		if errors.As(err, &httpError) {
			http.Error(w, httpError.Error(), httpError.Code)
			return
		}
		// Default to 500 Internal Server Error
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
