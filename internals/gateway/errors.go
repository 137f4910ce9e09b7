package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type TransportKind string

const (
	TransportTimeout  TransportKind = "timeout"
	TransportNetwork  TransportKind = "network"
	TransportCanceled TransportKind = "canceled"
	TransportEncode   TransportKind = "encode"
)

// TransportError: tidak ada respons dari server (atau request tidak bisa dibangun).
type TransportError struct {
	Kind   TransportKind
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func IsTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == TransportTimeout
}

func classifyTransport(method, path string, err error) *TransportError {
	kind := TransportNetwork

	var nerr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = TransportTimeout
	case errors.As(err, &nerr) && nerr.Timeout():
		kind = TransportTimeout
	case errors.Is(err, context.Canceled):
		kind = TransportCanceled
	}
	return &TransportError{Kind: kind, Method: method, Path: path, Err: err}
}
