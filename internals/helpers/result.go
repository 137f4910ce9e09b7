// file: internals/helpers/result.go
package helper

import (
	"errors"
	"fmt"
)

/* ===============================
   Error taxonomy
=================================*/

type ErrorKind string

const (
	KindValidationFailed   ErrorKind = "validation_failed"
	KindUnauthenticated    ErrorKind = "unauthenticated"
	KindNotFound           ErrorKind = "not_found"
	KindServerError        ErrorKind = "server_error"
	KindNetworkUnavailable ErrorKind = "network_unavailable"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindStorageFailed      ErrorKind = "storage_failed"
)

// AppError adalah error yang sudah terklasifikasi.
// Fields hanya diisi untuk validation_failed (nama field json -> pesan).
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func WrapError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf mengembalikan kind dari error (menembus wrapping). Error asing dianggap server_error.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindServerError
}

/* ===============================
   Tagged result
=================================*/

// Result adalah bentuk seragam { success, data?, message? } untuk semua operasi repository & view model.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
	Kind    ErrorKind
	Fields  map[string]string
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func OkWithMessage[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

func Fail[T any](kind ErrorKind, message string) Result[T] {
	return Result[T]{Kind: kind, Message: message}
}

func FailFields[T any](message string, fields map[string]string) Result[T] {
	return Result[T]{Kind: KindValidationFailed, Message: message, Fields: fields}
}

// FromError memetakan error ke Result gagal; fallback dipakai kalau error tidak membawa pesan.
func FromError[T any](err error, fallback string) Result[T] {
	var ae *AppError
	if errors.As(err, &ae) {
		msg := ae.Message
		if msg == "" {
			msg = fallback
		}
		return Result[T]{Kind: ae.Kind, Message: msg, Fields: ae.Fields}
	}
	return Result[T]{Kind: KindServerError, Message: fallback}
}

// Err mengubah Result gagal kembali menjadi error (nil kalau sukses).
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return &AppError{Kind: r.Kind, Message: r.Message, Fields: r.Fields}
}

// Retryable: kegagalan jaringan/server boleh dicoba ulang oleh user.
func (r Result[T]) Retryable() bool {
	return !r.Success && (r.Kind == KindNetworkUnavailable || r.Kind == KindServerError)
}
