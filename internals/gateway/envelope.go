package gateway

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"

	"studentpoints_client/internals/constants"
	helper "studentpoints_client/internals/helpers"
)

// Envelope standar dari server: { success?, data?, message? }
type Envelope[T any] struct {
	Success *bool  `json:"success,omitempty"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ServerMessage mengambil "message" (atau "error") dari body, kalau ada.
func ServerMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var eb errorBody
	if err := sonic.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if m := strings.TrimSpace(eb.Message); m != "" {
		return m
	}
	return strings.TrimSpace(eb.Error)
}

// KindForStatus: pemetaan status HTTP ke taksonomi error.
func KindForStatus(status int) helper.ErrorKind {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return helper.KindValidationFailed
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return helper.KindUnauthenticated
	case status == http.StatusNotFound:
		return helper.KindNotFound
	default:
		return helper.KindServerError
	}
}

// Classify menerjemahkan hasil gateway (respons atau error transport) menjadi AppError.
// nil berarti respons 2xx. fallback dipakai kalau server tidak mengirim pesan.
func Classify(resp *Response, err error, fallback string) *helper.AppError {
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) && te.Kind == TransportEncode {
			return helper.WrapError(helper.KindValidationFailed, fallback, err)
		}
		return helper.WrapError(helper.KindNetworkUnavailable, constants.MsgConnectionFailed, err)
	}
	if resp == nil {
		return helper.NewError(helper.KindNetworkUnavailable, constants.MsgConnectionFailed)
	}
	if resp.OK() {
		return nil
	}
	msg := ServerMessage(resp.Body)
	if msg == "" {
		msg = fallback
	}
	return helper.NewError(KindForStatus(resp.StatusCode), msg)
}

// Decode: respons/err → Result[T] dari field "data" envelope. Body rusak atau tanpa data = server_error.
func Decode[T any](resp *Response, err error, fallback string) helper.Result[T] {
	if ae := Classify(resp, err, fallback); ae != nil {
		return helper.FromError[T](ae, fallback)
	}

	var env Envelope[T]
	if uerr := sonic.Unmarshal(resp.Body, &env); uerr != nil {
		return helper.Fail[T](helper.KindServerError, fallback)
	}
	if env.Success != nil && !*env.Success {
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = fallback
		}
		return helper.Fail[T](helper.KindServerError, msg)
	}
	if env.Data == nil {
		return helper.Fail[T](helper.KindServerError, fallback)
	}
	return helper.OkWithMessage(*env.Data, strings.TrimSpace(env.Message))
}
