package repository

import (
	"context"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"

	"studentpoints_client/internals/constants"
	"studentpoints_client/internals/features/auth/dto"
	"studentpoints_client/internals/gateway"
	helper "studentpoints_client/internals/helpers"
)

const pathChangePassword = "/auth/change-password"

type AuthRepository struct {
	gw gateway.Requester
}

func NewAuthRepository(gw gateway.Requester) *AuthRepository {
	return &AuthRepository{gw: gw}
}

// ========================== LOGIN ==========================
// Login TIDAK memakai envelope {data}: respons server langsung {success, token, user}.
// 400/401/403 dan success:false dianggap kredensial salah.
func (r *AuthRepository) Login(ctx context.Context, req dto.LoginRequest) helper.Result[dto.LoginResponse] {
	resp, err := r.gw.Post(ctx, gateway.PathLogin, req)
	if err != nil {
		return helper.Fail[dto.LoginResponse](helper.KindNetworkUnavailable, constants.MsgServerUnreachable)
	}

	if !resp.OK() {
		msg := gateway.ServerMessage(resp.Body)
		switch resp.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity:
			return helper.Fail[dto.LoginResponse](helper.KindInvalidCredentials, orDefault(msg, constants.MsgInvalidCredentials))
		default:
			return helper.Fail[dto.LoginResponse](helper.KindServerError, orDefault(msg, constants.MsgServerError))
		}
	}

	var body dto.LoginResponse
	if err := sonic.Unmarshal(resp.Body, &body); err != nil {
		return helper.Fail[dto.LoginResponse](helper.KindServerError, constants.MsgServerError)
	}
	if !body.Success || strings.TrimSpace(body.Token) == "" {
		return helper.Fail[dto.LoginResponse](helper.KindInvalidCredentials, orDefault(body.Message, constants.MsgInvalidCredentials))
	}
	if strings.TrimSpace(body.User.ID) == "" {
		// token tanpa user id tidak boleh disimpan
		return helper.Fail[dto.LoginResponse](helper.KindServerError, constants.MsgServerError)
	}
	return helper.OkWithMessage(body, orDefault(body.Message, constants.MsgLoginSucceeded))
}

// ========================== CHANGE PASSWORD ==========================
func (r *AuthRepository) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) helper.Result[string] {
	resp, err := r.gw.Post(ctx, pathChangePassword, req)
	if ae := gateway.Classify(resp, err, constants.MsgPasswordChangeFailed); ae != nil {
		return helper.FromError[string](ae, constants.MsgPasswordChangeFailed)
	}

	var body dto.ChangePasswordResponse
	if err := sonic.Unmarshal(resp.Body, &body); err != nil {
		return helper.Fail[string](helper.KindServerError, constants.MsgPasswordChangeFailed)
	}
	if !body.Success {
		return helper.Fail[string](helper.KindServerError, orDefault(body.Message, constants.MsgPasswordChangeFailed))
	}

	msg := orDefault(body.Message, constants.MsgPasswordChanged)
	return helper.OkWithMessage(msg, msg)
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
