package repository

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"studentpoints_client/internals/constants"
	"studentpoints_client/internals/features/profiles/model"
	"studentpoints_client/internals/gateway"
	helper "studentpoints_client/internals/helpers"
)

const pathProfiles = "/student-profiles"

type ProfileRepository struct {
	gw  gateway.Requester
	log *zap.Logger
}

func NewProfileRepository(gw gateway.Requester, log *zap.Logger) *ProfileRepository {
	return &ProfileRepository{gw: gw, log: helper.OrNop(log)}
}

// GetByUserID: user id kosong berarti belum login, request tidak dikirim.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) helper.Result[model.StudentProfile] {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return helper.Fail[model.StudentProfile](helper.KindUnauthenticated, constants.MsgNotLoggedIn)
	}

	resp, err := r.gw.Get(ctx, pathProfiles+"/user/"+url.PathEscape(userID))
	res := gateway.Decode[model.StudentProfile](resp, err, constants.MsgProfileLoadFailed)
	if !res.Success {
		r.log.Warn("load profile failed", zap.String("kind", string(res.Kind)))
	}
	return res
}

// Update mengirim profil utuh (PUT); server yang memutuskan field mana yang diterapkan.
func (r *ProfileRepository) Update(ctx context.Context, p model.StudentProfile) helper.Result[model.StudentProfile] {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return helper.FailFields[model.StudentProfile](constants.MsgValidationFailed, map[string]string{"_id": constants.FieldMsgRequired})
	}

	resp, err := r.gw.Put(ctx, pathProfiles+"/"+url.PathEscape(id), p)
	res := gateway.Decode[model.StudentProfile](resp, err, constants.MsgProfileSaveFailed)
	if !res.Success {
		r.log.Warn("save profile failed", zap.String("kind", string(res.Kind)))
		return res
	}
	if res.Message == "" {
		res.Message = constants.MsgProfileSaved
	}
	return res
}
