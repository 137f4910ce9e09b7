// file: internals/features/evidences/repository/evidence_repository.go
//
// Semua operasi mengembalikan helper.Result; tidak ada error yang lolos keluar.
package repository

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"studentpoints_client/internals/constants"
	"studentpoints_client/internals/features/evidences/dto"
	"studentpoints_client/internals/features/evidences/model"
	"studentpoints_client/internals/gateway"
	helper "studentpoints_client/internals/helpers"
)

const pathEvidences = "/evidences"

type EvidenceRepository struct {
	gw  gateway.Requester
	log *zap.Logger
}

func NewEvidenceRepository(gw gateway.Requester, log *zap.Logger) *EvidenceRepository {
	return &EvidenceRepository{gw: gw, log: helper.OrNop(log)}
}

// ========================== LIST ==========================

func (r *EvidenceRepository) ListAll(ctx context.Context) helper.Result[[]model.Evidence] {
	resp, err := r.gw.Get(ctx, pathEvidences)
	res := gateway.Decode[[]model.Evidence](resp, err, constants.MsgEvidenceListFailed)
	r.logFailure("list evidences", res.Success, res.Kind)
	return res
}

func (r *EvidenceRepository) ListByStudent(ctx context.Context, studentID string) helper.Result[[]model.Evidence] {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return helper.FailFields[[]model.Evidence](constants.MsgValidationFailed, map[string]string{"student_id": constants.FieldMsgRequired})
	}

	resp, err := r.gw.Get(ctx, pathEvidences+"/student/"+url.PathEscape(studentID))
	res := gateway.Decode[[]model.Evidence](resp, err, constants.MsgEvidenceDetailFailed)
	r.logFailure("list evidences by student", res.Success, res.Kind)
	return res
}

// ========================== DETAIL ==========================

func (r *EvidenceRepository) Get(ctx context.Context, id string) helper.Result[model.Evidence] {
	id = strings.TrimSpace(id)
	if id == "" {
		return helper.FailFields[model.Evidence](constants.MsgValidationFailed, map[string]string{"_id": constants.FieldMsgRequired})
	}

	resp, err := r.gw.Get(ctx, pathEvidences+"/"+url.PathEscape(id))
	res := gateway.Decode[model.Evidence](resp, err, constants.MsgEvidenceDetailFailed)
	r.logFailure("get evidence", res.Success, res.Kind)
	return res
}

// ========================== SUBMIT ==========================
// Prasyarat lokal (judul & link tidak kosong, poin > 0) dicek dulu; gagal = tanpa request.
func (r *EvidenceRepository) Submit(ctx context.Context, draft dto.SubmitDraft) helper.Result[model.Evidence] {
	draft = draft.Normalize()
	if fields := draft.Validate(); fields != nil {
		msg := constants.MsgMissingFields
		if _, bad := fields["points"]; bad && len(fields) == 1 {
			msg = constants.MsgPointsNotPositive
		}
		return helper.ValidationResult[model.Evidence](fields, msg)
	}

	resp, err := r.gw.Post(ctx, pathEvidences, draft)
	res := gateway.Decode[model.Evidence](resp, err, constants.MsgEvidenceSubmitFailed)
	if !res.Success {
		r.logFailure("submit evidence", false, res.Kind)
		return res
	}

	// record tanpa id tidak boleh masuk ke koleksi lokal
	if strings.TrimSpace(res.Data.ID) == "" {
		return helper.Fail[model.Evidence](helper.KindServerError, constants.MsgEvidenceSubmitFailed)
	}
	if res.Data.Status == "" {
		res.Data.Status = model.StatusPending
	}
	if res.Message == "" {
		res.Message = constants.MsgEvidenceSubmitted
	}
	return res
}

// ========================== UPDATE ==========================
// Tidak ada whitelist field di sini; izin edit ditentukan pemanggil (dan server).
func (r *EvidenceRepository) Update(ctx context.Context, id string, partial map[string]any) helper.Result[model.Evidence] {
	id = strings.TrimSpace(id)
	if id == "" {
		return helper.FailFields[model.Evidence](constants.MsgValidationFailed, map[string]string{"_id": constants.FieldMsgRequired})
	}

	resp, err := r.gw.Put(ctx, pathEvidences+"/"+url.PathEscape(id), partial)
	res := gateway.Decode[model.Evidence](resp, err, constants.MsgEvidenceUpdateFailed)
	if !res.Success {
		r.logFailure("update evidence", false, res.Kind)
		return res
	}
	if res.Message == "" {
		res.Message = constants.MsgEvidenceUpdated
	}
	return res
}

func (r *EvidenceRepository) logFailure(op string, ok bool, kind helper.ErrorKind) {
	if ok {
		return
	}
	r.log.Warn(op+" failed", zap.String("kind", string(kind)))
}
