package service

import (
	"context"

	"go.uber.org/zap"

	"studentpoints_client/internals/constants"
	"studentpoints_client/internals/features/auth/dto"
	helper "studentpoints_client/internals/helpers"
)

type PasswordChanger interface {
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) helper.Result[string]
}

type PasswordService struct {
	repo PasswordChanger
	log  *zap.Logger
}

func NewPasswordService(repo PasswordChanger, log *zap.Logger) *PasswordService {
	return &PasswordService{repo: repo, log: helper.OrNop(log)}
}

// ========================== CHANGE PASSWORD ==========================
// Urutan pengecekan lokal: wajib diisi → konfirmasi cocok → panjang 6-12.
// Gagal di sini = tidak ada request ke server.
func (s *PasswordService) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) helper.Result[string] {
	// 🔹 Validasi lokal
	if fields := helper.ValidateStruct(req); fields != nil {
		return helper.ValidationResult[string](fields, passwordMessage(fields))
	}

	// 🔹 Kirim ke server
	res := s.repo.ChangePassword(ctx, req)
	if !res.Success {
		s.log.Warn("change password failed", zap.String("kind", string(res.Kind)))
		return res
	}

	s.log.Info("password changed")
	return res
}

func passwordMessage(fields map[string]string) string {
	for _, f := range []string{"oldPassword", "newPassword", "confirmPassword"} {
		if fields[f] == constants.FieldMsgRequired {
			return constants.MsgMissingFields
		}
	}
	if _, mismatch := fields["confirmPassword"]; mismatch {
		return constants.MsgPasswordMismatch
	}
	return constants.MsgPasswordLength
}
