// file: internals/features/session/service/session_service.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"studentpoints_client/internals/constants"
	database "studentpoints_client/internals/databases"
	authDto "studentpoints_client/internals/features/auth/dto"
	"studentpoints_client/internals/features/session/model"
	helper "studentpoints_client/internals/helpers"
)

type Authenticator interface {
	Login(ctx context.Context, req authDto.LoginRequest) helper.Result[authDto.LoginResponse]
}

/* ===============================
   Token reader (untuk gateway)
=================================*/

// Tokens membaca token dari storage perangkat setiap kali diminta.
type Tokens struct {
	storage database.Storage
}

func NewTokens(storage database.Storage) Tokens {
	return Tokens{storage: storage}
}

func (t Tokens) Token(ctx context.Context) (string, error) {
	v, _, err := t.storage.Get(ctx, constants.StorageKeyToken)
	return strings.TrimSpace(v), err
}

/* ===============================
   Store
=================================*/

type Store struct {
	storage database.Storage
	auth    Authenticator
	tokens  Tokens
	log     *zap.Logger
}

func NewStore(storage database.Storage, auth Authenticator, log *zap.Logger) *Store {
	return &Store{
		storage: storage,
		auth:    auth,
		tokens:  NewTokens(storage),
		log:     helper.OrNop(log),
	}
}

// ========================== LOGIN ==========================
// Token + user_id ditulis dalam satu transaksi: dua-duanya tersimpan atau tidak sama sekali.
func (s *Store) Login(ctx context.Context, username, password string) (model.Session, error) {
	req := authDto.LoginRequest{Username: strings.TrimSpace(username), Password: password}

	// 🔹 Validasi lokal (tanpa request)
	if fields := helper.ValidateStruct(req); fields != nil {
		return model.Session{}, &helper.AppError{
			Kind:    helper.KindValidationFailed,
			Message: constants.MsgMissingFields,
			Fields:  fields,
		}
	}

	// 🔹 Autentikasi ke server
	res := s.auth.Login(ctx, req)
	if !res.Success {
		s.log.Warn("login failed", zap.String("kind", string(res.Kind)))
		return model.Session{}, res.Err()
	}

	// 🔹 Simpan sesi
	err := s.storage.SetMany(ctx, map[string]string{
		constants.StorageKeyToken:  res.Data.Token,
		constants.StorageKeyUserID: res.Data.User.ID,
	})
	if err != nil {
		s.log.Error("persist session failed", zap.Error(err))
		return model.Session{}, helper.WrapError(helper.KindStorageFailed, constants.MsgStorageFailed, err)
	}

	// student_id akun sebelumnya tidak boleh ikut terbawa
	if err := s.storage.Delete(ctx, constants.StorageKeyStudentID); err != nil {
		s.log.Warn("clear stale student id failed", zap.Error(err))
	}

	s.log.Info("login succeeded", zap.String("user_id", res.Data.User.ID))
	return model.Session{
		Token:     res.Data.Token,
		UserID:    res.Data.User.ID,
		ExpiresAt: TokenExpiry(res.Data.Token),
	}, nil
}

// ========================== CURRENT ==========================
// Tidak ada token = belum login, bukan error.
func (s *Store) Current(ctx context.Context) (model.Session, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return model.Session{}, helper.WrapError(helper.KindStorageFailed, constants.MsgStorageFailed, err)
	}
	if token == "" {
		return model.Session{}, nil
	}

	sess := model.Session{Token: token, ExpiresAt: TokenExpiry(token)}
	for key, dst := range map[string]*string{
		constants.StorageKeyUserID:    &sess.UserID,
		constants.StorageKeyStudentID: &sess.StudentID,
	} {
		v, _, err := s.storage.Get(ctx, key)
		if err != nil {
			return model.Session{}, helper.WrapError(helper.KindStorageFailed, constants.MsgStorageFailed, err)
		}
		*dst = v
	}
	return sess, nil
}

// ========================== LOGOUT ==========================
// Best-effort: setiap key dihapus sendiri-sendiri; kegagalan hanya dicatat.
func (s *Store) Logout(ctx context.Context) {
	for _, key := range constants.SessionKeys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.log.Warn("clear session key failed", zap.String("key", key), zap.Error(err))
		}
	}
	s.log.Info("logged out")
}

// SetStudentID dipanggil setelah profil dimuat (id mahasiswa baru diketahui dari profil).
func (s *Store) SetStudentID(ctx context.Context, studentID string) error {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil
	}
	if err := s.storage.Set(ctx, constants.StorageKeyStudentID, studentID); err != nil {
		return helper.WrapError(helper.KindStorageFailed, constants.MsgStorageFailed, err)
	}
	return nil
}

func (s *Store) Token(ctx context.Context) (string, error) {
	return s.tokens.Token(ctx)
}

// TokenExpiry membaca klaim "exp" TANPA verifikasi tanda tangan (verifikasi urusan server).
func TokenExpiry(token string) *time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil || claims.ExpiresAt == nil {
		return nil
	}
	exp := claims.ExpiresAt.Time.UTC()
	return &exp
}
