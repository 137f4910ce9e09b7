// file: internals/features/profiles/viewmodel/profile_viewmodel.go
//
// Layar informasi mahasiswa: salinan server + form yang sedang diedit.
// Salinan server hanya diganti oleh respons sukses; form hanya diganti oleh
// setter, ResetForm, atau simpan yang sukses.
package viewmodel

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"studentpoints_client/internals/constants"
	"studentpoints_client/internals/features/profiles/dto"
	"studentpoints_client/internals/features/profiles/model"
	sessionModel "studentpoints_client/internals/features/session/model"
	helper "studentpoints_client/internals/helpers"
	"studentpoints_client/internals/helpers/datefmt"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

type ProfileSource interface {
	GetByUserID(ctx context.Context, userID string) helper.Result[model.StudentProfile]
	Update(ctx context.Context, p model.StudentProfile) helper.Result[model.StudentProfile]
}

// SessionSource: cukup bagian session yang dibutuhkan layar ini.
type SessionSource interface {
	Current(ctx context.Context) (sessionModel.Session, error)
	SetStudentID(ctx context.Context, studentID string) error
}

// ProfileView: nilai siap tampil.
type ProfileView struct {
	StudentNumber  string
	FullName       string
	ClassName      string
	Faculty        string
	Gender         string
	DateOfBirth    string
	Email          string
	Phone          string
	ContactAddress string
	AvatarURI      string
	IsClassMonitor bool
}

type ProfileViewModel struct {
	repo    ProfileSource
	session SessionSource
	log     *zap.Logger

	mu          sync.Mutex
	state       State
	saving      bool
	profile     *model.StudentProfile
	form        dto.ProfileForm
	avatar      string
	fieldErrors map[string]string
	message     string
	isError     bool
}

func NewProfileViewModel(repo ProfileSource, session SessionSource, log *zap.Logger) *ProfileViewModel {
	return &ProfileViewModel{
		repo:    repo,
		session: session,
		log:     helper.OrNop(log),
		state:   StateIdle,
	}
}

// ====================== LOAD ======================

func (vm *ProfileViewModel) Load(ctx context.Context) helper.Result[model.StudentProfile] {
	vm.mu.Lock()
	vm.state = StateLoading
	vm.message, vm.isError = "", false
	vm.mu.Unlock()

	sess, err := vm.session.Current(ctx)
	if err != nil {
		res := helper.FromError[model.StudentProfile](err, constants.MsgProfileLoadFailed)
		vm.failLoad(res.Message)
		return res
	}
	if sess.UserID == "" {
		vm.failLoad(constants.MsgNotLoggedIn)
		return helper.Fail[model.StudentProfile](helper.KindUnauthenticated, constants.MsgNotLoggedIn)
	}

	res := vm.repo.GetByUserID(ctx, sess.UserID)
	if !res.Success {
		vm.failLoad(res.Message)
		return res
	}

	// student_id dipakai layar lain (daftar evidence per mahasiswa)
	if err := vm.session.SetStudentID(ctx, res.Data.ID); err != nil {
		vm.log.Warn("persist student id failed", zap.Error(err))
	}

	vm.mu.Lock()
	p := res.Data
	vm.profile = &p
	vm.form = dto.FormFromProfile(p)
	vm.avatar = ""
	vm.fieldErrors = nil
	vm.state = StateReady
	vm.mu.Unlock()
	return res
}

func (vm *ProfileViewModel) failLoad(msg string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.state = StateFailed
	vm.message, vm.isError = msg, true
}

// ====================== FORM ======================

// Stage mengubah satu field form. Field read-only ditolak dengan dto.ErrReadOnlyField.
func (vm *ProfileViewModel) Stage(field, value string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if field == dto.FieldAvatar {
		vm.avatar = value
		return nil
	}
	if err := vm.form.Set(field, value); err != nil {
		return err
	}
	delete(vm.fieldErrors, field)
	return nil
}

func (vm *ProfileViewModel) SetGender(v string) error { return vm.Stage(dto.FieldGender, v) }
func (vm *ProfileViewModel) SetDateOfBirth(v string) error { return vm.Stage(dto.FieldDateOfBirth, v) }
func (vm *ProfileViewModel) SetEmail(v string) error { return vm.Stage(dto.FieldEmail, v) }
func (vm *ProfileViewModel) SetPhone(v string) error { return vm.Stage(dto.FieldPhone, v) }
func (vm *ProfileViewModel) SetContactAddress(v string) error { return vm.Stage(dto.FieldContactAddress, v) }

// SetAvatar menyimpan uri gambar lokal; tidak pernah di-upload.
func (vm *ProfileViewModel) SetAvatar(uri string) error { return vm.Stage(dto.FieldAvatar, uri) }

// ResetForm membuang semua perubahan yang belum disimpan.
func (vm *ProfileViewModel) ResetForm() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.form = dto.ProfileForm{}
	if vm.profile != nil {
		vm.form = dto.FormFromProfile(*vm.profile)
	}
	vm.avatar = ""
	vm.fieldErrors = nil
}

// ====================== SAVE ======================

// Save: semua field divalidasi dulu; satu saja gagal = tidak ada request
// dan form tetap seperti yang diisi pengguna.
func (vm *ProfileViewModel) Save(ctx context.Context) helper.Result[model.StudentProfile] {
	vm.mu.Lock()
	if vm.profile == nil {
		vm.mu.Unlock()
		return helper.Fail[model.StudentProfile](helper.KindValidationFailed, constants.MsgProfileLoadFailed)
	}
	if vm.saving {
		vm.mu.Unlock()
		return helper.Fail[model.StudentProfile](helper.KindValidationFailed, constants.MsgProfileSaveFailed)
	}

	if fields := vm.form.Validate(); fields != nil {
		vm.fieldErrors = fields
		vm.message, vm.isError = constants.MsgValidationFailed, true
		vm.mu.Unlock()
		return helper.ValidationResult[model.StudentProfile](fields, constants.MsgValidationFailed)
	}

	body := dto.ApplyForm(*vm.profile, vm.form)
	vm.saving = true
	vm.fieldErrors = nil
	vm.mu.Unlock()

	res := vm.repo.Update(ctx, body)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.saving = false

	if !res.Success {
		vm.message, vm.isError = res.Message, true
		vm.fieldErrors = res.Fields
		return res
	}

	p := res.Data
	vm.profile = &p
	vm.form = dto.FormFromProfile(p)
	vm.message, vm.isError = res.Message, false
	return res
}

// ====================== READ ======================

func (vm *ProfileViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

func (vm *ProfileViewModel) Saving() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.saving
}

func (vm *ProfileViewModel) Profile() (model.StudentProfile, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.profile == nil {
		return model.StudentProfile{}, false
	}
	return *vm.profile, true
}

func (vm *ProfileViewModel) Form() dto.ProfileForm {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.form
}

func (vm *ProfileViewModel) FieldErrors() map[string]string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if len(vm.fieldErrors) == 0 {
		return nil
	}
	out := make(map[string]string, len(vm.fieldErrors))
	for k, v := range vm.fieldErrors {
		out[k] = v
	}
	return out
}

// Message mengembalikan pesan terakhir dan apakah itu pesan error.
func (vm *ProfileViewModel) Message() (string, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.message, vm.isError
}

func (vm *ProfileViewModel) IsClassMonitor() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.profile != nil && vm.profile.IsClassMonitor
}

// View menggabungkan salinan server dengan avatar lokal (kalau ada).
func (vm *ProfileViewModel) View() ProfileView {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.profile == nil {
		return ProfileView{}
	}
	p := *vm.profile
	v := ProfileView{
		StudentNumber:  p.StudentNumber,
		FullName:       p.FullName,
		ClassName:      p.ClassName(),
		Faculty:        p.Faculty(),
		Gender:         helper.GenderLabel(p.Gender),
		DateOfBirth:    datefmt.ISOToDMY(p.DateOfBirth),
		Email:          p.Email,
		Phone:          p.Phone,
		ContactAddress: p.ContactAddress,
		AvatarURI:      p.AvatarURI,
		IsClassMonitor: p.IsClassMonitor,
	}
	if vm.avatar != "" {
		v.AvatarURI = vm.avatar
	}
	return v
}
