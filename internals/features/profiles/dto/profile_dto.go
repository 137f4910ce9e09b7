package dto

import (
	"errors"
	"strings"

	"studentpoints_client/internals/features/profiles/model"
	helper "studentpoints_client/internals/helpers"
	"studentpoints_client/internals/helpers/datefmt"
)

var (
	ErrReadOnlyField = errors.New("profile: field is read-only")
	ErrUnknownField  = errors.New("profile: unknown field")
)

// Nama field form (sama dengan nama json di wire).
const (
	FieldGender         = "gender"
	FieldDateOfBirth    = "date_of_birth"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldContactAddress = "contact_address"
	FieldAvatar         = "student_image"
)

var readOnlyFields = map[string]bool{
	"_id":            true,
	"user_id":        true,
	"student_number": true,
	"full_name":      true,
	"class_id":       true,
	"falcuty_name":   true,
	"isClassMonitor": true,
}

// ProfileForm: nilai yang sedang diedit, dalam format tampilan
// (gender "Nam"/"Nữ", tanggal dd/mm/yyyy). Field kosong = tidak diisi dan valid.
type ProfileForm struct {
	Gender         string `json:"gender" validate:"omitempty,gender"`
	DateOfBirth    string `json:"date_of_birth" validate:"omitempty,dmy_date"`
	Email          string `json:"email" validate:"omitempty,email_shape"`
	Phone          string `json:"phone" validate:"omitempty,phone_digits"`
	ContactAddress string `json:"contact_address" validate:"omitempty,max=255"`
}

func FormFromProfile(p model.StudentProfile) ProfileForm {
	return ProfileForm{
		Gender:         helper.GenderLabel(p.Gender),
		DateOfBirth:    datefmt.ISOToDMY(p.DateOfBirth),
		Email:          p.Email,
		Phone:          p.Phone,
		ContactAddress: p.ContactAddress,
	}
}

func (f ProfileForm) Normalize() ProfileForm {
	f.Gender = strings.TrimSpace(f.Gender)
	f.DateOfBirth = strings.TrimSpace(f.DateOfBirth)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.ContactAddress = strings.TrimSpace(f.ContactAddress)
	return f
}

// Validate: nil kalau semua field valid. Semua field diperiksa sekaligus.
func (f ProfileForm) Validate() map[string]string {
	return helper.ValidateStruct(f.Normalize())
}

// Set mengubah satu field form. Field read-only / tidak dikenal ditolak.
func (f *ProfileForm) Set(field, value string) error {
	switch field {
	case FieldGender:
		f.Gender = value
	case FieldDateOfBirth:
		f.DateOfBirth = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldContactAddress:
		f.ContactAddress = value
	default:
		if readOnlyFields[field] {
			return ErrReadOnlyField
		}
		return ErrUnknownField
	}
	return nil
}

// ApplyForm menghasilkan body update: salinan profil dengan field form dalam format wire.
// Form harus sudah lolos Validate.
func ApplyForm(p model.StudentProfile, f ProfileForm) model.StudentProfile {
	f = f.Normalize()

	p.Gender = ""
	if g, ok := helper.NormalizeGender(f.Gender); ok {
		p.Gender = string(g)
	}

	p.DateOfBirth = ""
	if f.DateOfBirth != "" {
		if iso, err := datefmt.DMYToISO(f.DateOfBirth); err == nil {
			p.DateOfBirth = iso
		}
	}

	p.Email = f.Email
	p.Phone = f.Phone
	p.ContactAddress = f.ContactAddress
	return p
}
