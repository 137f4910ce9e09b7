package model

import (
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Ref: field relasi yang bisa datang sebagai string id atau objek {_id, ...}.
// Selalu dikirim balik sebagai string id.
type Ref string

func (r *Ref) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null" || s == "":
		*r = ""
	case s[0] == '"':
		var id string
		if err := sonic.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref(id)
	default:
		var obj struct {
			ID string `json:"_id"`
		}
		if err := sonic.Unmarshal(b, &obj); err != nil {
			return err
		}
		*r = Ref(obj.ID)
	}
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(r))), nil
}

type Cohort struct {
	ID   string `json:"_id"`
	Year int    `json:"year"`
}

type Faculty struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type ClassRef struct {
	ID      string   `json:"_id"`
	Name    string   `json:"name"`
	Cohort  *Cohort  `json:"cohort_id,omitempty"`
	Faculty *Faculty `json:"falcuty_id,omitempty"`
}

// StudentProfile mengikuti bentuk wire server (termasuk ejaan "falcuty").
type StudentProfile struct {
	ID             string    `json:"_id"`
	UserID         Ref       `json:"user_id"`
	StudentNumber  string    `json:"student_number"`
	FullName       string    `json:"full_name"`
	Gender         string    `json:"gender"`
	DateOfBirth    string    `json:"date_of_birth"`
	FacultyName    string    `json:"falcuty_name,omitempty"`
	Class          *ClassRef `json:"class_id,omitempty"`
	IsClassMonitor bool      `json:"isClassMonitor"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	ContactAddress string    `json:"contact_address"`
	AvatarURI      string    `json:"student_image,omitempty"`
}

func (p StudentProfile) ClassName() string {
	if p.Class == nil {
		return ""
	}
	return p.Class.Name
}

// Faculty: falcuty_name kalau ada, selain itu dari kelas.
func (p StudentProfile) Faculty() string {
	if p.FacultyName != "" {
		return p.FacultyName
	}
	if p.Class != nil && p.Class.Faculty != nil {
		return p.Class.Faculty.Name
	}
	return ""
}
