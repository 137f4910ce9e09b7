package model

import (
	"strings"

	"github.com/bytedance/sonic"

	"studentpoints_client/internals/helpers/datefmt"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Label untuk tampilan (status lain ditampilkan apa adanya).
func (s Status) Label() string {
	switch s {
	case StatusApproved:
		return "Đã duyệt"
	case StatusPending:
		return "Chờ duyệt"
	default:
		return string(s)
	}
}

// Submitter: field "student_id" dari server. Bisa berupa objek (populated) atau string id saja.
type Submitter struct {
	ID            string `json:"_id"`
	FullName      string `json:"full_name"`
	StudentNumber string `json:"student_number,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
}

func (s *Submitter) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := sonic.Unmarshal(b, &id); err != nil {
			return err
		}
		*s = Submitter{ID: strings.TrimSpace(id)}
		return nil
	}
	type plain Submitter
	var p plain
	if err := sonic.Unmarshal(b, &p); err != nil {
		return err
	}
	*s = Submitter(p)
	return nil
}

type Evidence struct {
	ID           string             `json:"_id"`
	Title        string             `json:"title"`
	Status       Status             `json:"status"`
	FileURL      string             `json:"file_url"`
	SubmittedAt  datefmt.Timestamp  `json:"submitted_at"`
	VerifiedAt   *datefmt.Timestamp `json:"verified_at,omitempty"`
	Submitter    *Submitter         `json:"student_id,omitempty"`
	SelfPoint    float64            `json:"self_point"`
	ClassPoint   float64            `json:"class_point"`
	FacultyPoint float64            `json:"faculty_point"`
}

func (e Evidence) SubmitterID() string {
	if e.Submitter == nil {
		return ""
	}
	return e.Submitter.ID
}

func (e Evidence) SubmitterName() string {
	if e.Submitter == nil {
		return ""
	}
	return e.Submitter.FullName
}

func (e Evidence) IsVerified() bool {
	return e.VerifiedAt != nil && !e.VerifiedAt.IsZero()
}
