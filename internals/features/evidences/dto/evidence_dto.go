package dto

import (
	"math"
	"strings"

	"studentpoints_client/internals/constants"
	helper "studentpoints_client/internals/helpers"
)

/* ===============================
   SUBMIT
=================================*/

// SubmitDraft dikirim apa adanya ke POST /evidences ({name, link, points}).
type SubmitDraft struct {
	Title  string  `json:"name" validate:"notblank"`
	Link   string  `json:"link" validate:"notblank"`
	Points float64 `json:"points" validate:"gt=0"`
}

func (d SubmitDraft) Normalize() SubmitDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Link = strings.TrimSpace(d.Link)
	return d
}

// Validate: nil kalau draft boleh dikirim.
func (d SubmitDraft) Validate() map[string]string {
	fields := helper.ValidateStruct(d)
	if math.IsInf(d.Points, 0) {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["points"] = constants.FieldMsgPositive
	}
	return fields
}

/* ===============================
   UPDATE
=================================*/

// UpdatePatch: hanya field yang boleh diedit mahasiswa. nil = tidak diubah.
type UpdatePatch struct {
	Title     *string
	FileURL   *string
	SelfPoint *float64
}

func (p UpdatePatch) IsEmpty() bool {
	return p.Title == nil && p.FileURL == nil && p.SelfPoint == nil
}

// Validate hanya memeriksa field yang diisi.
func (p UpdatePatch) Validate() map[string]string {
	v := helper.Validator()
	out := map[string]string{}

	if p.Title != nil && v.Var(*p.Title, "notblank") != nil {
		out["title"] = constants.FieldMsgRequired
	}
	if p.FileURL != nil && v.Var(*p.FileURL, "notblank") != nil {
		out["file_url"] = constants.FieldMsgRequired
	}
	if p.SelfPoint != nil && (v.Var(*p.SelfPoint, "gt=0") != nil || math.IsInf(*p.SelfPoint, 0)) {
		out["self_point"] = constants.FieldMsgPositive
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// Fields: body PUT /evidences/{id} dengan nama field wire.
func (p UpdatePatch) Fields() map[string]any {
	out := map[string]any{}
	if p.Title != nil {
		out["title"] = strings.TrimSpace(*p.Title)
	}
	if p.FileURL != nil {
		out["file_url"] = strings.TrimSpace(*p.FileURL)
	}
	if p.SelfPoint != nil {
		out["self_point"] = *p.SelfPoint
	}
	return out
}

/* ===============================
   FILTER
=================================*/

type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusApproved StatusFilter = "approved"
	StatusPending  StatusFilter = "pending"
)

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

type FilterCriteria struct {
	TitleContains string
	Status        StatusFilter
	SortOrder     SortOrder
}

func DefaultCriteria() FilterCriteria {
	return FilterCriteria{TitleContains: "", Status: StatusAll, SortOrder: SortNewest}
}

// Normalize: nilai kosong/tidak dikenal jatuh ke default (all, newest).
func (c FilterCriteria) Normalize() FilterCriteria {
	if s, ok := ParseStatusFilter(string(c.Status)); ok {
		c.Status = s
	} else {
		c.Status = StatusAll
	}
	if o, ok := ParseSortOrder(string(c.SortOrder)); ok {
		c.SortOrder = o
	} else {
		c.SortOrder = SortNewest
	}
	return c
}

func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case StatusAll:
		return StatusAll, true
	case StatusApproved:
		return StatusApproved, true
	case StatusPending:
		return StatusPending, true
	}
	return "", false
}

func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortNewest:
		return SortNewest, true
	case SortOldest:
		return SortOldest, true
	}
	return "", false
}
