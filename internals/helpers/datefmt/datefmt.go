// file: internals/helpers/datefmt/datefmt.go
//
// Satu-satunya tempat parsing/format tanggal.
// Format eksternal: dd/mm/yyyy (tervalidasi kalender). Representasi internal: time.Time UTC (wire: RFC 3339).
package datefmt

import (
	"errors"
	"strings"
	"time"
)

const (
	LayoutDMY     = "02/01/2006"
	LayoutISODate = "2006-01-02"
)

var ErrInvalidDate = errors.New("invalid date")

// layout dmy longgar: "2" & "1" menerima 1 atau 2 digit
var dmyLayouts = []string{
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
}

var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	LayoutISODate,
}

// ParseDMY mem-parse dd/mm/yyyy. Tanggal mustahil (31/02/2024) ditolak oleh time.Parse
// karena day out of range.
func ParseDMY(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.Parse(dmyLayouts[0], s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	if t.Year() < 1 {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

// IsValidDMY dipakai validator.
func IsValidDMY(s string) bool {
	_, err := ParseDMY(s)
	return err == nil
}

func FormatDMY(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LayoutDMY)
}

// ParseInstant menerima bentuk ISO (RFC 3339, tanpa zona, atau hanya tanggal).
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ParseAny: ISO dulu, lalu dd/mm/yyyy (dengan jam opsional).
func ParseAny(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := ParseInstant(s); err == nil {
		return t, nil
	}
	for _, layout := range dmyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func FormatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ISOToDMY: untuk menampilkan date_of_birth dari server di form.
func ISOToDMY(iso string) string {
	t, err := ParseAny(iso)
	if err != nil {
		return ""
	}
	return FormatDMY(t)
}

// DMYToISO: kebalikan ISOToDMY, dipakai saat menyimpan form.
func DMYToISO(dmy string) (string, error) {
	t, err := ParseDMY(dmy)
	if err != nil {
		return "", err
	}
	return FormatInstant(t), nil
}
