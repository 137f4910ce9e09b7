package datefmt

import (
	"strconv"
	"strings"
	"time"
)

// Timestamp menyimpan waktu kanonik + string tampilan aslinya dari server.
// Nilai yang tidak bisa di-parse: Time = zero, Raw tetap disimpan untuk tampilan.
type Timestamp struct {
	Time time.Time
	Raw  string
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC(), Raw: FormatInstant(t)}
}

func ParseTimestamp(s string) Timestamp {
	t, _ := ParseAny(s)
	return Timestamp{Time: t, Raw: strings.TrimSpace(s)}
}

func (ts Timestamp) IsZero() bool { return ts.Time.IsZero() && ts.Raw == "" }

// Day: tanggal kalender (UTC, jam 00:00) sesuai yang tampil di dd/mm/yyyy.
// ok = false kalau waktunya tidak bisa di-parse.
func (ts Timestamp) Day() (day time.Time, ok bool) {
	if ts.Time.IsZero() {
		return time.Time{}, false
	}
	t := ts.Time.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// Display: dd/mm/yyyy; string mentah hanya kalau tidak bisa di-parse.
func (ts Timestamp) Display() string {
	if !ts.Time.IsZero() {
		return FormatDMY(ts.Time)
	}
	return ts.Raw
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	if ts.Raw != "" {
		return []byte(strconv.Quote(ts.Raw)), nil
	}
	return []byte(strconv.Quote(FormatInstant(ts.Time))), nil
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		*ts = Timestamp{}
		return nil
	}
	unq, err := strconv.Unquote(s)
	if err != nil {
		// angka / bentuk aneh: simpan mentah saja
		*ts = Timestamp{Raw: s}
		return nil
	}
	*ts = ParseTimestamp(unq)
	return nil
}
