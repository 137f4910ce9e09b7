package model

import "time"

// Session adalah identitas login yang tersimpan di perangkat.
// Field kosong berarti "tidak ada"; Session{} = belum login.
type Session struct {
	Token     string
	UserID    string
	StudentID string

	// diambil dari klaim "exp" kalau token berbentuk JWT; nil kalau tidak diketahui
	ExpiresAt *time.Time
}

func (s Session) LoggedIn() bool { return s.Token != "" }

func (s Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}
