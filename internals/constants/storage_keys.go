package constants

// Key yang disimpan di storage perangkat. Ketiganya dihapus bersama saat logout.
const (
	StorageKeyToken     = "token"
	StorageKeyUserID    = "user_id"
	StorageKeyStudentID = "student_id"
)

// SessionKeys: urutan penghapusan saat logout
var SessionKeys = []string{
	StorageKeyToken,
	StorageKeyUserID,
	StorageKeyStudentID,
}
