package constants

import "fmt"

// Pesan fallback untuk UI (bahasa Vietnam, sama seperti aplikasi mobile).
// Pesan dari server selalu diutamakan; konstanta ini hanya dipakai kalau server tidak mengirim "message".
const (
	MsgNotLoggedIn        = "Chưa đăng nhập"
	MsgConnectionFailed   = "Lỗi kết nối đến server."
	MsgServerUnreachable  = "Không thể kết nối đến server. Vui lòng thử lại sau!"
	MsgServerError        = "Lỗi máy chủ. Vui lòng thử lại sau!"
	MsgNotFound           = "Không tìm thấy dữ liệu."
	MsgInvalidCredentials = "Sai tài khoản hoặc mật khẩu!"
	MsgStorageFailed      = "Không thể lưu dữ liệu trên thiết bị."
	MsgMissingFields      = "Vui lòng nhập đầy đủ thông tin!"
	MsgValidationFailed   = "Dữ liệu không hợp lệ."

	MsgEvidenceListFailed    = "Không thể lấy danh sách minh chứng"
	MsgEvidenceDetailFailed  = "Không thể lấy thông tin minh chứng."
	MsgEvidenceSubmitFailed  = "Không thể nộp minh chứng."
	MsgEvidenceSubmitted     = "Nộp minh chứng thành công!"
	MsgEvidenceUpdateFailed  = "Không thể cập nhật minh chứng."
	MsgEvidenceUpdated       = "Minh chứng đã được cập nhật!"
	MsgEvidenceEditForbidden = "Bạn không có quyền chỉnh sửa minh chứng này."
	MsgPointsNotPositive     = "Số điểm phải là số dương!"

	MsgProfileLoadFailed = "Không thể tải thông tin sinh viên"
	MsgProfileSaveFailed = "Không thể lưu thông tin sinh viên"
	MsgProfileSaved      = "Cập nhật thông tin sinh viên thành công"

	MsgPasswordMismatch     = "Mật khẩu mới và xác nhận không khớp!"
	MsgPasswordLength       = "Mật khẩu phải từ 6 đến 12 ký tự!"
	MsgPasswordChanged      = "Đổi mật khẩu thành công!"
	MsgPasswordChangeFailed = "Đổi mật khẩu thất bại!"
	MsgLoginSucceeded       = "Đăng nhập thành công!"
	MsgLogoutSucceeded      = "Đã đăng xuất"
)

// Pesan per-field untuk hasil validasi
const (
	FieldMsgRequired    = "Trường này là bắt buộc"
	FieldMsgDateOfBirth = "Ngày sinh không hợp lệ (dd/mm/yyyy)"
	FieldMsgGender      = "Giới tính phải là Nam hoặc Nữ"
	FieldMsgEmail       = "Email không hợp lệ"
	FieldMsgPhone       = "Số điện thoại phải gồm 9-12 chữ số"
	FieldMsgPositive    = "Giá trị phải là số dương"
	FieldMsgInvalid     = "Giá trị không hợp lệ"
)

func FieldMsgMin(n string) string {
	return fmt.Sprintf("Tối thiểu %s ký tự", n)
}

func FieldMsgMax(n string) string {
	return fmt.Sprintf("Tối đa %s ký tự", n)
}
