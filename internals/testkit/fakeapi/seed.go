package fakeapi

import "fmt"

// Akun demo untuk `studentpoints dev fake-api`.
const (
	DemoUsername = "102210001"
	DemoPassword = "123456"
	DemoUserID   = "6650a1c2e4b0a1b2c3d4e5f6"
)

// SeedDemo mengisi satu mahasiswa (ketua kelas) beserta tiga evidence.
func (s *Server) SeedDemo() error {
	if _, err := s.AddUser(DemoUserID, DemoUsername, DemoPassword); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	p := s.AddProfile(Profile{
		UserID:         DemoUserID,
		StudentNumber:  DemoUsername,
		FullName:       "Nguyễn Văn An",
		Gender:         "male",
		DateOfBirth:    "2004-03-15T00:00:00.000Z",
		FacultyName:    "Công nghệ Thông tin",
		Class:          &ClassRef{ID: "cls-21tclc", Name: "21TCLC_DT1"},
		IsClassMonitor: true,
		Phone:          "0905123456",
		Email:          "an.nv@sv.dut.udn.vn",
		ContactAddress: "54 Nguyễn Lương Bằng, Đà Nẵng",
	})
	student := &Student{ID: p.ID, FullName: p.FullName, StudentNumber: p.StudentNumber, DateOfBirth: p.DateOfBirth}

	s.AddEvidence(Evidence{
		Title:        "Hiến máu nhân đạo 2024",
		Status:       "approved",
		FileURL:      "https://drive.google.com/file/d/hien-mau-2024",
		SubmittedAt:  "12/01/2024",
		VerifiedAt:   "20/01/2024",
		Student:      student,
		SelfPoint:    5,
		ClassPoint:   5,
		FacultyPoint: 5,
	})
	s.AddEvidence(Evidence{
		Title:       "Seminar Khởi nghiệp",
		Status:      "pending",
		FileURL:     "https://drive.google.com/file/d/seminar-khoi-nghiep",
		SubmittedAt: "2024-03-02T08:30:00Z",
		Student:     student,
		SelfPoint:   3,
	})
	s.AddEvidence(Evidence{
		Title:       "Mùa hè xanh",
		Status:      "pending",
		FileURL:     "https://drive.google.com/file/d/mua-he-xanh",
		SubmittedAt: "15/07/2024",
		Student:     student,
		SelfPoint:   10,
	})
	return nil
}
