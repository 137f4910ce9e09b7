package fakeapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

/* ===============================
   AUTH
=================================*/

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	s.mu.Lock()
	u, ok := s.users[req.Username]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(u.hash, []byte(req.Password)) != nil {
		return fail(c, fiber.StatusUnauthorized, "Sai tài khoản hoặc mật khẩu!")
	}

	token, err := s.IssueToken(u.id, s.tokenTTL)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Đăng nhập thành công!",
		"token":   token,
		"user": LoginUser{
			ID:       u.id,
			Username: u.username,
			Active:   true,
			Roles:    []Role{{Role: "student"}},
		},
	})
}

func (s *Server) changePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	userID, _ := c.Locals(localUserID).(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	var u *user
	for _, candidate := range s.users {
		if candidate.id == userID {
			u = candidate
			break
		}
	}
	if u == nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	if bcrypt.CompareHashAndPassword(u.hash, []byte(req.OldPassword)) != nil {
		return fail(c, fiber.StatusBadRequest, "Mật khẩu cũ không đúng!")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	u.hash = hash

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Đổi mật khẩu thành công!",
	})
}

/* ===============================
   STUDENT PROFILES
=================================*/

func (s *Server) getProfileByUser(c *fiber.Ctx) error {
	s.mu.Lock()
	p, ok := s.profiles[c.Params("userId")]
	var out Profile
	if ok {
		out = *p
	}
	s.mu.Unlock()

	if !ok {
		return fail(c, fiber.StatusNotFound, "Không tìm thấy sinh viên")
	}
	return success(c, "", out)
}

// Hanya field yang boleh diubah mahasiswa sendiri yang diterapkan.
func (s *Server) updateProfile(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var p *Profile
	for _, candidate := range s.profiles {
		if candidate.ID == c.Params("id") {
			p = candidate
			break
		}
	}
	if p == nil {
		return fail(c, fiber.StatusNotFound, "Không tìm thấy sinh viên")
	}

	for key, target := range map[string]*string{
		"gender":          &p.Gender,
		"date_of_birth":   &p.DateOfBirth,
		"phone":           &p.Phone,
		"email":           &p.Email,
		"contact_address": &p.ContactAddress,
		"student_image":   &p.Avatar,
	} {
		if v, ok := body[key].(string); ok {
			*target = strings.TrimSpace(v)
		}
	}

	return success(c, "Cập nhật thông tin sinh viên thành công", *p)
}

/* ===============================
   EVIDENCES
=================================*/

func (s *Server) listEvidences(c *fiber.Ctx) error {
	return success(c, "", s.Evidences())
}

func (s *Server) listEvidencesByStudent(c *fiber.Ctx) error {
	studentID := c.Params("studentId")
	out := make([]Evidence, 0)
	for _, e := range s.Evidences() {
		if e.Student != nil && e.Student.ID == studentID {
			out = append(out, e)
		}
	}
	return success(c, "", out)
}

func (s *Server) getEvidence(c *fiber.Ctx) error {
	id := c.Params("id")
	for _, e := range s.Evidences() {
		if e.ID == id {
			return success(c, "", e)
		}
	}
	return fail(c, fiber.StatusNotFound, "Không tìm thấy minh chứng")
}

func (s *Server) submitEvidence(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Link = strings.TrimSpace(req.Link)
	if err := s.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	userID, _ := c.Locals(localUserID).(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	e := &Evidence{
		ID:          uuid.NewString(),
		Title:       req.Name,
		Status:      "pending",
		FileURL:     req.Link,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		SelfPoint:   req.Points,
	}
	if p, ok := s.profiles[userID]; ok {
		e.Student = &Student{
			ID:            p.ID,
			FullName:      p.FullName,
			StudentNumber: p.StudentNumber,
			DateOfBirth:   p.DateOfBirth,
		}
	}
	// terbaru di depan
	s.evidences = append([]*Evidence{e}, s.evidences...)

	return successWithCode(c, fiber.StatusCreated, "Nộp minh chứng thành công!", *e)
}

func (s *Server) updateEvidence(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var e *Evidence
	for _, candidate := range s.evidences {
		if candidate.ID == c.Params("id") {
			e = candidate
			break
		}
	}
	if e == nil {
		return fail(c, fiber.StatusNotFound, "Không tìm thấy minh chứng")
	}

	point, hasPoint := body["self_point"].(float64)
	if hasPoint && point <= 0 {
		return fail(c, fiber.StatusUnprocessableEntity, "Số điểm phải là số dương!")
	}

	if v, ok := body["title"].(string); ok {
		e.Title = strings.TrimSpace(v)
	}
	if v, ok := body["file_url"].(string); ok {
		e.FileURL = strings.TrimSpace(v)
	}
	if hasPoint {
		e.SelfPoint = point
	}

	return success(c, "Minh chứng đã được cập nhật!", *e)
}
