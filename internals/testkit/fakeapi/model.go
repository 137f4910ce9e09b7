package fakeapi

// Bentuk JSON di sini sengaja mengikuti backend asli apa adanya
// (termasuk "_id", "falcuty_name", dan "student_id" yang berisi objek).

type Role struct {
	Role string `json:"role"`
}

type LoginUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Active   bool   `json:"active"`
	IsLocked bool   `json:"isLocked"`
	Roles    []Role `json:"roles"`
}

type Student struct {
	ID            string `json:"_id"`
	FullName      string `json:"full_name"`
	StudentNumber string `json:"student_number"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
}

type Evidence struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Status       string   `json:"status"`
	FileURL      string   `json:"file_url"`
	SubmittedAt  string   `json:"submitted_at"`
	VerifiedAt   string   `json:"verified_at,omitempty"`
	Student      *Student `json:"student_id,omitempty"`
	SelfPoint    float64  `json:"self_point"`
	ClassPoint   float64  `json:"class_point"`
	FacultyPoint float64  `json:"faculty_point"`
}

type ClassRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type Profile struct {
	ID             string    `json:"_id"`
	UserID         string    `json:"user_id"`
	StudentNumber  string    `json:"student_number"`
	FullName       string    `json:"full_name"`
	Gender         string    `json:"gender,omitempty"`
	DateOfBirth    string    `json:"date_of_birth,omitempty"`
	FacultyName    string    `json:"falcuty_name,omitempty"`
	Class          *ClassRef `json:"class_id,omitempty"`
	IsClassMonitor bool      `json:"isClassMonitor"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	ContactAddress string    `json:"contact_address,omitempty"`
	Avatar         string    `json:"student_image,omitempty"`
}

/* ===============================
   Request bodies
=================================*/

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=12"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type submitRequest struct {
	Name   string  `json:"name" validate:"required"`
	Link   string  `json:"link" validate:"required"`
	Points float64 `json:"points" validate:"gt=0"`
}

type user struct {
	id       string
	username string
	hash     []byte
}
