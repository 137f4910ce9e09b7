package dto

/* ===============================
   LOGIN
=================================*/

type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type LoginRole struct {
	Role string `json:"role"`
}

type LoginUser struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Active   bool        `json:"active"`
	IsLocked bool        `json:"isLocked"`
	Roles    []LoginRole `json:"roles"`
}

type LoginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
	Message string    `json:"message,omitempty"`
}

/* ===============================
   CHANGE PASSWORD
=================================*/

type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=12"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type ChangePasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
