package auth

// admin login request payload
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}
