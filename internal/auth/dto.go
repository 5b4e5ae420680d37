package auth

import (
	"time"

	"github.com/frahmantamala/hr-management/internal"
)

type LoginDTO struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Role        internal.Role `json:"role"`
}
