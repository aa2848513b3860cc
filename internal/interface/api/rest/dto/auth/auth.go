package auth

import "user-registry-api/internal/interface/api/rest/dto/user"

const MessageRegistered = "Usuario creado correctamente."

type (
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	LoginResponse struct {
		AccessToken string    `json:"access_token"`
		TokenType   string    `json:"token_type"`
		ExpiresIn   int64     `json:"expires_in"`
		User        user.User `json:"user"`
	}
	RegisterResponse struct {
		Message string    `json:"message"`
		User    user.User `json:"user"`
	}
)
