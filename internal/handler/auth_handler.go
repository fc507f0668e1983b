package handler

import (
	"net/http"

	"github.com/waldy-ctt/TFLH-BE/internal/service"
)

type credentialFields struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var request credentialFields
	if !decodeBody(w, r, &request) {
		return
	}
	if request.Username == "" || request.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}

	user, err := h.authService.SignUp(request.Username, request.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var request credentialFields
	if !decodeBody(w, r, &request) {
		return
	}

	user, err := h.authService.SignIn(request.Username, request.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
