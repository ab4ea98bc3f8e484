package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/application/auth"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	signup   *auth.Signup
	login    *auth.Login
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(signup *auth.Signup, login *auth.Login, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		signup:   signup,
		login:    login,
		validate: validator.New(),
		log:      log,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required"`
		Role     string `json:"role" validate:"omitempty,oneof=Admin User"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	if email == "" {
		writeFailed(w, http.StatusBadRequest, "invalid email")
		return
	}
	if problems := PasswordProblems(body.Password); len(problems) > 0 {
		writeFailedList(w, http.StatusBadRequest, problems)
		return
	}
	role := domain.RoleUser
	if body.Role != "" {
		parsed, err := domain.ParseRole(body.Role)
		if err != nil {
			writeFailed(w, http.StatusBadRequest, "invalid role")
			return
		}
		role = parsed
	}
	result, err := h.signup.Execute(r.Context(), auth.SignupInput{
		DisplayName: body.Name,
		Email:       email,
		Password:    body.Password,
		Role:        role,
	})
	if err != nil {
		middleware.RecordAuthAttempt("signup", false)
		if errors.Is(err, domerrors.ErrEmailExists) {
			writeFailed(w, http.StatusConflict, "email already in use")
			return
		}
		h.log.Error().Err(err).Msg("signup failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	middleware.RecordAuthAttempt("signup", true)
	writeSuccess(w, http.StatusCreated, map[string]interface{}{
		"token": result.Token,
		"user":  NewIdentityDTO(result.Identity),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	if email == "" {
		writeFailed(w, http.StatusBadRequest, "invalid email")
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    email,
		Password: body.Password,
	})
	if err != nil {
		middleware.RecordAuthAttempt("login", false)
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			// One message for bad email and bad password alike.
			writeFailed(w, http.StatusUnauthorized, "incorrect email or password")
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	middleware.RecordAuthAttempt("login", true)
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"token": result.Token,
		"user":  NewIdentityDTO(result.Identity),
	})
}

// Logout is a client-side concern with stateless tokens; the endpoint exists
// so clients have a uniform call to clear their session against.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "logged out",
	})
}
