package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/http/middleware"
)

type UsersHandler struct {
	identities ports.IdentityRepository
	validate   *validator.Validate
	log        zerolog.Logger
}

func NewUsersHandler(identities ports.IdentityRepository, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{identities: identities, validate: validator.New(), log: log}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	identities, total, err := h.identities.List(r.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	users := make([]*IdentityDTO, 0, len(identities))
	for _, identity := range identities {
		users = append(users, NewIdentityDTO(identity))
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"total": total,
	})
}

func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, _, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		writeFailed(w, http.StatusUnauthorized, "not logged in")
		return
	}
	identity, err := h.identities.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("load current user failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	if identity == nil {
		writeFailed(w, http.StatusNotFound, "user not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"user": NewIdentityDTO(identity),
	})
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseIdentityID(chi.URLParam(r, "id"))
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid user id")
		return
	}
	identity, err := h.identities.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("get user failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	if identity == nil {
		writeFailed(w, http.StatusNotFound, "user not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"user": NewIdentityDTO(identity),
	})
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseIdentityID(chi.URLParam(r, "id"))
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid user id")
		return
	}
	actorID, actorRole, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		writeFailed(w, http.StatusUnauthorized, "not logged in")
		return
	}
	// Users edit themselves; only Admin edits others or changes roles.
	if actorID != id && actorRole != domain.RoleAdmin {
		writeFailed(w, http.StatusForbidden, "you do not have permission to perform this action")
		return
	}
	var body struct {
		Name  *string `json:"name" validate:"omitempty,max=100"`
		Email *string `json:"email" validate:"omitempty,email,max=254"`
		Role  *string `json:"role" validate:"omitempty,oneof=Admin User"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Role != nil && actorRole != domain.RoleAdmin {
		writeFailed(w, http.StatusForbidden, "you do not have permission to perform this action")
		return
	}
	identity, err := h.identities.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("update user failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	if identity == nil {
		writeFailed(w, http.StatusNotFound, "user not found")
		return
	}
	if body.Name != nil {
		identity.DisplayName = *body.Name
	}
	if body.Email != nil {
		email := SanitizeEmail(*body.Email)
		if email == "" {
			writeFailed(w, http.StatusBadRequest, "invalid email")
			return
		}
		identity.Email = email
	}
	if body.Role != nil {
		role, err := domain.ParseRole(*body.Role)
		if err != nil {
			writeFailed(w, http.StatusBadRequest, "invalid role")
			return
		}
		identity.Role = role
	}
	identity.UpdatedAt = time.Now()
	if err := h.identities.Update(r.Context(), identity); err != nil {
		if errors.Is(err, domerrors.ErrEmailExists) {
			writeFailed(w, http.StatusConflict, "email already in use")
			return
		}
		h.log.Error().Err(err).Msg("update user failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"user": NewIdentityDTO(identity),
	})
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseIdentityID(chi.URLParam(r, "id"))
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.identities.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, domerrors.ErrIdentityNotFound):
			writeFailed(w, http.StatusNotFound, "user not found")
		case errors.Is(err, domerrors.ErrIdentityInUse):
			writeFailed(w, http.StatusConflict, "user still owns projects or tasks")
		default:
			h.log.Error().Err(err).Msg("delete user failed")
			writeFailed(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "user deleted",
	})
}
