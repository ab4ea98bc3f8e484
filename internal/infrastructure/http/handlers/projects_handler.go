package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/application/project"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/http/middleware"
)

type ProjectsHandler struct {
	create   *project.CreateProject
	list     *project.ListProjects
	get      *project.GetProject
	update   *project.UpdateProject
	remove   *project.DeleteProject
	validate *validator.Validate
	log      zerolog.Logger
}

func NewProjectsHandler(create *project.CreateProject, list *project.ListProjects, get *project.GetProject, update *project.UpdateProject, remove *project.DeleteProject, log zerolog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		create:   create,
		list:     list,
		get:      get,
		update:   update,
		remove:   remove,
		validate: validator.New(),
		log:      log,
	}
}

func parseMembers(raw []string) ([]domain.IdentityID, error) {
	members := make([]domain.IdentityID, 0, len(raw))
	for _, s := range raw {
		id, err := domain.ParseIdentityID(s)
		if err != nil {
			return nil, err
		}
		members = append(members, id)
	}
	return members, nil
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		writeFailed(w, http.StatusUnauthorized, "not logged in")
		return
	}
	var body struct {
		Name        string   `json:"name" validate:"required,max=200"`
		Description string   `json:"description" validate:"max=2000"`
		Members     []string `json:"members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, err.Error())
		return
	}
	members, err := parseMembers(body.Members)
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid member id")
		return
	}
	result, err := h.create.Execute(r.Context(), project.CreateProjectInput{
		Name:        body.Name,
		Description: body.Description,
		CreatedBy:   actorID,
		Members:     members,
	})
	if err != nil {
		if errors.Is(err, domerrors.ErrMembersNotFound) {
			writeFailed(w, http.StatusBadRequest, "one or more members do not exist")
			return
		}
		h.log.Error().Err(err).Msg("create project failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]interface{}{
		"project": NewProjectDTO(result.Project),
	})
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	result, err := h.list.Execute(r.Context(), project.ListProjectsInput{
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("list projects failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	projects := make([]*ProjectDTO, 0, len(result.Projects))
	for _, p := range result.Projects {
		projects = append(projects, NewProjectDTO(p))
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"projects": projects,
		"total":    result.Total,
	})
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid project id")
		return
	}
	p, err := h.get.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, domerrors.ErrProjectNotFound) {
			writeFailed(w, http.StatusNotFound, "project not found")
			return
		}
		h.log.Error().Err(err).Msg("get project failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"project": NewProjectDTO(p),
	})
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var body struct {
		Name        string   `json:"name" validate:"required,max=200"`
		Description string   `json:"description" validate:"max=2000"`
		Members     []string `json:"members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, err.Error())
		return
	}
	members, err := parseMembers(body.Members)
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid member id")
		return
	}
	result, err := h.update.Execute(r.Context(), project.UpdateProjectInput{
		ProjectID:   id,
		Name:        body.Name,
		Description: body.Description,
		Members:     members,
	})
	if err != nil {
		switch {
		case errors.Is(err, domerrors.ErrProjectNotFound):
			writeFailed(w, http.StatusNotFound, "project not found")
		case errors.Is(err, domerrors.ErrMembersNotFound):
			writeFailed(w, http.StatusBadRequest, "one or more members do not exist")
		default:
			h.log.Error().Err(err).Msg("update project failed")
			writeFailed(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"project": NewProjectDTO(result.Project),
	})
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid project id")
		return
	}
	result, err := h.remove.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, domerrors.ErrProjectNotFound) {
			writeFailed(w, http.StatusNotFound, "project not found")
			return
		}
		h.log.Error().Err(err).Msg("delete project failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.log.Info().Str("project_id", id.String()).Int64("tasks_deleted", result.TasksDeleted).Msg("project deleted")
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"message":      "project and its tasks deleted",
		"tasksDeleted": result.TasksDeleted,
	})
}
