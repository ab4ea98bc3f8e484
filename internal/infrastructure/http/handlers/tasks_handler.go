package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/application/task"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/http/middleware"
)

type TasksHandler struct {
	create   *task.CreateTask
	list     *task.ListTasks
	get      *task.GetTask
	update   *task.UpdateTask
	remove   *task.DeleteTask
	stats    *task.Stats
	validate *validator.Validate
	log      zerolog.Logger
}

func NewTasksHandler(create *task.CreateTask, list *task.ListTasks, get *task.GetTask, update *task.UpdateTask, remove *task.DeleteTask, stats *task.Stats, log zerolog.Logger) *TasksHandler {
	return &TasksHandler{
		create:   create,
		list:     list,
		get:      get,
		update:   update,
		remove:   remove,
		stats:    stats,
		validate: validator.New(),
		log:      log,
	}
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		writeFailed(w, http.StatusUnauthorized, "not logged in")
		return
	}
	var body struct {
		ProjectID   string     `json:"projectId" validate:"required,uuid"`
		Title       string     `json:"title" validate:"required,max=200"`
		Description string     `json:"description" validate:"max=2000"`
		Priority    string     `json:"priority" validate:"required,oneof=Low Medium High"`
		Status      string     `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
		Deadline    *time.Time `json:"deadline"`
		AssignedTo  *string    `json:"assignedTo" validate:"omitempty,uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, err.Error())
		return
	}
	projectID, err := domain.ParseProjectID(body.ProjectID)
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid project id")
		return
	}
	priority, err := domain.ParsePriority(body.Priority)
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid priority")
		return
	}
	var status domain.Status
	if body.Status != "" {
		status, err = domain.ParseStatus(body.Status)
		if err != nil {
			writeFailed(w, http.StatusBadRequest, "invalid status")
			return
		}
	}
	var assignedTo *domain.IdentityID
	if body.AssignedTo != nil {
		id, err := domain.ParseIdentityID(*body.AssignedTo)
		if err != nil {
			writeFailed(w, http.StatusBadRequest, "invalid assignee id")
			return
		}
		assignedTo = &id
	}
	result, err := h.create.Execute(r.Context(), task.CreateTaskInput{
		ProjectID:   projectID,
		Title:       body.Title,
		Description: body.Description,
		Priority:    priority,
		Status:      status,
		Deadline:    body.Deadline,
		AssignedTo:  assignedTo,
		CreatedBy:   actorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domerrors.ErrProjectNotFound):
			writeFailed(w, http.StatusNotFound, "project not found")
		case errors.Is(err, domerrors.ErrAssigneeNotFound):
			writeFailed(w, http.StatusBadRequest, "assignee does not exist")
		default:
			h.log.Error().Err(err).Msg("create task failed")
			writeFailed(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]interface{}{
		"task": task.NewTaskDTO(result.Task),
	})
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	input := task.ListTasksInput{
		SortBy:   r.URL.Query().Get("sortBy"),
		SortDesc: r.URL.Query().Get("order") == "desc",
		Limit:    limit,
		Offset:   offset,
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status, err := domain.ParseStatus(v)
		if err != nil {
			writeFailed(w, http.StatusBadRequest, "invalid status")
			return
		}
		input.Status = &status
	}
	if v := r.URL.Query().Get("priority"); v != "" {
		priority, err := domain.ParsePriority(v)
		if err != nil {
			writeFailed(w, http.StatusBadRequest, "invalid priority")
			return
		}
		input.Priority = &priority
	}
	result, err := h.list.Execute(r.Context(), input)
	if err != nil {
		h.log.Error().Err(err).Msg("list tasks failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	tasks := make([]*task.TaskDTO, 0, len(result.Tasks))
	for _, t := range result.Tasks {
		tasks = append(tasks, task.NewTaskDTO(t))
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"tasks": tasks,
		"total": result.Total,
	})
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		writeFailed(w, http.StatusUnauthorized, "not logged in")
		return
	}
	id, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid task id")
		return
	}
	t, err := h.get.Execute(r.Context(), id, actorID)
	if err != nil {
		if errors.Is(err, domerrors.ErrTaskNotFound) {
			writeFailed(w, http.StatusNotFound, "task not found")
			return
		}
		h.log.Error().Err(err).Msg("get task failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"task": task.NewTaskDTO(t),
	})
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		writeFailed(w, http.StatusUnauthorized, "not logged in")
		return
	}
	id, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid task id")
		return
	}
	var body struct {
		Title       *string    `json:"title" validate:"omitempty,max=200"`
		Description *string    `json:"description" validate:"omitempty,max=2000"`
		Priority    *string    `json:"priority" validate:"omitempty,oneof=Low Medium High"`
		Status      *string    `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
		Deadline    *time.Time `json:"deadline"`
		AssignedTo  *string    `json:"assignedTo" validate:"omitempty,uuid"`
		Unassign    bool       `json:"unassign"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFailed(w, http.StatusBadRequest, err.Error())
		return
	}
	input := task.UpdateTaskInput{
		TaskID:        id,
		Actor:         actorID,
		Title:         body.Title,
		Description:   body.Description,
		Deadline:      body.Deadline,
		ClearAssignee: body.Unassign,
	}
	if body.Priority != nil {
		priority, err := domain.ParsePriority(*body.Priority)
		if err != nil {
			writeFailed(w, http.StatusBadRequest, "invalid priority")
			return
		}
		input.Priority = &priority
	}
	if body.Status != nil {
		status, err := domain.ParseStatus(*body.Status)
		if err != nil {
			writeFailed(w, http.StatusBadRequest, "invalid status")
			return
		}
		input.Status = &status
	}
	if body.AssignedTo != nil {
		assignee, err := domain.ParseIdentityID(*body.AssignedTo)
		if err != nil {
			writeFailed(w, http.StatusBadRequest, "invalid assignee id")
			return
		}
		input.AssignedTo = &assignee
	}
	result, err := h.update.Execute(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domerrors.ErrTaskNotFound):
			writeFailed(w, http.StatusNotFound, "task not found")
		case errors.Is(err, domerrors.ErrStatusOnly):
			writeFailed(w, http.StatusForbidden, "assignees may only update the task status")
		case errors.Is(err, domerrors.ErrAssigneeNotFound):
			writeFailed(w, http.StatusBadRequest, "assignee does not exist")
		default:
			h.log.Error().Err(err).Msg("update task failed")
			writeFailed(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"task": task.NewTaskDTO(result.Task),
	})
}

func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		writeFailed(w, http.StatusUnauthorized, "not logged in")
		return
	}
	id, err := domain.ParseTaskID(chi.URLParam(r, "id"))
	if err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid task id")
		return
	}
	if err := h.remove.Execute(r.Context(), id, actorID); err != nil {
		if errors.Is(err, domerrors.ErrTaskNotFound) {
			writeFailed(w, http.StatusNotFound, "task not found")
			return
		}
		h.log.Error().Err(err).Msg("delete task failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "task deleted",
	})
}

func (h *TasksHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Execute(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("task stats failed")
		writeFailed(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"stats": map[string]interface{}{
			"total":            stats.Total,
			"completed":        stats.Completed,
			"pending":          stats.Pending,
			"overdue":          stats.Overdue,
			"createdThisMonth": stats.CreatedThisMonth,
			"byPriority": map[string]interface{}{
				"high":   stats.HighPriority,
				"medium": stats.MediumPriority,
				"low":    stats.LowPriority,
			},
		},
	})
}
