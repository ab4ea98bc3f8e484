package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

func seedTask(repo *fakeTaskRepo, creator, assignee domain.IdentityID) *domain.Task {
	t := &domain.Task{
		ID:         domain.NewTaskID(uuid.New()),
		ProjectID:  domain.NewProjectID(uuid.New()),
		Title:      "initial title",
		Priority:   domain.PriorityMedium,
		Status:     domain.StatusPending,
		AssignedTo: &assignee,
		CreatedBy:  creator,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	_ = repo.Create(context.Background(), t)
	return t
}

func TestAssigneeUpdatesStatusOnly(t *testing.T) {
	creator := domain.NewIdentityID(uuid.New())
	assignee := domain.NewIdentityID(uuid.New())
	repo := newFakeTaskRepo()
	seeded := seedTask(repo, creator, assignee)
	uc := NewUpdateTask(repo, &fakeIdentityLookup{})

	status := domain.StatusCompleted // Pending -> Completed directly is permitted
	res, err := uc.Execute(context.Background(), UpdateTaskInput{
		TaskID: seeded.ID,
		Actor:  assignee,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Task.Status != domain.StatusCompleted {
		t.Errorf("status = %s, want Completed", res.Task.Status)
	}
	if res.Task.Title != "initial title" {
		t.Errorf("title changed unexpectedly: %s", res.Task.Title)
	}
}

func TestAssigneeCannotTouchOtherFields(t *testing.T) {
	creator := domain.NewIdentityID(uuid.New())
	assignee := domain.NewIdentityID(uuid.New())
	repo := newFakeTaskRepo()
	seeded := seedTask(repo, creator, assignee)
	uc := NewUpdateTask(repo, &fakeIdentityLookup{})

	title := "hijacked"
	status := domain.StatusInProgress
	_, err := uc.Execute(context.Background(), UpdateTaskInput{
		TaskID: seeded.ID,
		Actor:  assignee,
		Title:  &title,
		Status: &status,
	})
	if !errors.Is(err, domerrors.ErrStatusOnly) {
		t.Errorf("err = %v, want ErrStatusOnly", err)
	}
	stored, _ := repo.GetByID(context.Background(), seeded.ID)
	if stored.Title != "initial title" {
		t.Errorf("title = %q, rejected update must not persist", stored.Title)
	}
}

func TestCreatorFullUpdate(t *testing.T) {
	creator := domain.NewIdentityID(uuid.New())
	assignee := domain.NewIdentityID(uuid.New())
	newAssignee := domain.NewIdentityID(uuid.New())
	repo := newFakeTaskRepo()
	seeded := seedTask(repo, creator, assignee)
	uc := NewUpdateTask(repo, &fakeIdentityLookup{known: map[domain.IdentityID]*domain.Identity{
		newAssignee: {ID: newAssignee},
	}})

	title := "revised title"
	prio := domain.PriorityHigh
	res, err := uc.Execute(context.Background(), UpdateTaskInput{
		TaskID:     seeded.ID,
		Actor:      creator,
		Title:      &title,
		Priority:   &prio,
		AssignedTo: &newAssignee,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Task.Title != "revised title" || res.Task.Priority != domain.PriorityHigh {
		t.Errorf("update not applied: %+v", res.Task)
	}
	if res.Task.AssignedTo == nil || *res.Task.AssignedTo != newAssignee {
		t.Errorf("assignee = %v, want %s", res.Task.AssignedTo, newAssignee)
	}
}

func TestUnrelatedIdentitySeesNotFound(t *testing.T) {
	repo := newFakeTaskRepo()
	seeded := seedTask(repo, domain.NewIdentityID(uuid.New()), domain.NewIdentityID(uuid.New()))
	uc := NewUpdateTask(repo, &fakeIdentityLookup{})

	status := domain.StatusCompleted
	_, err := uc.Execute(context.Background(), UpdateTaskInput{
		TaskID: seeded.ID,
		Actor:  domain.NewIdentityID(uuid.New()),
		Status: &status,
	})
	if !errors.Is(err, domerrors.ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteTaskCreatorOnly(t *testing.T) {
	creator := domain.NewIdentityID(uuid.New())
	assignee := domain.NewIdentityID(uuid.New())
	repo := newFakeTaskRepo()
	seeded := seedTask(repo, creator, assignee)
	uc := NewDeleteTask(repo)

	if err := uc.Execute(context.Background(), seeded.ID, assignee); !errors.Is(err, domerrors.ErrTaskNotFound) {
		t.Errorf("assignee delete err = %v, want ErrTaskNotFound", err)
	}
	if err := uc.Execute(context.Background(), seeded.ID, creator); err != nil {
		t.Errorf("creator delete err = %v", err)
	}
	if got, _ := repo.GetByID(context.Background(), seeded.ID); got != nil {
		t.Error("task still present after delete")
	}
}
