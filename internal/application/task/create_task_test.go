package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

type fakeTaskRepo struct {
	mu        sync.Mutex
	tasks     map[domain.TaskID]*domain.Task
	createErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[domain.TaskID]*domain.Task)}
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) GetForIdentity(ctx context.Context, id domain.TaskID, identity domain.IdentityID) (*domain.Task, error) {
	t, _ := f.GetByID(ctx, id)
	if t == nil {
		return nil, nil
	}
	if t.CreatedBy == identity || (t.AssignedTo != nil && *t.AssignedTo == identity) {
		return t, nil
	}
	return nil, nil
}

func (f *fakeTaskRepo) List(ctx context.Context, filter ports.TaskFilter) ([]*domain.Task, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Task
	for _, t := range f.tasks {
		cp := *t
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[t.ID]; !ok {
		return errors.New("missing task")
	}
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id domain.TaskID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) Stats(ctx context.Context, now time.Time) (*ports.TaskStats, error) {
	return &ports.TaskStats{}, nil
}

type fakeProjectExists struct {
	ports.ProjectRepository
	existing map[domain.ProjectID]bool
}

func (f *fakeProjectExists) Exists(ctx context.Context, id domain.ProjectID) (bool, error) {
	return f.existing[id], nil
}

type fakeIdentityLookup struct {
	ports.IdentityRepository
	known map[domain.IdentityID]*domain.Identity
}

func (f *fakeIdentityLookup) GetByID(ctx context.Context, id domain.IdentityID) (*domain.Identity, error) {
	return f.known[id], nil
}

type spyNotifier struct {
	mu      sync.Mutex
	calls   []string
	targets []domain.IdentityID
}

func (s *spyNotifier) Notify(identityID domain.IdentityID, event string, payload interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, event)
	s.targets = append(s.targets, identityID)
}

func (s *spyNotifier) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestCreateTaskNotifiesAssignee(t *testing.T) {
	projectID := domain.NewProjectID(uuid.New())
	assignee := domain.NewIdentityID(uuid.New())
	creator := domain.NewIdentityID(uuid.New())

	repo := newFakeTaskRepo()
	notifier := &spyNotifier{}
	uc := NewCreateTask(
		repo,
		&fakeProjectExists{existing: map[domain.ProjectID]bool{projectID: true}},
		&fakeIdentityLookup{known: map[domain.IdentityID]*domain.Identity{assignee: {ID: assignee}}},
		notifier,
		nil,
		zerolog.Nop(),
	)

	res, err := uc.Execute(context.Background(), CreateTaskInput{
		ProjectID:  projectID,
		Title:      "write the report",
		Priority:   domain.PriorityHigh,
		AssignedTo: &assignee,
		CreatedBy:  creator,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Task.Status != domain.StatusPending {
		t.Errorf("status = %s, want Pending default", res.Task.Status)
	}
	if notifier.count() != 1 || notifier.calls[0] != EventNewTask {
		t.Errorf("notifications = %v, want one %q", notifier.calls, EventNewTask)
	}
	if notifier.targets[0] != assignee {
		t.Errorf("notified %s, want assignee %s", notifier.targets[0], assignee)
	}
}

func TestCreateTaskUnassignedSkipsNotification(t *testing.T) {
	projectID := domain.NewProjectID(uuid.New())
	repo := newFakeTaskRepo()
	notifier := &spyNotifier{}
	uc := NewCreateTask(
		repo,
		&fakeProjectExists{existing: map[domain.ProjectID]bool{projectID: true}},
		&fakeIdentityLookup{},
		notifier,
		nil,
		zerolog.Nop(),
	)

	_, err := uc.Execute(context.Background(), CreateTaskInput{
		ProjectID: projectID,
		Title:     "untargeted chore",
		Priority:  domain.PriorityLow,
		CreatedBy: domain.NewIdentityID(uuid.New()),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if notifier.count() != 0 {
		t.Errorf("notifications = %d, want none for unassigned task", notifier.count())
	}
}

func TestCreateTaskMissingProject(t *testing.T) {
	uc := NewCreateTask(
		newFakeTaskRepo(),
		&fakeProjectExists{existing: map[domain.ProjectID]bool{}},
		&fakeIdentityLookup{},
		&spyNotifier{},
		nil,
		zerolog.Nop(),
	)
	_, err := uc.Execute(context.Background(), CreateTaskInput{
		ProjectID: domain.NewProjectID(uuid.New()),
		Title:     "orphan",
		Priority:  domain.PriorityLow,
		CreatedBy: domain.NewIdentityID(uuid.New()),
	})
	if !errors.Is(err, domerrors.ErrProjectNotFound) {
		t.Errorf("err = %v, want ErrProjectNotFound", err)
	}
}

func TestCreateTaskProjectDeletedDuringInsert(t *testing.T) {
	projectID := domain.NewProjectID(uuid.New())
	repo := newFakeTaskRepo()
	// The existence check passed, then a cascade delete won the race: the
	// store reports the vanished project, and nothing is notified.
	repo.createErr = domerrors.ErrProjectNotFound
	notifier := &spyNotifier{}
	uc := NewCreateTask(
		repo,
		&fakeProjectExists{existing: map[domain.ProjectID]bool{projectID: true}},
		&fakeIdentityLookup{},
		notifier,
		nil,
		zerolog.Nop(),
	)
	_, err := uc.Execute(context.Background(), CreateTaskInput{
		ProjectID: projectID,
		Title:     "doomed",
		Priority:  domain.PriorityLow,
		CreatedBy: domain.NewIdentityID(uuid.New()),
	})
	if !errors.Is(err, domerrors.ErrProjectNotFound) {
		t.Errorf("err = %v, want ErrProjectNotFound", err)
	}
	if notifier.count() != 0 {
		t.Errorf("notifications = %d, want none when the insert fails", notifier.count())
	}
}

func TestCreateTaskUnknownAssignee(t *testing.T) {
	projectID := domain.NewProjectID(uuid.New())
	ghost := domain.NewIdentityID(uuid.New())
	uc := NewCreateTask(
		newFakeTaskRepo(),
		&fakeProjectExists{existing: map[domain.ProjectID]bool{projectID: true}},
		&fakeIdentityLookup{},
		&spyNotifier{},
		nil,
		zerolog.Nop(),
	)
	_, err := uc.Execute(context.Background(), CreateTaskInput{
		ProjectID:  projectID,
		Title:      "ghost work",
		Priority:   domain.PriorityLow,
		AssignedTo: &ghost,
		CreatedBy:  domain.NewIdentityID(uuid.New()),
	})
	if !errors.Is(err, domerrors.ErrAssigneeNotFound) {
		t.Errorf("err = %v, want ErrAssigneeNotFound", err)
	}
}
