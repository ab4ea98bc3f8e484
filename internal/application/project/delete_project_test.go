package project

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	domerrors "github.com/yusuufashraaf/TMS-backend/internal/domain/errors"
)

// txProjectStore emulates the store's transactional cascade: all mutations
// happen on a copy that replaces the live state only on commit, mirroring
// the all-or-nothing contract of the postgres repository.
type txProjectStore struct {
	ports.ProjectRepository
	projects map[domain.ProjectID]*domain.Project
	tasks    map[domain.TaskID]domain.ProjectID
	failMid  error // injected failure between task deletion and project deletion
}

func newTxProjectStore() *txProjectStore {
	return &txProjectStore{
		projects: make(map[domain.ProjectID]*domain.Project),
		tasks:    make(map[domain.TaskID]domain.ProjectID),
	}
}

func (s *txProjectStore) DeleteCascade(ctx context.Context, id domain.ProjectID) (int64, error) {
	if _, ok := s.projects[id]; !ok {
		return 0, domerrors.ErrProjectNotFound
	}
	// Work on a copy; commit by swapping.
	projects := make(map[domain.ProjectID]*domain.Project, len(s.projects))
	for k, v := range s.projects {
		projects[k] = v
	}
	tasks := make(map[domain.TaskID]domain.ProjectID, len(s.tasks))
	for k, v := range s.tasks {
		tasks[k] = v
	}
	var deleted int64
	for taskID, projectID := range tasks {
		if projectID == id {
			delete(tasks, taskID)
			deleted++
		}
	}
	if s.failMid != nil {
		return 0, s.failMid // rollback: live state untouched
	}
	delete(projects, id)
	s.projects = projects
	s.tasks = tasks
	return deleted, nil
}

func seed(s *txProjectStore, taskCount int) domain.ProjectID {
	id := domain.NewProjectID(uuid.New())
	s.projects[id] = &domain.Project{ID: id, Name: "seeded"}
	for i := 0; i < taskCount; i++ {
		s.tasks[domain.NewTaskID(uuid.New())] = id
	}
	return id
}

func TestDeleteProjectCascadeRemovesAllTasks(t *testing.T) {
	store := newTxProjectStore()
	victim := seed(store, 3)
	survivor := seed(store, 2)
	uc := NewDeleteProject(store)

	res, err := uc.Execute(context.Background(), victim)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.TasksDeleted != 3 {
		t.Errorf("tasks deleted = %d, want 3", res.TasksDeleted)
	}
	if _, ok := store.projects[victim]; ok {
		t.Error("project still present after cascade")
	}
	for taskID, projectID := range store.tasks {
		if projectID == victim {
			t.Errorf("orphaned task %s still references deleted project", taskID)
		}
	}
	if _, ok := store.projects[survivor]; !ok {
		t.Error("unrelated project was removed")
	}
}

func TestDeleteProjectNotFoundWritesNothing(t *testing.T) {
	store := newTxProjectStore()
	seed(store, 2)
	before := snapshot(store)
	uc := NewDeleteProject(store)

	_, err := uc.Execute(context.Background(), domain.NewProjectID(uuid.New()))
	if !errors.Is(err, domerrors.ErrProjectNotFound) {
		t.Fatalf("err = %v, want ErrProjectNotFound", err)
	}
	if !reflect.DeepEqual(before, snapshot(store)) {
		t.Error("store changed on not-found delete")
	}
}

func TestDeleteProjectMidFailureRollsBack(t *testing.T) {
	store := newTxProjectStore()
	victim := seed(store, 4)
	store.failMid = errors.New("connection reset during cascade")
	before := snapshot(store)
	uc := NewDeleteProject(store)

	_, err := uc.Execute(context.Background(), victim)
	if err == nil {
		t.Fatal("expected injected failure to surface")
	}
	// Never N-1 tasks removed: the unit either commits fully or not at all.
	if !reflect.DeepEqual(before, snapshot(store)) {
		t.Error("partial cascade observed after mid-transaction failure")
	}
}

type storeSnapshot struct {
	Projects []string
	Tasks    map[string]string
}

func snapshot(s *txProjectStore) storeSnapshot {
	snap := storeSnapshot{Tasks: make(map[string]string)}
	for id := range s.projects {
		snap.Projects = append(snap.Projects, id.String())
	}
	sort.Strings(snap.Projects)
	for taskID, projectID := range s.tasks {
		snap.Tasks[taskID.String()] = projectID.String()
	}
	return snap
}
