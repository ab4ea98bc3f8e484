package task

import (
	"context"
	"time"

	"github.com/yusuufashraaf/TMS-backend/internal/application/ports"
)

// Stats computes the dashboard aggregates: totals, per-status counts,
// overdue count, created-this-month, and counts per priority.
type Stats struct {
	tasks ports.TaskRepository
}

func NewStats(tasks ports.TaskRepository) *Stats {
	return &Stats{tasks: tasks}
}

func (uc *Stats) Execute(ctx context.Context) (*ports.TaskStats, error) {
	return uc.tasks.Stats(ctx, time.Now())
}
