package presence

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/domain"
)

type recordingConn struct {
	mu      sync.Mutex
	events  []string
	sendErr error
	got     chan struct{}
}

func newRecordingConn(sendErr error) *recordingConn {
	return &recordingConn{sendErr: sendErr, got: make(chan struct{}, 8)}
}

func (c *recordingConn) Send(event string, payload interface{}) error {
	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()
	c.got <- struct{}{}
	return c.sendErr
}

func (c *recordingConn) eventCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestNotifyDeliversToLiveConnection(t *testing.T) {
	reg := NewRegistry()
	router := NewRouter(reg, zerolog.Nop())
	id := domain.NewIdentityID(uuid.New())
	conn := newRecordingConn(nil)
	reg.Register(id, conn)

	router.Notify(id, "new-task", map[string]string{"message": "you have a new task"})

	select {
	case <-conn.got:
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if len(conn.events) != 1 || conn.events[0] != "new-task" {
		t.Errorf("events = %v, want [new-task]", conn.events)
	}
}

func TestNotifyAbsentIdentityIsNoop(t *testing.T) {
	reg := NewRegistry()
	router := NewRouter(reg, zerolog.Nop())
	other := newRecordingConn(nil)
	reg.Register(domain.NewIdentityID(uuid.New()), other)

	router.Notify(domain.NewIdentityID(uuid.New()), "new-task", nil)

	select {
	case <-other.got:
		t.Fatal("event delivered to an unrelated connection")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifySwallowsDeliveryFailure(t *testing.T) {
	reg := NewRegistry()
	router := NewRouter(reg, zerolog.Nop())
	id := domain.NewIdentityID(uuid.New())
	conn := newRecordingConn(errors.New("transport broken"))
	reg.Register(id, conn)

	// Must return immediately and never panic or surface the error.
	router.Notify(id, "new-task", nil)

	select {
	case <-conn.got:
	case <-time.After(time.Second):
		t.Fatal("delivery was never attempted")
	}
	if conn.eventCount() != 1 {
		t.Errorf("attempts = %d, want 1 (no retry)", conn.eventCount())
	}
}
