package services

import (
	"context"
	"sync"

	"github.com/taskboard/backend/internal/core/ports"
	"github.com/taskboard/backend/internal/domain"
	"github.com/taskboard/backend/internal/infrastructure/logger"
)

// dashboardService holds the dashboard's cached view of the today query.
// The snapshot is never patched in place: any successful completion marks
// it stale and the full query is re-issued against the store.
type dashboardService struct {
	tasks  ports.TaskService
	logger *logger.Logger

	mu       sync.Mutex
	snapshot []domain.Task
	fresh    bool
	gen      uint64
	inFlight map[string]struct{}

	subMu sync.Mutex
	subs  map[chan []domain.Task]struct{}
}

type DashboardServiceConfig struct {
	Tasks  ports.TaskService
	Logger *logger.Logger
}

func NewDashboardService(cfg DashboardServiceConfig) ports.DashboardService {
	return &dashboardService{
		tasks:    cfg.Tasks,
		logger:   cfg.Logger,
		inFlight: make(map[string]struct{}),
		subs:     make(map[chan []domain.Task]struct{}),
	}
}

// Today serves the cached snapshot when fresh, otherwise refetches it in
// full. A query failure surfaces as-is; no stale data is served in its place.
func (s *dashboardService) Today(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	if s.fresh {
		cached := make([]domain.Task, len(s.snapshot))
		copy(cached, s.snapshot)
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	tasks, _, err := s.refetch(ctx)
	return tasks, err
}

// refetch re-issues the today query. The result is installed as the fresh
// snapshot only if no invalidation landed while the query was running; a
// result that lost that race is still returned to the caller, but the
// snapshot stays stale so the next read hits the store again.
func (s *dashboardService) refetch(ctx context.Context) ([]domain.Task, bool, error) {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	tasks, err := s.tasks.TasksDueToday(ctx)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	installed := s.gen == gen
	if installed {
		s.snapshot = tasks
		s.fresh = true
	}
	s.mu.Unlock()

	result := make([]domain.Task, len(tasks))
	copy(result, tasks)
	return result, installed, nil
}

// Complete marks a task completed and refreshes the view. While a completion
// for a given task id is in flight, further attempts for the same id are
// rejected; this backs the disabled-control behavior on the dashboard.
func (s *dashboardService) Complete(ctx context.Context, taskID string) error {
	s.mu.Lock()
	if _, busy := s.inFlight[taskID]; busy {
		s.mu.Unlock()
		s.logger.Warnw("dashboard_complete_in_flight", "id", taskID)
		return ErrCompletionInFlight
	}
	s.inFlight[taskID] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, taskID)
		s.mu.Unlock()
	}()

	if err := s.tasks.CompleteTask(ctx, taskID); err != nil {
		return err
	}

	s.Invalidate()
	refreshed, installed, err := s.refetch(ctx)
	if err != nil {
		// The completion itself succeeded; the snapshot stays stale and the
		// next read re-issues the query.
		s.logger.Warnw("dashboard_refetch_failed", "id", taskID, "error", err)
		return nil
	}

	// When the refetch lost an invalidation race, a concurrent completion
	// invalidated again and its own refetch carries the newer list.
	if installed {
		s.broadcast(refreshed)
	}
	return nil
}

// Invalidate marks the snapshot stale so the next read hits the store. The
// generation bump disqualifies any query already in flight from installing
// its (pre-invalidation) result as fresh.
func (s *dashboardService) Invalidate() {
	s.mu.Lock()
	s.fresh = false
	s.gen++
	s.mu.Unlock()
}

// Subscribe registers a listener for refreshed task lists. The returned
// cancel func must be called when the listener goes away.
func (s *dashboardService) Subscribe() (<-chan []domain.Task, func()) {
	ch := make(chan []domain.Task, 1)

	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.subMu.Unlock()
	}
	return ch, cancel
}

func (s *dashboardService) broadcast(tasks []domain.Task) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for ch := range s.subs {
		select {
		case ch <- tasks:
		default:
			// Slow subscriber, skipped; pushes never block the mutation path.
		}
	}
}
