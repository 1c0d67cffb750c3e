package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/core/ports"
	"github.com/taskboard/backend/internal/domain"
	"github.com/taskboard/backend/internal/infrastructure/logger"
)

// fakeRepo is an in-memory stand-in for the store implementing the same
// three primitive operations.
type fakeRepo struct {
	tasks     map[string]*domain.Task
	inserts   int
	insertErr error
	queryErr  error
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tasks: make(map[string]*domain.Task)}
}

func (r *fakeRepo) Insert(_ context.Context, task *domain.Task) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserts++
	task.ID = fmt.Sprintf("task-%d", r.inserts)
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeRepo) DueBetween(_ context.Context, start, end time.Time) ([]domain.Task, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	window := domain.DueWindow{Start: start, End: end}
	var result []domain.Task
	for _, task := range r.tasks {
		if window.Contains(task.DueAt) {
			result = append(result, *task)
		}
	}
	return result, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status domain.TaskStatus) (bool, error) {
	if r.updateErr != nil {
		return false, r.updateErr
	}
	task, ok := r.tasks[id]
	if !ok {
		return false, nil
	}
	task.Status = status
	return true, nil
}

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTaskService(repo ports.TaskRepository) ports.TaskService {
	return NewTaskService(TaskServiceConfig{
		Repository: repo,
		Logger:     logger.NewNop(),
		Clock:      fixedClock,
	})
}

func validInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		RelatedID: "app-123",
		TaskType:  "call",
		DueAt:     testNow.Add(time.Hour).Format(time.RFC3339),
	}
}

func TestValidateCreation_MissingFields(t *testing.T) {
	cases := map[string]ports.CreateTaskInput{
		"no related id": {TaskType: "call", DueAt: "2025-03-14T13:00:00Z"},
		"no task type":  {RelatedID: "app-123", DueAt: "2025-03-14T13:00:00Z"},
		"no due date":   {RelatedID: "app-123", TaskType: "call"},
		"all empty":     {},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateCreation(input, testNow)
			assert.ErrorIs(t, err, ErrTaskMissingFields)
		})
	}
}

func TestValidateCreation_InvalidType(t *testing.T) {
	input := validInput()
	input.TaskType = "meeting"

	_, err := ValidateCreation(input, testNow)
	assert.ErrorIs(t, err, ErrTaskInvalidType)
}

func TestValidateCreation_InvalidDueDate(t *testing.T) {
	cases := map[string]string{
		"unparseable":    "not-a-date",
		"date only":      "2025-03-15",
		"past":           testNow.Add(-time.Hour).Format(time.RFC3339),
		"same instant":   testNow.Format(time.RFC3339),
		"one second ago": testNow.Add(-time.Second).Format(time.RFC3339),
	}

	for name, dueAt := range cases {
		t.Run(name, func(t *testing.T) {
			input := validInput()
			input.DueAt = dueAt
			_, err := ValidateCreation(input, testNow)
			assert.ErrorIs(t, err, ErrTaskInvalidDueDate)
		})
	}
}

func TestValidateCreation_Draft(t *testing.T) {
	input := validInput()
	input.Title = "Intro call"

	draft, err := ValidateCreation(input, testNow)
	require.NoError(t, err)

	assert.Empty(t, draft.ID, "id is assigned by the store, not validation")
	assert.Equal(t, "app-123", draft.RelatedID)
	assert.Nil(t, draft.TenantID)
	assert.Equal(t, domain.TaskTypeCall, draft.Type)
	assert.Equal(t, domain.TaskStatusPending, draft.Status)
	assert.Equal(t, testNow.Add(time.Hour), draft.DueAt)
	assert.Equal(t, "Intro call", draft.Title)
}

func TestValidateCreation_NormalizesToUTC(t *testing.T) {
	input := validInput()
	// 15:00 at +02:00 is 13:00Z, one hour ahead of testNow.
	input.DueAt = "2025-03-14T15:00:00+02:00"

	draft, err := ValidateCreation(input, testNow)
	require.NoError(t, err)

	assert.Equal(t, time.UTC, draft.DueAt.Location())
	assert.Equal(t, time.Date(2025, 3, 14, 13, 0, 0, 0, time.UTC), draft.DueAt)
}

func TestCreateTask_InvalidInputWritesNothing(t *testing.T) {
	repo := newFakeRepo()
	svc := newTaskService(repo)

	input := validInput()
	input.TaskType = "fax"

	_, err := svc.CreateTask(context.Background(), input)
	assert.ErrorIs(t, err, ErrTaskInvalidType)
	assert.Zero(t, repo.inserts, "validation failure must not reach the store")
}

func TestCreateTask_Success(t *testing.T) {
	repo := newFakeRepo()
	svc := newTaskService(repo)

	task, err := svc.CreateTask(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, 1, repo.inserts)

	stored := repo.tasks[task.ID]
	require.NotNil(t, stored)
	assert.Equal(t, domain.TaskStatusPending, stored.Status)
	assert.Nil(t, stored.TenantID)
}

func TestCreateTask_StoreErrorSurfaces(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErr = errors.New("connection refused")
	svc := newTaskService(repo)

	_, err := svc.CreateTask(context.Background(), validInput())
	assert.EqualError(t, err, "connection refused")
}

func TestTasksDueToday_WindowAndStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := newTaskService(repo)
	ctx := context.Background()

	dueToday, err := svc.CreateTask(ctx, validInput())
	require.NoError(t, err)

	tomorrow := validInput()
	tomorrow.DueAt = testNow.AddDate(0, 0, 1).Format(time.RFC3339)
	_, err = svc.CreateTask(ctx, tomorrow)
	require.NoError(t, err)

	require.NoError(t, svc.CompleteTask(ctx, dueToday.ID))

	tasks, err := svc.TasksDueToday(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, dueToday.ID, tasks[0].ID)
	assert.Equal(t, domain.TaskStatusCompleted, tasks[0].Status, "completed tasks still show up")
}

func TestTasksDueToday_Empty(t *testing.T) {
	svc := newTaskService(newFakeRepo())

	tasks, err := svc.TasksDueToday(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTasksDueToday_QueryErrorSurfaces(t *testing.T) {
	repo := newFakeRepo()
	repo.queryErr = errors.New("store unreachable")
	svc := newTaskService(repo)

	_, err := svc.TasksDueToday(context.Background())
	assert.EqualError(t, err, "store unreachable")
}

func TestCompleteTask_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTaskService(repo)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.CompleteTask(ctx, task.ID))
	require.NoError(t, svc.CompleteTask(ctx, task.ID), "second completion still succeeds")

	stored := repo.tasks[task.ID]
	require.NotNil(t, stored)
	assert.Equal(t, domain.TaskStatusCompleted, stored.Status)
}

func TestCompleteTask_NotFound(t *testing.T) {
	svc := newTaskService(newFakeRepo())

	err := svc.CompleteTask(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
