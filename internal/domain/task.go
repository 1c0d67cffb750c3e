package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ==================== ENUMS ====================

type TaskType string

const (
	TaskTypeCall   TaskType = "call"
	TaskTypeEmail  TaskType = "email"
	TaskTypeReview TaskType = "review"
)

// ValidTaskType reports whether t is one of the accepted task types.
func ValidTaskType(t string) bool {
	switch TaskType(t) {
	case TaskTypeCall, TaskTypeEmail, TaskTypeReview:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// ==================== ENTITIES ====================

// Task is a due-dated follow-up item attached to an external application
// record. TenantID is a reserved column and stays null for now.
type Task struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RelatedID string     `gorm:"size:255;not null;index" json:"related_id"`
	TenantID  *string    `gorm:"size:36" json:"tenant_id"`
	Type      TaskType   `gorm:"size:20;not null" json:"type"`
	Status    TaskStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	DueAt     time.Time  `gorm:"not null;index" json:"due_at"`
	Title     string     `gorm:"size:255" json:"title,omitempty"`
}

// BeforeCreate assigns the store-generated identifier.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// DisplayTitle is the dashboard label: the title when set, otherwise the type.
func (t *Task) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return string(t.Type)
}

// DueWindow is the inclusive UTC calendar-day interval used to select
// tasks due "today".
type DueWindow struct {
	Start time.Time
	End   time.Time
}

// DueWindowFor computes the [00:00:00Z, 23:59:59Z] window of now's UTC date.
func DueWindowFor(now time.Time) DueWindow {
	y, m, d := now.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return DueWindow{
		Start: start,
		End:   start.Add(23*time.Hour + 59*time.Minute + 59*time.Second),
	}
}

// Contains reports whether ts falls within the window, bounds included.
func (w DueWindow) Contains(ts time.Time) bool {
	ts = ts.UTC()
	return !ts.Before(w.Start) && !ts.After(w.End)
}
