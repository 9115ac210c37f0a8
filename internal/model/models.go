// Package model defines the persisted documents of the tracker.
package model

import "time"

// Stat is one of the five core attributes.
// Thresholds are non-decreasing and start at 0; RankLabels names each level.
type Stat struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Value      int      `json:"value"`
	Icon       string   `json:"icon"`
	RankLabels []string `json:"ranks"`
	Thresholds []int    `json:"thresholds"`
}

// Effect is a signed stat delta carried by an action template.
type Effect struct {
	StatID string `json:"statId"`
	Value  int    `json:"value"`
}

// Action is a user-managed template of stat effects.
type Action struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Icon    string   `json:"icon"`
	Effects []Effect `json:"effects"`
}

// CoopCategory classifies a relationship.
type CoopCategory string

const (
	CoopFamily CoopCategory = "family"
	CoopFriend CoopCategory = "friend"
	CoopWork   CoopCategory = "work"
	CoopOther  CoopCategory = "other"
)

// IsValid reports whether c is one of the known categories.
func (c CoopCategory) IsValid() bool {
	switch c {
	case CoopFamily, CoopFriend, CoopWork, CoopOther:
		return true
	default:
		return false
	}
}

// CoopLog is one applied interaction, newest first in Coop.Logs.
type CoopLog struct {
	ActionID   string    `json:"actionId"`
	ActionName string    `json:"actionName"`
	Points     int       `json:"points"`
	Timestamp  time.Time `json:"timestamp"`
}

// Coop is a tracked relationship.
type Coop struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Category  CoopCategory `json:"category"`
	Points    int          `json:"points"`
	Note      string       `json:"note"`
	Logs      []CoopLog    `json:"logs"`
	CreatedAt time.Time    `json:"createdAt"`
}

// MementoStatus is the lifecycle of an idea.
type MementoStatus string

const (
	MementoActive    MementoStatus = "active"
	MementoConverted MementoStatus = "converted"
	// MementoArchived is reserved; nothing sets it yet.
	MementoArchived MementoStatus = "archived"
)

// Memento depth bounds.
const (
	MinMementoDepth = 1
	MaxMementoDepth = 3
)

// Memento is a free-form note that matures through depth levels.
type Memento struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Tags      []string      `json:"tags"`
	Depth     int           `json:"depth"`
	Status    MementoStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Todo is a task scoped to a calendar date string (YYYY-MM-DD).
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings holds user preferences.
type Settings struct {
	DarkMode bool `json:"darkMode"`
}

// DateLayout is the format of Todo.Date.
const DateLayout = "2006-01-02"
