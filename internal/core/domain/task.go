package domain

import (
	"errors"
	"time"
)

// Filter partitions a task list by completion state. It affects display only,
// never storage.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps a raw query value to a Filter, defaulting to FilterAll for
// anything unrecognised.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterActive:
		return FilterActive
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

var ErrTaskNotFound = errors.New("task not found")
var ErrFieldsRequired = errors.New("both fields are required")

// Task is a single to-do item. OwnerID is set at creation and never changes;
// every read and write is scoped to it.
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	OwnerID     string
	CreatedAt   time.Time
}
