package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidInterval   = errors.New("model: interval must be a positive integer")
	ErrInvalidTaskField  = errors.New("model: invalid task field")
	ErrInvalidPlantField = errors.New("model: invalid plant field")
)

const (
	// AddedTimeLayout is the format of Plant.Added timestamps.
	AddedTimeLayout = "2006-01-02 15:04:05"
	// DoneDateLayout is the format of Task.LastDone dates.
	DoneDateLayout = "2006-01-02"

	DefaultIntervalDays = 7
)

type TaskField string

const (
	TaskFieldTitle       TaskField = "title"
	TaskFieldDescription TaskField = "description"
	TaskFieldInterval    TaskField = "interval_days"
)

func (f TaskField) IsValid() bool {
	switch f {
	case TaskFieldTitle, TaskFieldDescription, TaskFieldInterval:
		return true
	default:
		return false
	}
}

type PlantField string

const (
	PlantFieldName PlantField = "name"
	PlantFieldAge  PlantField = "age"
)

func (f PlantField) IsValid() bool {
	switch f {
	case PlantFieldName, PlantFieldAge:
		return true
	default:
		return false
	}
}

// Task is one recurring care action for a plant. DoneToday is a plain
// toggle with no timed reset; LastDone is stamped only when the toggle
// goes from false to true and is never cleared.
type Task struct {
	ID           string `json:"id,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	IntervalDays int    `json:"interval_days"`
	DoneToday    bool   `json:"done_today"`
	LastDone     string `json:"last_done,omitempty"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if t.IntervalDays <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, t.IntervalDays)
	}
	return nil
}

// ParseInterval parses user-entered text as a repetition interval in days.
func ParseInterval(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, text)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidInterval, n)
	}
	return n, nil
}
