package taskgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sandeepkv93/plantbot/internal/model"
)

const (
	generateTimeout = 10 * time.Second

	defaultTitle       = "Untitled AI Task"
	defaultDescription = "No description provided."
)

// CompletionClient is the single blocking call to the text-generation API.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator builds a starter task list for a new plant. It never fails:
// any error from the completion API or from parsing its output yields the
// fixed fallback set instead. Either the full AI-derived list or the full
// fallback list is returned, never a mix.
type Generator struct {
	client CompletionClient
	log    *slog.Logger
}

func New(client CompletionClient, log *slog.Logger) *Generator {
	return &Generator{client: client, log: log}
}

func (g *Generator) GenerateTasks(ctx context.Context, plantName, plantAge string) []model.Task {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	content, err := g.client.Complete(ctx, buildPrompt(plantName, plantAge))
	if err != nil {
		g.log.Warn("task generation failed, using fallback tasks", "plant", plantName, "error", err)
		return FallbackTasks()
	}
	tasks, err := parseTasks(content)
	if err != nil {
		g.log.Warn("task generation returned unusable content, using fallback tasks", "plant", plantName, "error", err)
		return FallbackTasks()
	}
	return tasks
}

// FallbackTasks is the fixed set used whenever generation fails.
func FallbackTasks() []model.Task {
	return []model.Task{
		{Title: "Water", Description: "Check soil and water if needed", IntervalDays: 3},
		{Title: "Check leaves", Description: "Inspect for pests or disease", IntervalDays: 7},
	}
}

func buildPrompt(name, age string) string {
	return fmt.Sprintf(
		"Generate care tasks for a %s plant named %s in Lisbon. "+
			"Return only a JSON array of task objects with 'title', 'description', and 'interval_days' fields. "+
			`Example: [{"title": "Water", "description": "Check soil moisture and water if dry", "interval_days": 3}]`,
		age, name,
	)
}

type rawTask struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	IntervalDays *int    `json:"interval_days"`
}

// parseTasks extracts the first JSON array embedded in free-form model
// output and normalizes every record in it.
func parseTasks(content string) ([]model.Task, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, errors.New("taskgen: no JSON array found in response")
	}
	var raw []rawTask
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("taskgen: parse task array: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("taskgen: response contained an empty task array")
	}

	tasks := make([]model.Task, 0, len(raw))
	for _, r := range raw {
		t := model.Task{
			Title:        defaultTitle,
			Description:  defaultDescription,
			IntervalDays: model.DefaultIntervalDays,
		}
		if r.Title != nil && strings.TrimSpace(*r.Title) != "" {
			t.Title = strings.TrimSpace(*r.Title)
		}
		if r.Description != nil && strings.TrimSpace(*r.Description) != "" {
			t.Description = strings.TrimSpace(*r.Description)
		}
		if r.IntervalDays != nil && *r.IntervalDays > 0 {
			t.IntervalDays = *r.IntervalDays
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
