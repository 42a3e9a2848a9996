package taskgen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/sandeepkv93/plantbot/internal/model"
)

type fakeClient struct {
	content string
	err     error
	block   bool
}

func (c *fakeClient) Complete(ctx context.Context, _ string) (string, error) {
	if c.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return c.content, c.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func expectFallback(t *testing.T, tasks []model.Task) {
	t.Helper()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 fallback tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "Water" || tasks[0].IntervalDays != 3 {
		t.Fatalf("unexpected first fallback task: %+v", tasks[0])
	}
	if tasks[1].Title != "Check leaves" || tasks[1].IntervalDays != 7 {
		t.Fatalf("unexpected second fallback task: %+v", tasks[1])
	}
	for _, task := range tasks {
		if task.DoneToday || task.LastDone != "" {
			t.Fatalf("expected fresh task, got: %+v", task)
		}
	}
}

func TestGenerateTasksParsesEmbeddedArray(t *testing.T) {
	client := &fakeClient{content: `Here are some tasks for your plant:
[{"title": "Water", "description": "Soak thoroughly", "interval_days": 4},
 {"title": "Rotate", "description": "Quarter turn for even light", "interval_days": 14}]
Happy growing!`}
	g := New(client, testLogger())

	tasks := g.GenerateTasks(context.Background(), "Monstera", "6 months")
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "Water" || tasks[0].IntervalDays != 4 {
		t.Fatalf("unexpected first task: %+v", tasks[0])
	}
	if tasks[1].Title != "Rotate" || tasks[1].Description != "Quarter turn for even light" {
		t.Fatalf("unexpected second task: %+v", tasks[1])
	}
}

func TestGenerateTasksFillsMissingFields(t *testing.T) {
	client := &fakeClient{content: `[{"description": "mist the leaves"}, {"title": "Feed", "interval_days": -2}]`}
	g := New(client, testLogger())

	tasks := g.GenerateTasks(context.Background(), "Fern", "1 year")
	if tasks[0].Title != "Untitled AI Task" {
		t.Fatalf("expected default title, got %q", tasks[0].Title)
	}
	if tasks[0].IntervalDays != model.DefaultIntervalDays {
		t.Fatalf("expected default interval, got %d", tasks[0].IntervalDays)
	}
	if tasks[1].Description != "No description provided." {
		t.Fatalf("expected default description, got %q", tasks[1].Description)
	}
	if tasks[1].IntervalDays != model.DefaultIntervalDays {
		t.Fatalf("expected non-positive interval replaced, got %d", tasks[1].IntervalDays)
	}
}

func TestGenerateTasksFallsBackOnFailure(t *testing.T) {
	cases := map[string]*fakeClient{
		"api error":     {err: errors.New("status 500")},
		"no array":      {content: "I cannot help with that."},
		"invalid json":  {content: `[{"title": }]`},
		"empty array":   {content: "[]"},
		"half an array": {content: "] broken ["},
	}
	for name, client := range cases {
		g := New(client, testLogger())
		tasks := g.GenerateTasks(context.Background(), "Monstera", "6 months")
		t.Run(name, func(t *testing.T) { expectFallback(t, tasks) })
	}
}

func TestGenerateTasksFallsBackOnTimeout(t *testing.T) {
	g := New(&fakeClient{block: true}, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	expectFallback(t, g.GenerateTasks(ctx, "Monstera", "6 months"))
}

func TestGenerateTasksNeverMixes(t *testing.T) {
	// A parse failure after a plausible prefix must not leak partial results.
	client := &fakeClient{content: `[{"title": "Water", "interval_days": 3}, {"title":`}
	g := New(client, testLogger())
	expectFallback(t, g.GenerateTasks(context.Background(), "Monstera", "6 months"))
}
