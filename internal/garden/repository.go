package garden

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sandeepkv93/plantbot/internal/model"
	"github.com/sandeepkv93/plantbot/internal/storage"
)

var (
	ErrDuplicatePlant = errors.New("garden: plant already exists")
	ErrPlantNotFound  = errors.New("garden: plant not found")
	ErrTaskNotFound   = errors.New("garden: task not found")
)

// Generator is what the repository needs from the task generation service.
type Generator interface {
	GenerateTasks(ctx context.Context, plantName, plantAge string) []model.Task
}

// Repository performs every mutation of the persisted document as one
// load-mutate-save cycle. Success is defined by the in-memory mutation; a
// dropped save is absorbed by the store and not reported here.
type Repository struct {
	store *storage.DocumentStore
	gen   Generator
	now   func() time.Time
}

func NewRepository(store *storage.DocumentStore, gen Generator) *Repository {
	return &Repository{store: store, gen: gen, now: time.Now}
}

// AddPlant creates a plant with a generated starter task list. The name
// must not collide case-insensitively with an existing plant of the user.
func (r *Repository) AddPlant(ctx context.Context, userID, name, age string) (model.Plant, error) {
	doc := r.store.Load(ctx)
	rec := doc.User(userID)
	for _, p := range rec.Plants {
		if p.NameEquals(name) {
			return model.Plant{}, fmt.Errorf("%w: %s", ErrDuplicatePlant, p.Name)
		}
	}

	tasks := r.gen.GenerateTasks(ctx, name, age)
	for i := range tasks {
		tasks[i].ID = rec.MintTaskID()
	}
	plant := model.Plant{
		ID:    rec.MintPlantID(),
		Name:  name,
		Age:   age,
		Added: r.now().UTC().Format(model.AddedTimeLayout),
		Tasks: tasks,
	}
	rec.Plants = append(rec.Plants, plant)
	r.store.Save(ctx, doc)
	return plant, nil
}

func (r *Repository) AppendTask(ctx context.Context, userID, plantID string, draft model.Task) (model.Plant, model.Task, error) {
	doc := r.store.Load(ctx)
	rec := doc.User(userID)
	p := rec.Plant(plantID)
	if p == nil {
		return model.Plant{}, model.Task{}, ErrPlantNotFound
	}
	draft.ID = rec.MintTaskID()
	draft.DoneToday = false
	draft.LastDone = ""
	p.Tasks = append(p.Tasks, draft)
	r.store.Save(ctx, doc)
	return *p, draft, nil
}

// ToggleTask flips the task's done-today flag. LastDone is stamped only on
// the false-to-true transition and kept on the way back.
func (r *Repository) ToggleTask(ctx context.Context, userID, plantID, taskID string) (model.Task, error) {
	doc := r.store.Load(ctx)
	rec := doc.User(userID)
	p := rec.Plant(plantID)
	if p == nil {
		return model.Task{}, ErrPlantNotFound
	}
	i := p.TaskIndex(taskID)
	if i < 0 {
		return model.Task{}, ErrTaskNotFound
	}
	t := &p.Tasks[i]
	t.DoneToday = !t.DoneToday
	if t.DoneToday {
		t.LastDone = r.now().UTC().Format(model.DoneDateLayout)
	}
	r.store.Save(ctx, doc)
	return *t, nil
}

// SetPlantField overwrites one plant field and returns the old value for
// confirmation messaging.
func (r *Repository) SetPlantField(ctx context.Context, userID, plantID string, field model.PlantField, value string) (string, error) {
	if !field.IsValid() {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidPlantField, field)
	}
	doc := r.store.Load(ctx)
	rec := doc.User(userID)
	p := rec.Plant(plantID)
	if p == nil {
		return "", ErrPlantNotFound
	}
	var old string
	switch field {
	case model.PlantFieldName:
		old, p.Name = p.Name, value
	case model.PlantFieldAge:
		old, p.Age = p.Age, value
	}
	r.store.Save(ctx, doc)
	return old, nil
}

// SetTaskField overwrites one task field and returns the old value.
// Interval values are validated before anything is touched.
func (r *Repository) SetTaskField(ctx context.Context, userID, plantID, taskID string, field model.TaskField, value string) (string, error) {
	if !field.IsValid() {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidTaskField, field)
	}
	var interval int
	if field == model.TaskFieldInterval {
		var err error
		if interval, err = model.ParseInterval(value); err != nil {
			return "", err
		}
	}

	doc := r.store.Load(ctx)
	rec := doc.User(userID)
	p := rec.Plant(plantID)
	if p == nil {
		return "", ErrPlantNotFound
	}
	i := p.TaskIndex(taskID)
	if i < 0 {
		return "", ErrTaskNotFound
	}
	t := &p.Tasks[i]
	var old string
	switch field {
	case model.TaskFieldTitle:
		old, t.Title = t.Title, value
	case model.TaskFieldDescription:
		old, t.Description = t.Description, value
	case model.TaskFieldInterval:
		old = strconv.Itoa(t.IntervalDays)
		t.IntervalDays = interval
	}
	r.store.Save(ctx, doc)
	return old, nil
}

// DeletePlant removes the plant and all its tasks, returning the name.
// Later plants shift down in display order.
func (r *Repository) DeletePlant(ctx context.Context, userID, plantID string) (string, error) {
	doc := r.store.Load(ctx)
	rec := doc.User(userID)
	i := rec.PlantIndex(plantID)
	if i < 0 {
		return "", ErrPlantNotFound
	}
	name := rec.Plants[i].Name
	rec.Plants = append(rec.Plants[:i], rec.Plants[i+1:]...)
	r.store.Save(ctx, doc)
	return name, nil
}

// DeleteTask removes one task, returning its title.
func (r *Repository) DeleteTask(ctx context.Context, userID, plantID, taskID string) (string, error) {
	doc := r.store.Load(ctx)
	rec := doc.User(userID)
	p := rec.Plant(plantID)
	if p == nil {
		return "", ErrPlantNotFound
	}
	i := p.TaskIndex(taskID)
	if i < 0 {
		return "", ErrTaskNotFound
	}
	title := p.Tasks[i].Title
	p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
	r.store.Save(ctx, doc)
	return title, nil
}

// Plants returns the user's plants in display order.
func (r *Repository) Plants(ctx context.Context, userID string) []model.Plant {
	doc := r.store.Load(ctx)
	if rec, ok := doc[userID]; ok && rec != nil {
		return rec.Plants
	}
	return nil
}

func (r *Repository) FindPlant(ctx context.Context, userID, plantID string) (model.Plant, error) {
	doc := r.store.Load(ctx)
	if rec, ok := doc[userID]; ok && rec != nil {
		if p := rec.Plant(plantID); p != nil {
			return *p, nil
		}
	}
	return model.Plant{}, ErrPlantNotFound
}

func (r *Repository) FindTask(ctx context.Context, userID, plantID, taskID string) (model.Plant, model.Task, error) {
	p, err := r.FindPlant(ctx, userID, plantID)
	if err != nil {
		return model.Plant{}, model.Task{}, err
	}
	i := p.TaskIndex(taskID)
	if i < 0 {
		return model.Plant{}, model.Task{}, ErrTaskNotFound
	}
	return p, p.Tasks[i], nil
}
