package session

import (
	"sync"

	"github.com/sandeepkv93/plantbot/internal/model"
)

type FlowKind string

const (
	FlowAddTask   FlowKind = "add_task"
	FlowEditPlant FlowKind = "edit_plant"
	FlowEditTask  FlowKind = "edit_task"
)

type Step string

const (
	StepSelectPlant Step = "select_plant"
	StepTitle       Step = "title"
	StepDescription Step = "description"
	StepInterval    Step = "interval"
	StepValue       Step = "value"
)

// State is the scratch area of one in-progress flow. It lives only in
// memory and is dropped wholesale on completion, cancellation or error.
type State struct {
	Flow       FlowKind
	Step       Step
	PlantID    string
	TaskID     string
	PlantField model.PlantField
	TaskField  model.TaskField
	Draft      model.Task
}

func NewAddTaskSelection() State {
	return State{Flow: FlowAddTask, Step: StepSelectPlant}
}

func NewAddTaskFlow(plantID string) State {
	return State{Flow: FlowAddTask, Step: StepTitle, PlantID: plantID}
}

func NewEditPlantFlow(plantID string, field model.PlantField) State {
	return State{Flow: FlowEditPlant, Step: StepValue, PlantID: plantID, PlantField: field}
}

func NewEditTaskFlow(plantID, taskID string, field model.TaskField) State {
	return State{Flow: FlowEditTask, Step: StepValue, PlantID: plantID, TaskID: taskID, TaskField: field}
}

// Manager holds at most one active flow per user. Beginning a new flow
// while another is in progress silently replaces it.
type Manager struct {
	mu     sync.Mutex
	active map[string]State
}

func NewManager() *Manager {
	return &Manager{active: make(map[string]State)}
}

func (m *Manager) Begin(userID string, s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[userID] = s
}

func (m *Manager) Get(userID string) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.active[userID]
	return s, ok
}

func (m *Manager) Update(userID string, s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[userID] = s
}

func (m *Manager) Clear(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, userID)
}
