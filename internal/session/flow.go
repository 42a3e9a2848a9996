package session

import (
	"strings"

	"github.com/sandeepkv93/plantbot/internal/model"
)

// Effect is what the dispatch layer must do after a transition. Ask and
// Reject keep the flow alive; exactly one of the remaining members is set
// when the flow reached its terminal step.
type Effect struct {
	Ask    string // prompt for the next step
	Reject string // validation notice, step unchanged

	AppendTask    *AppendTaskEffect
	SetPlantField *SetPlantFieldEffect
	SetTaskField  *SetTaskFieldEffect
}

type AppendTaskEffect struct {
	PlantID string
	Draft   model.Task
}

type SetPlantFieldEffect struct {
	PlantID string
	Field   model.PlantField
	Value   string
}

type SetTaskFieldEffect struct {
	PlantID string
	TaskID  string
	Field   model.TaskField
	Value   string
}

// Terminal reports whether the flow is finished and its state should be
// cleared after the effect is executed.
func (e Effect) Terminal() bool {
	return e.AppendTask != nil || e.SetPlantField != nil || e.SetTaskField != nil
}

// WithPlantChosen resolves the plant-selection step of the add-task flow.
func (s State) WithPlantChosen(plantID string) State {
	s.PlantID = plantID
	s.Step = StepTitle
	return s
}

// HandleText advances the flow on a free-text reply. The returned state
// replaces the stored one unless the effect is terminal.
func (s State) HandleText(text string) (State, Effect) {
	text = strings.TrimSpace(text)

	switch s.Flow {
	case FlowAddTask:
		return s.handleAddTaskText(text)
	case FlowEditPlant:
		if s.Step == StepValue {
			return s, Effect{SetPlantField: &SetPlantFieldEffect{
				PlantID: s.PlantID, Field: s.PlantField, Value: text,
			}}
		}
	case FlowEditTask:
		if s.Step == StepValue {
			if s.TaskField == model.TaskFieldInterval {
				if _, err := model.ParseInterval(text); err != nil {
					return s, Effect{Reject: "❌ Please enter a valid positive number."}
				}
			}
			return s, Effect{SetTaskField: &SetTaskFieldEffect{
				PlantID: s.PlantID, TaskID: s.TaskID, Field: s.TaskField, Value: text,
			}}
		}
	}
	return s, Effect{Reject: "❌ Unexpected input. Use /cancel to abort."}
}

func (s State) handleAddTaskText(text string) (State, Effect) {
	switch s.Step {
	case StepSelectPlant:
		return s, Effect{Reject: "🌱 Use the buttons to pick a plant, or /cancel to abort."}
	case StepTitle:
		s.Draft.Title = text
		s.Step = StepDescription
		return s, Effect{Ask: "📄 Enter task description:"}
	case StepDescription:
		s.Draft.Description = text
		s.Step = StepInterval
		return s, Effect{Ask: "⏰ Enter interval in days (e.g., 3 for every 3 days):"}
	case StepInterval:
		n, err := model.ParseInterval(text)
		if err != nil {
			return s, Effect{Reject: "❌ Please enter a valid positive number for days."}
		}
		s.Draft.IntervalDays = n
		return s, Effect{AppendTask: &AppendTaskEffect{PlantID: s.PlantID, Draft: s.Draft}}
	}
	return s, Effect{Reject: "❌ Unexpected input. Use /cancel to abort."}
}
