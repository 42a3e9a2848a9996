package bot

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/plantbot/internal/model"
)

// Callback payloads are colon-separated "action:args..." strings carrying
// stable plant/task IDs. Telegram caps callback data at 64 bytes, which the
// short minted IDs stay well inside.

type Action string

const (
	ActionToggleTask    Action = "task"
	ActionRefresh       Action = "refresh"
	ActionNoPlants      Action = "noplants"
	ActionAddCustomTask Action = "addtask"
	ActionSelectPlant   Action = "selplant"
	ActionCancelFlow    Action = "cancel"

	ActionManageRoot   Action = "mroot"
	ActionManagePlants Action = "mplants"
	ActionManageTasks  Action = "mtasks"
	ActionPlantMenu    Action = "pmenu"
	ActionTaskMenu     Action = "tmenu"

	ActionEditPlant      Action = "pedit"
	ActionEditTask       Action = "tedit"
	ActionEditPlantField Action = "pfield"
	ActionEditTaskField  Action = "tfield"

	ActionDeletePlant        Action = "pdel"
	ActionConfirmDeletePlant Action = "pdelok"
	ActionDeleteTask         Action = "tdel"
	ActionConfirmDeleteTask  Action = "tdelok"
)

type PayloadErrorCode string

const (
	ErrCodeEmptyPayload  PayloadErrorCode = "empty_payload"
	ErrCodeUnknownAction PayloadErrorCode = "unknown_action"
	ErrCodeBadArgument   PayloadErrorCode = "bad_argument"
)

type PayloadError struct {
	Code    PayloadErrorCode
	Message string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type Payload struct {
	Action     Action
	PlantID    string
	TaskID     string
	PlantField model.PlantField
	TaskField  model.TaskField
}

// Encode renders the payload in the shape ParsePayload expects.
func (p Payload) Encode() string {
	parts := []string{string(p.Action)}
	switch p.Action {
	case ActionToggleTask, ActionTaskMenu, ActionEditTask, ActionDeleteTask, ActionConfirmDeleteTask:
		parts = append(parts, p.PlantID, p.TaskID)
	case ActionSelectPlant, ActionPlantMenu, ActionEditPlant, ActionDeletePlant, ActionConfirmDeletePlant:
		parts = append(parts, p.PlantID)
	case ActionEditPlantField:
		parts = append(parts, p.PlantID, string(p.PlantField))
	case ActionEditTaskField:
		parts = append(parts, p.PlantID, p.TaskID, string(p.TaskField))
	}
	return strings.Join(parts, ":")
}

func ParsePayload(data string) (Payload, error) {
	raw := strings.TrimSpace(data)
	if raw == "" {
		return Payload{}, &PayloadError{Code: ErrCodeEmptyPayload, Message: "payload is empty"}
	}
	parts := strings.Split(raw, ":")
	action := Action(parts[0])
	args := parts[1:]

	switch action {
	case ActionRefresh, ActionNoPlants, ActionAddCustomTask, ActionCancelFlow,
		ActionManageRoot, ActionManagePlants, ActionManageTasks:
		if err := wantArgs(action, args, 0); err != nil {
			return Payload{}, err
		}
		return Payload{Action: action}, nil

	case ActionSelectPlant, ActionPlantMenu, ActionEditPlant, ActionDeletePlant, ActionConfirmDeletePlant:
		if err := wantArgs(action, args, 1); err != nil {
			return Payload{}, err
		}
		return Payload{Action: action, PlantID: args[0]}, nil

	case ActionToggleTask, ActionTaskMenu, ActionEditTask, ActionDeleteTask, ActionConfirmDeleteTask:
		if err := wantArgs(action, args, 2); err != nil {
			return Payload{}, err
		}
		return Payload{Action: action, PlantID: args[0], TaskID: args[1]}, nil

	case ActionEditPlantField:
		if err := wantArgs(action, args, 2); err != nil {
			return Payload{}, err
		}
		field := model.PlantField(args[1])
		if !field.IsValid() {
			return Payload{}, &PayloadError{Code: ErrCodeBadArgument, Message: fmt.Sprintf("unknown plant field: %s", args[1])}
		}
		return Payload{Action: action, PlantID: args[0], PlantField: field}, nil

	case ActionEditTaskField:
		if err := wantArgs(action, args, 3); err != nil {
			return Payload{}, err
		}
		field := model.TaskField(args[2])
		if !field.IsValid() {
			return Payload{}, &PayloadError{Code: ErrCodeBadArgument, Message: fmt.Sprintf("unknown task field: %s", args[2])}
		}
		return Payload{Action: action, PlantID: args[0], TaskID: args[1], TaskField: field}, nil

	default:
		return Payload{}, &PayloadError{Code: ErrCodeUnknownAction, Message: fmt.Sprintf("unsupported action: %s", parts[0])}
	}
}

func wantArgs(action Action, args []string, n int) error {
	if len(args) != n {
		return &PayloadError{Code: ErrCodeBadArgument, Message: fmt.Sprintf("%s expects %d args, got %d", action, n, len(args))}
	}
	for _, a := range args {
		if a == "" {
			return &PayloadError{Code: ErrCodeBadArgument, Message: fmt.Sprintf("%s has an empty argument", action)}
		}
	}
	return nil
}
