package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sandeepkv93/plantbot/internal/session"
)

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		b.log.Debug("callback ack failed", "error", err)
	}

	p, err := ParsePayload(q.Data)
	if err != nil {
		b.log.Warn("unparsable callback payload", "data", q.Data, "error", err)
		b.edit(q, "❌ Unknown action.")
		return
	}
	uid := userID(q.From)

	switch p.Action {
	case ActionNoPlants:
		b.edit(q, "🌱 Use /add [plant_name] [age] to add your first plant!")

	case ActionRefresh:
		plants := b.repo.Plants(ctx, uid)
		b.editMenu(q, todayMessage(plants), taskKeyboard(plants))

	case ActionAddCustomTask:
		b.edit(q, "❌ Use /addtask command to add custom tasks.")

	case ActionToggleTask:
		if _, err := b.repo.ToggleTask(ctx, uid, p.PlantID, p.TaskID); err != nil {
			b.edit(q, "❌ Task not found.")
			return
		}
		plants := b.repo.Plants(ctx, uid)
		b.editMenu(q, todayMessage(plants), taskKeyboard(plants))

	case ActionSelectPlant:
		b.selectPlantForTask(ctx, uid, q, p.PlantID)

	case ActionCancelFlow:
		b.sessions.Clear(uid)
		b.edit(q, "❌ Operation cancelled.")

	case ActionManageRoot:
		b.editMenu(q, "⚙️ Management Menu\n\nWhat would you like to manage?", manageRootKeyboard())

	case ActionManagePlants:
		plants := b.repo.Plants(ctx, uid)
		b.editMenu(q, "🌱 Select a plant to manage:", managePlantsKeyboard(plants))

	case ActionManageTasks:
		plants := b.repo.Plants(ctx, uid)
		b.editMenu(q, "📋 Select a task to manage:", manageTasksKeyboard(plants))

	case ActionPlantMenu:
		plant, err := b.repo.FindPlant(ctx, uid, p.PlantID)
		if err != nil {
			b.edit(q, "❌ Plant not found.")
			return
		}
		b.editMenu(q, plantDetailMessage(plant), plantDetailKeyboard(plant))

	case ActionTaskMenu:
		plant, task, err := b.repo.FindTask(ctx, uid, p.PlantID, p.TaskID)
		if err != nil {
			b.edit(q, "❌ Task not found.")
			return
		}
		b.editMenu(q, taskDetailMessage(plant, task), taskDetailKeyboard(plant, task))

	case ActionEditPlant:
		plant, err := b.repo.FindPlant(ctx, uid, p.PlantID)
		if err != nil {
			b.edit(q, "❌ Plant not found.")
			return
		}
		b.editMenu(q, "✏️ What would you like to edit?", editPlantFieldKeyboard(plant))

	case ActionEditTask:
		plant, task, err := b.repo.FindTask(ctx, uid, p.PlantID, p.TaskID)
		if err != nil {
			b.edit(q, "❌ Task not found.")
			return
		}
		b.editMenu(q, "✏️ What would you like to edit?", editTaskFieldKeyboard(plant, task))

	case ActionEditPlantField:
		b.sessions.Begin(uid, session.NewEditPlantFlow(p.PlantID, p.PlantField))
		b.edit(q, editFieldPrompt(p.PlantField, ""))

	case ActionEditTaskField:
		b.sessions.Begin(uid, session.NewEditTaskFlow(p.PlantID, p.TaskID, p.TaskField))
		b.edit(q, editFieldPrompt("", p.TaskField))

	case ActionDeletePlant:
		plant, err := b.repo.FindPlant(ctx, uid, p.PlantID)
		if err != nil {
			b.edit(q, "❌ Plant not found.")
			return
		}
		b.editMenu(q, fmt.Sprintf("🗑️ Are you sure you want to delete '%s' and all its tasks?", plant.Name),
			confirmDeletePlantKeyboard(plant))

	case ActionConfirmDeletePlant:
		name, err := b.repo.DeletePlant(ctx, uid, p.PlantID)
		if err != nil {
			b.edit(q, "❌ Plant not found.")
			return
		}
		b.edit(q, fmt.Sprintf("✅ Plant '%s' deleted successfully!", name))

	case ActionDeleteTask:
		plant, task, err := b.repo.FindTask(ctx, uid, p.PlantID, p.TaskID)
		if err != nil {
			b.edit(q, "❌ Task not found.")
			return
		}
		b.editMenu(q, fmt.Sprintf("🗑️ Are you sure you want to delete task '%s'?", task.Title),
			confirmDeleteTaskKeyboard(plant, task))

	case ActionConfirmDeleteTask:
		title, err := b.repo.DeleteTask(ctx, uid, p.PlantID, p.TaskID)
		if err != nil {
			b.edit(q, "❌ Task not found.")
			return
		}
		b.edit(q, fmt.Sprintf("✅ Task '%s' deleted successfully!", title))
	}
}

// selectPlantForTask resolves the plant-selection step of the add-task
// flow. A press on a stale selection menu simply starts the flow fresh.
func (b *Bot) selectPlantForTask(ctx context.Context, uid string, q *tgbotapi.CallbackQuery, plantID string) {
	plant, err := b.repo.FindPlant(ctx, uid, plantID)
	if err != nil {
		b.sessions.Clear(uid)
		b.edit(q, "❌ Plant not found.")
		return
	}
	if state, ok := b.sessions.Get(uid); ok && state.Flow == session.FlowAddTask && state.Step == session.StepSelectPlant {
		b.sessions.Update(uid, state.WithPlantChosen(plant.ID))
	} else {
		b.sessions.Begin(uid, session.NewAddTaskFlow(plant.ID))
	}
	b.edit(q, fmt.Sprintf("📝 Adding task to %s\n\nEnter the task title:", plant.Name))
}
