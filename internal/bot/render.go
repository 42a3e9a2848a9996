package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sandeepkv93/plantbot/internal/model"
)

const helpText = `🌱 Welcome to Plant Care Bot!

Commands:
/add [plant_name] [age] - Add a new plant
/today - View and manage today's tasks
/addtask - Add a custom task
/plants - View all your plants
/manage - Manage plants and tasks (edit/delete)`

const noPlantsText = "🌱 No plants yet! Use /add [plant_name] [age] to add your first plant."

func todayMessage(plants []model.Plant) string {
	total, done := 0, 0
	for _, p := range plants {
		total += len(p.Tasks)
		done += p.DoneCount()
	}
	return fmt.Sprintf("📋 Today's Plant Care (%d/%d completed)\n\nTap tasks to mark as done/undone:", done, total)
}

func taskKeyboard(plants []model.Plant) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if len(plants) == 0 {
		rows = append(rows, row("No plants yet - use /add", Payload{Action: ActionNoPlants}))
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	for _, p := range plants {
		for _, t := range p.Tasks {
			glyph := "⭕"
			if t.DoneToday {
				glyph = "✅"
			}
			label := fmt.Sprintf("%s %s: %s", glyph, p.Name, t.Title)
			rows = append(rows, row(label, Payload{Action: ActionToggleTask, PlantID: p.ID, TaskID: t.ID}))
		}
	}
	rows = append(rows, row("➕ Add Custom Task", Payload{Action: ActionAddCustomTask}))
	rows = append(rows, row("🔄 Refresh", Payload{Action: ActionRefresh}))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func plantListMessage(plants []model.Plant) string {
	var b strings.Builder
	b.WriteString("🌿 Your Plants:\n\n")
	for i, p := range plants {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, p.Name, p.Age)
		fmt.Fprintf(&b, "   Tasks: %d/%d completed today\n", p.DoneCount(), len(p.Tasks))
		fmt.Fprintf(&b, "   Added: %s\n\n", p.Added)
	}
	return b.String()
}

func plantSelectionKeyboard(plants []model.Plant) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range plants {
		rows = append(rows, row("🌱 "+p.Name, Payload{Action: ActionSelectPlant, PlantID: p.ID}))
	}
	rows = append(rows, row("❌ Cancel", Payload{Action: ActionCancelFlow}))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func manageRootKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row("🌱 Manage Plants", Payload{Action: ActionManagePlants}),
		row("📋 Manage Tasks", Payload{Action: ActionManageTasks}),
	)
}

func managePlantsKeyboard(plants []model.Plant) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range plants {
		label := fmt.Sprintf("🌱 %s (%d tasks)", p.Name, len(p.Tasks))
		rows = append(rows, row(label, Payload{Action: ActionPlantMenu, PlantID: p.ID}))
	}
	rows = append(rows, row("🔙 Back", Payload{Action: ActionManageRoot}))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func manageTasksKeyboard(plants []model.Plant) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range plants {
		for _, t := range p.Tasks {
			label := fmt.Sprintf("📋 %s: %s", p.Name, t.Title)
			rows = append(rows, row(label, Payload{Action: ActionTaskMenu, PlantID: p.ID, TaskID: t.ID}))
		}
	}
	rows = append(rows, row("🔙 Back", Payload{Action: ActionManageRoot}))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func plantDetailMessage(p model.Plant) string {
	return fmt.Sprintf("🌱 Managing: %s\nAge: %s\nTasks: %d\nAdded: %s",
		p.Name, p.Age, len(p.Tasks), p.Added)
}

func plantDetailKeyboard(p model.Plant) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row("✏️ Edit Plant", Payload{Action: ActionEditPlant, PlantID: p.ID}),
		row("🗑️ Delete Plant", Payload{Action: ActionDeletePlant, PlantID: p.ID}),
		row("🔙 Back to Plants", Payload{Action: ActionManagePlants}),
	)
}

func taskDetailMessage(p model.Plant, t model.Task) string {
	lastDone := t.LastDone
	if lastDone == "" {
		lastDone = "Never"
	}
	return fmt.Sprintf("📋 Managing Task: %s\nPlant: %s\nDescription: %s\nInterval: Every %d days\nLast done: %s",
		t.Title, p.Name, t.Description, t.IntervalDays, lastDone)
}

func taskDetailKeyboard(p model.Plant, t model.Task) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row("✏️ Edit Task", Payload{Action: ActionEditTask, PlantID: p.ID, TaskID: t.ID}),
		row("🗑️ Delete Task", Payload{Action: ActionDeleteTask, PlantID: p.ID, TaskID: t.ID}),
		row("🔙 Back to Tasks", Payload{Action: ActionManageTasks}),
	)
}

func editPlantFieldKeyboard(p model.Plant) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row("📝 Name", Payload{Action: ActionEditPlantField, PlantID: p.ID, PlantField: model.PlantFieldName}),
		row("🎂 Age", Payload{Action: ActionEditPlantField, PlantID: p.ID, PlantField: model.PlantFieldAge}),
		row("❌ Cancel", Payload{Action: ActionPlantMenu, PlantID: p.ID}),
	)
}

func editTaskFieldKeyboard(p model.Plant, t model.Task) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row("📝 Title", Payload{Action: ActionEditTaskField, PlantID: p.ID, TaskID: t.ID, TaskField: model.TaskFieldTitle}),
		row("📄 Description", Payload{Action: ActionEditTaskField, PlantID: p.ID, TaskID: t.ID, TaskField: model.TaskFieldDescription}),
		row("⏰ Interval", Payload{Action: ActionEditTaskField, PlantID: p.ID, TaskID: t.ID, TaskField: model.TaskFieldInterval}),
		row("❌ Cancel", Payload{Action: ActionTaskMenu, PlantID: p.ID, TaskID: t.ID}),
	)
}

func confirmDeletePlantKeyboard(p model.Plant) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row("✅ Yes, Delete", Payload{Action: ActionConfirmDeletePlant, PlantID: p.ID}),
		row("❌ Cancel", Payload{Action: ActionPlantMenu, PlantID: p.ID}),
	)
}

func confirmDeleteTaskKeyboard(p model.Plant, t model.Task) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row("✅ Yes, Delete", Payload{Action: ActionConfirmDeleteTask, PlantID: p.ID, TaskID: t.ID}),
		row("❌ Cancel", Payload{Action: ActionTaskMenu, PlantID: p.ID, TaskID: t.ID}),
	)
}

func editFieldPrompt(plantField model.PlantField, taskField model.TaskField) string {
	switch {
	case plantField == model.PlantFieldName:
		return "📝 Enter new plant name:"
	case plantField == model.PlantFieldAge:
		return "🎂 Enter new plant age:"
	case taskField == model.TaskFieldTitle:
		return "📝 Enter new task title:"
	case taskField == model.TaskFieldDescription:
		return "📄 Enter new task description:"
	case taskField == model.TaskFieldInterval:
		return "⏰ Enter new interval in days:"
	}
	return "✏️ Enter the new value:"
}

func row(label string, p Payload) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, p.Encode()))
}
