package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sandeepkv93/plantbot/internal/garden"
	"github.com/sandeepkv93/plantbot/internal/session"
)

func userID(from *tgbotapi.User) string {
	return strconv.FormatInt(from.ID, 10)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	uid := userID(msg.From)
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.reply(chatID, helpText)

	case "add":
		b.handleAddCommand(ctx, uid, chatID, msg.CommandArguments())

	case "today":
		plants := b.repo.Plants(ctx, uid)
		if len(plants) == 0 {
			b.reply(chatID, noPlantsText)
			return
		}
		b.replyMenu(chatID, todayMessage(plants), taskKeyboard(plants))

	case "addtask":
		b.startAddTaskFlow(ctx, uid, chatID)

	case "plants":
		plants := b.repo.Plants(ctx, uid)
		if len(plants) == 0 {
			b.reply(chatID, noPlantsText)
			return
		}
		b.reply(chatID, plantListMessage(plants))

	case "manage":
		plants := b.repo.Plants(ctx, uid)
		if len(plants) == 0 {
			b.reply(chatID, "🌱 No plants to manage. Add a plant first with /add")
			return
		}
		b.replyMenu(chatID, "⚙️ Management Menu\n\nWhat would you like to manage?", manageRootKeyboard())

	case "cancel":
		b.sessions.Clear(uid)
		b.reply(chatID, "❌ Operation cancelled.")

	default:
		b.log.Debug("ignoring unknown command", "command", msg.Command(), "user", uid)
	}
}

func (b *Bot) handleAddCommand(ctx context.Context, uid string, chatID int64, rawArgs string) {
	args := strings.Fields(rawArgs)
	if len(args) < 2 {
		b.reply(chatID, "Usage: /add [plant_name] [age]\nExample: /add Monstera 6months")
		return
	}
	name := args[0]
	age := strings.Join(args[1:], " ")

	b.reply(chatID, "🤖 Generating care tasks...")
	plant, err := b.repo.AddPlant(ctx, uid, name, age)
	if err != nil {
		if errors.Is(err, garden.ErrDuplicatePlant) {
			b.reply(chatID, fmt.Sprintf("❌ Plant '%s' already exists!", name))
			return
		}
		b.log.Error("add plant failed", "user", uid, "error", err)
		b.reply(chatID, "❌ Could not add the plant. Please try again.")
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ %s added successfully with %d care tasks!", plant.Name, len(plant.Tasks)))
}

func (b *Bot) startAddTaskFlow(ctx context.Context, uid string, chatID int64) {
	plants := b.repo.Plants(ctx, uid)
	switch len(plants) {
	case 0:
		b.reply(chatID, "❌ No plants found. Add a plant first with /add")
	case 1:
		b.sessions.Begin(uid, session.NewAddTaskFlow(plants[0].ID))
		b.reply(chatID, fmt.Sprintf("📝 Adding task to %s\n\nEnter the task title:", plants[0].Name))
	default:
		b.sessions.Begin(uid, session.NewAddTaskSelection())
		b.replyMenu(chatID, "🌱 Select plant for the new task:", plantSelectionKeyboard(plants))
	}
}

// handleText feeds a free-text reply into the user's active flow.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	uid := userID(msg.From)
	chatID := msg.Chat.ID

	state, ok := b.sessions.Get(uid)
	if !ok {
		b.log.Debug("text outside any flow ignored", "user", uid)
		return
	}

	next, eff := state.HandleText(msg.Text)
	switch {
	case eff.Reject != "":
		b.reply(chatID, eff.Reject)
	case eff.Ask != "":
		b.sessions.Update(uid, next)
		b.reply(chatID, eff.Ask)
	case eff.Terminal():
		b.finishFlow(ctx, uid, chatID, eff)
	}
}

func (b *Bot) finishFlow(ctx context.Context, uid string, chatID int64, eff session.Effect) {
	defer b.sessions.Clear(uid)

	switch {
	case eff.AppendTask != nil:
		plant, task, err := b.repo.AppendTask(ctx, uid, eff.AppendTask.PlantID, eff.AppendTask.Draft)
		if err != nil {
			b.reply(chatID, "❌ Plant not found.")
			return
		}
		b.reply(chatID, fmt.Sprintf("✅ Task '%s' added to %s!", task.Title, plant.Name))

	case eff.SetPlantField != nil:
		e := eff.SetPlantField
		old, err := b.repo.SetPlantField(ctx, uid, e.PlantID, e.Field, e.Value)
		if err != nil {
			b.reply(chatID, "❌ Plant not found.")
			return
		}
		b.reply(chatID, fmt.Sprintf("✅ Plant %s updated from '%s' to '%s'", e.Field, old, e.Value))

	case eff.SetTaskField != nil:
		e := eff.SetTaskField
		old, err := b.repo.SetTaskField(ctx, uid, e.PlantID, e.TaskID, e.Field, e.Value)
		if err != nil {
			b.reply(chatID, "❌ Task not found.")
			return
		}
		b.reply(chatID, fmt.Sprintf("✅ Task %s updated from '%s' to '%s'", e.Field, old, e.Value))
	}
}
