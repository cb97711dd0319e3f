// Package bot implements the Telegram conversation layer: command routing
// and the linear prompt sequences for registration and student management.
// All record and registry semantics live below, in service and registry.
package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tutorhub/sheets-bot/internal/registry"
	"github.com/tutorhub/sheets-bot/internal/service"
	"github.com/tutorhub/sheets-bot/internal/utils"
)

// Bot wires the Telegram API to the registry and the record service.
type Bot struct {
	api         *tgbotapi.BotAPI
	registry    *registry.Registry
	svc         service.Service
	log         *utils.Logger
	convs       *conversations
	pollTimeout int
	started     time.Time
}

// New creates a Bot around an authorized API client.
func New(api *tgbotapi.BotAPI, reg *registry.Registry, svc service.Service, log *utils.Logger, pollTimeout int) *Bot {
	return &Bot{
		api:         api,
		registry:    reg,
		svc:         svc,
		log:         log,
		convs:       newConversations(),
		pollTimeout: pollTimeout,
		started:     time.Now(),
	}
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)

	b.log.Info("bot started as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info("bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	b.log.Debug("[%s] %s", msg.From.UserName, msg.Text)

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	conv := b.convs.get(msg.Chat.ID)
	switch conv.stage {
	case stageRegisterName, stageRegisterSheet:
		b.registerInput(ctx, msg, conv)
	case stageAddParent, stageAddStudent, stageAddCost:
		b.addStudentInput(ctx, msg, conv)
	case stageDeleteParent, stageDeleteStudent, stageDeleteConfirm:
		b.deleteStudentInput(ctx, msg, conv)
	default:
		b.reply(msg.Chat.ID, msgHelp)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "help":
		b.reply(msg.Chat.ID, msgHelp)
	case "health":
		b.handleHealth(msg)
	case "register":
		b.handleRegister(msg)
	case "profile":
		b.handleProfile(msg)
	case "add_student":
		b.handleAddStudent(ctx, msg)
	case "list_students":
		b.handleListStudents(ctx, msg)
	case "delete_student":
		b.handleDeleteStudent(ctx, msg)
	case "confirm":
		b.handleConfirm(ctx, msg)
	case "cancel":
		b.handleCancel(msg)
	default:
		b.reply(msg.Chat.ID, msgUnknownCommand)
	}
}

func (b *Bot) handleCancel(msg *tgbotapi.Message) {
	conv := b.convs.get(msg.Chat.ID)
	switch {
	case conv.stage >= stageRegisterName && conv.stage <= stageRegisterSheet:
		b.convs.reset(msg.Chat.ID)
		b.reply(msg.Chat.ID, msgRegisterCancelled)
	case conv.stage >= stageAddParent && conv.stage <= stageAddCost:
		b.convs.reset(msg.Chat.ID)
		b.reply(msg.Chat.ID, msgAddCancelled)
	case conv.stage >= stageDeleteParent && conv.stage <= stageDeleteConfirm:
		b.convs.reset(msg.Chat.ID)
		b.reply(msg.Chat.ID, msgDeleteCancelled)
	default:
		b.reply(msg.Chat.ID, msgNothingToStop)
	}
}

func (b *Bot) reply(chatID int64, format string, args ...interface{}) {
	text := format
	if len(args) > 0 {
		text = sprintf(format, args...)
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Error("send to chat %d failed: %v", chatID, err)
	}
}

// sheetIDFor resolves the caller's bound spreadsheet, or replies with the
// not-registered message and returns "".
func (b *Bot) sheetIDFor(msg *tgbotapi.Message) string {
	tutor, err := b.registry.Get(telegramID(msg))
	if err != nil {
		b.reply(msg.Chat.ID, msgNotRegistered)
		return ""
	}
	return tutor.SheetsID
}
