package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tutorhub/sheets-bot/internal/utils"
)

func sprintf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

func telegramID(msg *tgbotapi.Message) string {
	return strconv.FormatInt(msg.From.ID, 10)
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	tutor, err := b.registry.Get(telegramID(msg))
	if err != nil {
		b.reply(msg.Chat.ID, msgStartNew)
		return
	}
	b.reply(msg.Chat.ID, msgStartRegistered, tutor.Name)
}

func (b *Bot) handleHealth(msg *tgbotapi.Message) {
	uptime := time.Since(b.started).Round(time.Second)
	b.reply(msg.Chat.ID, msgHealth, uptime, b.registry.Path())
}

func (b *Bot) handleRegister(msg *tgbotapi.Message) {
	if tutor, err := b.registry.Get(telegramID(msg)); err == nil {
		b.reply(msg.Chat.ID, msgRegisterAlready, tutor.Name)
		return
	}

	conv := b.convs.get(msg.Chat.ID)
	conv.stage = stageRegisterName
	b.reply(msg.Chat.ID, msgRegisterAskName)
}

func (b *Bot) registerInput(ctx context.Context, msg *tgbotapi.Message, conv *conversation) {
	switch conv.stage {
	case stageRegisterName:
		name := utils.SanitizeName(msg.Text)
		if !utils.ValidateName(name) {
			b.reply(msg.Chat.ID, msgRegisterInvalidName)
			return
		}
		conv.name = name
		conv.stage = stageRegisterSheet
		b.reply(msg.Chat.ID, msgRegisterAskSheet, name)

	case stageRegisterSheet:
		sheetID := utils.ExtractSheetID(msg.Text)
		if sheetID == "" {
			b.reply(msg.Chat.ID, msgRegisterInvalidSheet)
			return
		}

		b.reply(msg.Chat.ID, msgRegisterProcessing)

		// Validate access and pre-create the worksheets before anything is
		// persisted; a failure leaves the user in the same prompt.
		if err := b.svc.InitSpreadsheet(ctx, sheetID); err != nil {
			b.log.Error("sheet validation failed for %s: %v", sheetID, err)
			b.reply(msg.Chat.ID, msgRegisterSheetNotFound, sheetID)
			return
		}

		if _, err := b.registry.Register(telegramID(msg), conv.name, sheetID); err != nil {
			b.log.Warn("registration failed for %s: %v", telegramID(msg), err)
			b.reply(msg.Chat.ID, msgRegisterAlready, conv.name)
			b.convs.reset(msg.Chat.ID)
			return
		}

		b.log.Info("tutor registered: %s (%s)", telegramID(msg), conv.name)
		b.reply(msg.Chat.ID, msgRegisterSuccess, conv.name)
		b.convs.reset(msg.Chat.ID)
	}
}

func (b *Bot) handleProfile(msg *tgbotapi.Message) {
	tutor, err := b.registry.Get(telegramID(msg))
	if err != nil {
		b.reply(msg.Chat.ID, msgNotRegistered)
		return
	}
	b.reply(msg.Chat.ID, msgProfile,
		tutor.Name, tutor.SheetsID,
		formatTimestamp(tutor.CreatedAt), formatTimestamp(tutor.UpdatedAt))
}

// formatTimestamp renders a stored RFC 3339 timestamp for display; an
// unparseable value falls back to its date prefix.
func formatTimestamp(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		if len(iso) >= 10 {
			return iso[:10]
		}
		return iso
	}
	return t.Format("02.01.2006 15:04")
}
