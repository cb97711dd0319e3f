package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tutorhub/sheets-bot/internal/service"
	"github.com/tutorhub/sheets-bot/internal/utils"
)

func (b *Bot) handleAddStudent(ctx context.Context, msg *tgbotapi.Message) {
	sheetID := b.sheetIDFor(msg)
	if sheetID == "" {
		return
	}

	// Inline form: /add_student Parent Name Student Cost. The last two
	// fields are the student name and the cost; everything before them is
	// the parent name.
	args := strings.Fields(msg.CommandArguments())
	if len(args) >= 3 {
		parent := utils.SanitizeName(strings.Join(args[:len(args)-2], " "))
		student := args[len(args)-2]
		cost := args[len(args)-1]
		b.finishAddStudent(ctx, msg.Chat.ID, sheetID, parent, student, cost)
		return
	}

	conv := b.convs.get(msg.Chat.ID)
	conv.stage = stageAddParent
	conv.sheetID = sheetID
	b.reply(msg.Chat.ID, msgAddPromptParent)
}

func (b *Bot) addStudentInput(ctx context.Context, msg *tgbotapi.Message, conv *conversation) {
	text := utils.SanitizeName(msg.Text)
	if text == "" {
		b.reply(msg.Chat.ID, msgInvalidInput)
		return
	}

	switch conv.stage {
	case stageAddParent:
		conv.parentName = text
		conv.stage = stageAddStudent
		b.reply(msg.Chat.ID, msgAddPromptChild)
	case stageAddStudent:
		conv.studentName = text
		conv.stage = stageAddCost
		b.reply(msg.Chat.ID, msgAddPromptCost)
	case stageAddCost:
		b.finishAddStudent(ctx, msg.Chat.ID, conv.sheetID, conv.parentName, conv.studentName, text)
		b.convs.reset(msg.Chat.ID)
	}
}

func (b *Bot) finishAddStudent(ctx context.Context, chatID int64, sheetID, parent, student, cost string) {
	record, err := b.svc.AddStudent(ctx, sheetID, parent, student, cost)
	if err != nil {
		var dup *service.DuplicateRecordError
		if errors.As(err, &dup) {
			b.reply(chatID, msgAddDuplicate, dup.Existing.ParentName, dup.Existing.StudentName)
			return
		}
		b.log.Error("add student failed: %v", err)
		b.reply(chatID, msgInternalError, err)
		return
	}
	b.reply(chatID, msgAddSuccess, record.ParentName, record.StudentName, record.LessonCost)
}

func (b *Bot) handleListStudents(ctx context.Context, msg *tgbotapi.Message) {
	sheetID := b.sheetIDFor(msg)
	if sheetID == "" {
		return
	}

	records, err := b.svc.ListStudents(ctx, sheetID)
	if err != nil {
		b.log.Error("list students failed: %v", err)
		b.reply(msg.Chat.ID, msgInternalError, err)
		return
	}

	if len(records) == 0 {
		b.reply(msg.Chat.ID, msgListEmpty)
		return
	}

	var sb strings.Builder
	sb.WriteString(msgListHeader)
	for i, record := range records {
		sb.WriteString(sprintf(msgListItem, i+1, record.ParentName, record.StudentName, record.LessonCost))
	}
	b.reply(msg.Chat.ID, sb.String())
}

func (b *Bot) handleDeleteStudent(ctx context.Context, msg *tgbotapi.Message) {
	sheetID := b.sheetIDFor(msg)
	if sheetID == "" {
		return
	}

	// Inline form: /delete_student Parent Name Student. Deletes without
	// the confirmation step, matching the argument form of /add_student.
	args := strings.Fields(msg.CommandArguments())
	if len(args) >= 2 {
		parent := utils.SanitizeName(strings.Join(args[:len(args)-1], " "))
		student := args[len(args)-1]
		b.finishDeleteStudent(ctx, msg.Chat.ID, sheetID, parent, student)
		return
	}

	conv := b.convs.get(msg.Chat.ID)
	conv.stage = stageDeleteParent
	conv.sheetID = sheetID
	b.reply(msg.Chat.ID, msgDeletePromptParent)
}

func (b *Bot) deleteStudentInput(ctx context.Context, msg *tgbotapi.Message, conv *conversation) {
	text := utils.SanitizeName(msg.Text)
	if text == "" {
		b.reply(msg.Chat.ID, msgInvalidInput)
		return
	}

	switch conv.stage {
	case stageDeleteParent:
		conv.parentName = text
		conv.stage = stageDeleteStudent
		b.reply(msg.Chat.ID, msgDeletePromptChild)
	case stageDeleteStudent:
		conv.studentName = text
		conv.stage = stageDeleteConfirm
		b.reply(msg.Chat.ID, msgDeleteConfirm, conv.parentName, conv.studentName)
	case stageDeleteConfirm:
		// Free text while awaiting /confirm or /cancel: repeat the prompt.
		b.reply(msg.Chat.ID, msgDeleteConfirm, conv.parentName, conv.studentName)
	}
}

func (b *Bot) handleConfirm(ctx context.Context, msg *tgbotapi.Message) {
	conv := b.convs.get(msg.Chat.ID)
	if conv.stage != stageDeleteConfirm {
		b.reply(msg.Chat.ID, msgNothingToConfirm)
		return
	}
	b.finishDeleteStudent(ctx, msg.Chat.ID, conv.sheetID, conv.parentName, conv.studentName)
	b.convs.reset(msg.Chat.ID)
}

func (b *Bot) finishDeleteStudent(ctx context.Context, chatID int64, sheetID, parent, student string) {
	record, err := b.svc.DeleteStudent(ctx, sheetID, parent, student)
	if err != nil {
		var notFound *service.RecordNotFoundError
		if errors.As(err, &notFound) {
			b.reply(chatID, msgDeleteNotFound, parent, student)
			return
		}
		b.log.Error("delete student failed: %v", err)
		b.reply(chatID, msgInternalError, err)
		return
	}
	b.reply(chatID, msgDeleteSuccess, record.ParentName, record.StudentName)
}
