package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorhub/sheets-bot/internal/models"
)

func TestAddAndListLessons(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddLesson(ctx, testSheetID, models.Lesson{
		StudentName: "Sofia",
		Date:        "2024-03-01",
		Time:        "16:00",
		Duration:    "60",
		Topic:       "Algebra",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added.RowIndex)

	lessons, err := svc.ListLessons(ctx, testSheetID)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "Sofia", lessons[0].StudentName)
	assert.Equal(t, "Algebra", lessons[0].Topic)
}

func TestAddLessonValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var valErr *ValidationError

	_, err := svc.AddLesson(ctx, testSheetID, models.Lesson{Date: "2024-03-01"})
	assert.True(t, errors.As(err, &valErr))
	assert.Equal(t, "student name", valErr.Field)

	_, err = svc.AddLesson(ctx, testSheetID, models.Lesson{StudentName: "Sofia"})
	assert.True(t, errors.As(err, &valErr))
	assert.Equal(t, "lesson date", valErr.Field)
}

func TestAddAndListPayments(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddPayment(ctx, testSheetID, models.Payment{
		StudentName: "Sofia",
		Amount:      "2000",
		Date:        "2024-03-01",
		Method:      "card",
	})
	require.NoError(t, err)

	payments, err := svc.ListPayments(ctx, testSheetID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "2000", payments[0].Amount)
	assert.Equal(t, "card", payments[0].Method)
}

func TestAddPaymentValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var valErr *ValidationError

	_, err := svc.AddPayment(ctx, testSheetID, models.Payment{Amount: "2000", Date: "2024-03-01"})
	assert.True(t, errors.As(err, &valErr))

	_, err = svc.AddPayment(ctx, testSheetID, models.Payment{StudentName: "Sofia", Date: "2024-03-01"})
	assert.True(t, errors.As(err, &valErr))
	assert.Equal(t, "payment amount", valErr.Field)
}

func TestSetAndGetSetting(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetSetting(ctx, testSheetID, "currency", "RUB"))

	value, err := svc.GetSetting(ctx, testSheetID, "currency")
	require.NoError(t, err)
	assert.Equal(t, "RUB", value)
}

func TestGetSettingUnknownKey(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetSetting(context.Background(), testSheetID, "missing")

	var notFound *RecordNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, models.SettingsSheet, notFound.Sheet)
	assert.Equal(t, "missing", notFound.Key)
}

func TestSetSettingUpdatesInPlace(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetSetting(ctx, testSheetID, "currency", "RUB"))
	require.NoError(t, svc.SetSetting(ctx, testSheetID, "timezone", "Europe/Moscow"))
	require.NoError(t, svc.SetSetting(ctx, testSheetID, "currency", "EUR"))

	// An overwrite must not append a second row for the same key or move
	// the rows of other keys.
	rows, err := store.ReadRows(ctx, testSheetID, models.SettingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"currency", "EUR"}, rows[0].Values)
	assert.Equal(t, []string{"timezone", "Europe/Moscow"}, rows[1].Values)

	value, err := svc.GetSetting(ctx, testSheetID, "currency")
	require.NoError(t, err)
	assert.Equal(t, "EUR", value)
}

func TestSettingValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var valErr *ValidationError
	assert.True(t, errors.As(svc.SetSetting(ctx, testSheetID, "", "x"), &valErr))
	_, err := svc.GetSetting(ctx, testSheetID, "")
	assert.True(t, errors.As(err, &valErr))
}

func TestLogEvent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.LogEvent(ctx, testSheetID, "Регистрация", "tutor 100"))

	rows, err := store.ReadRows(ctx, testSheetID, models.HistorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	event, err := models.HistoryEventFromRow(rows[0].Values, rows[0].Position)
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.NotEmpty(t, event.Date)
	assert.Equal(t, "Регистрация", event.Event)
	assert.Equal(t, "tutor 100", event.Detail)

	var valErr *ValidationError
	assert.True(t, errors.As(svc.LogEvent(ctx, testSheetID, "", ""), &valErr))
}
