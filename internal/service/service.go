package service

import (
	"context"
	"sync"

	"github.com/tutorhub/sheets-bot/internal/models"
	"github.com/tutorhub/sheets-bot/internal/repository"
	"github.com/tutorhub/sheets-bot/internal/utils"
)

// Service defines all record operations on a tutor's spreadsheet
type Service interface {
	// Spreadsheet lifecycle
	InitSpreadsheet(ctx context.Context, sheetID string) error

	// Students
	ListStudents(ctx context.Context, sheetID string) ([]models.StudentRecord, error)
	AddStudent(ctx context.Context, sheetID, parentName, studentName, lessonCost string) (*models.StudentRecord, error)
	DeleteStudent(ctx context.Context, sheetID, parentName, studentName string) (*models.StudentRecord, error)

	// Lessons
	ListLessons(ctx context.Context, sheetID string) ([]models.Lesson, error)
	AddLesson(ctx context.Context, sheetID string, lesson models.Lesson) (*models.Lesson, error)

	// Payments
	ListPayments(ctx context.Context, sheetID string) ([]models.Payment, error)
	AddPayment(ctx context.Context, sheetID string, payment models.Payment) (*models.Payment, error)

	// Settings
	GetSetting(ctx context.Context, sheetID, key string) (string, error)
	SetSetting(ctx context.Context, sheetID, key, value string) error

	// History
	LogEvent(ctx context.Context, sheetID, event, detail string) error
}

// DefaultService implements the Service interface on top of a RowStore
type DefaultService struct {
	store repository.RowStore
	log   *utils.Logger

	// sheetLocks holds one mutex per spreadsheet ID. It serializes the
	// read-modify-write sequences (duplicate check then append, scan then
	// delete, scan then update) within this process; the remote backend
	// offers no transaction primitive of its own.
	sheetLocks sync.Map
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(store repository.RowStore, log *utils.Logger) *DefaultService {
	return &DefaultService{
		store: store,
		log:   log,
	}
}

func (s *DefaultService) lockSheet(sheetID string) *sync.Mutex {
	mu, _ := s.sheetLocks.LoadOrStore(sheetID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// InitSpreadsheet verifies access to the spreadsheet and pre-creates every
// catalogued worksheet with its header row. Used at registration time.
func (s *DefaultService) InitSpreadsheet(ctx context.Context, sheetID string) error {
	if err := s.store.Open(ctx, sheetID); err != nil {
		return err
	}

	for worksheet := range repository.WorksheetHeaders {
		if err := s.store.EnsureWorksheet(ctx, sheetID, worksheet); err != nil {
			return err
		}
	}

	s.log.Info("spreadsheet %s initialized", sheetID)
	return nil
}
