package service

import (
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
)

// ExportService строит денормализованные отчёты по заявкам.
// Сервис форматонезависим: он отдаёт упорядоченные строки, а конкретную
// сериализацию (CSV/XLSX/JSON) выполняет обработчик экспорта.
type ExportService struct {
	quizRepo       repository.QuizRepository
	cardRepo       repository.CardRepository
	categoryRepo   repository.CategoryRepository
	submissionRepo repository.SubmissionRepository
}

// NewExportService создает новый сервис экспорта
func NewExportService(
	quizRepo repository.QuizRepository,
	cardRepo repository.CardRepository,
	categoryRepo repository.CategoryRepository,
	submissionRepo repository.SubmissionRepository,
) *ExportService {
	return &ExportService{
		quizRepo:       quizRepo,
		cardRepo:       cardRepo,
		categoryRepo:   categoryRepo,
		submissionRepo: submissionRepo,
	}
}

// BuildReport возвращает строки отчёта с учётом фильтров,
// отсортированные по имени викторины, затем по времени создания заявки
func (s *ExportService) BuildReport(filters repository.ExportFilters) ([]repository.ExportRow, error) {
	return s.submissionRepo.ListForExport(filters)
}

// RawSnapshot — полный слепок хранилища для бэкапа/отладки
type RawSnapshot struct {
	TakenAt     time.Time           `json:"taken_at"`
	Quizzes     []entity.Quiz       `json:"quizzes"`
	Cards       []entity.Card       `json:"cards"`
	Categories  []entity.Category   `json:"categories"`
	Submissions []entity.Submission `json:"submissions"`
}

// ExportRawSnapshot возвращает все строки всех таблиц как есть.
// Это отдельный режим экспорта: он игнорирует любые фильтры и отдаёт
// буквальное содержимое хранилища, а не производный отчёт.
func (s *ExportService) ExportRawSnapshot() (*RawSnapshot, error) {
	quizzes, err := s.quizRepo.List()
	if err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.List()
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	submissions, err := s.submissionRepo.List()
	if err != nil {
		return nil, err
	}

	return &RawSnapshot{
		TakenAt:     time.Now(),
		Quizzes:     quizzes,
		Cards:       cards,
		Categories:  categories,
		Submissions: submissions,
	}, nil
}
