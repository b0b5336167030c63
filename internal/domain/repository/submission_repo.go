package repository

import (
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// QuizIDAll — сентинел фильтра "все викторины" для экспорта
const QuizIDAll uint = 0

// PendingSubmission — денормализованная строка заявки для экрана модерации
type PendingSubmission struct {
	ID           uint      `json:"id"`
	UserName     string    `json:"user_name"`
	CardText     string    `json:"card_text"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Timestamp    time.Time `json:"timestamp"`
	Status       string    `json:"status"`
}

// ExportFilters определяет фильтры построения отчёта
type ExportFilters struct {
	// QuizID — ограничение по викторине; QuizIDAll (0) — без ограничения
	QuizID uint
	// ApprovedOnly — включать только одобренные заявки
	ApprovedOnly bool
}

// ExportRow — денормализованная строка отчёта (заявка + карточка + категория + викторина)
type ExportRow struct {
	ID           uint      `json:"id"`
	UserName     string    `json:"user_name"`
	CardText     string    `json:"card_text"`
	CategoryName string    `json:"category_name"`
	QuizName     string    `json:"quiz_name"`
	Timestamp    time.Time `json:"timestamp"`
	Status       string    `json:"status"`
}

// SubmissionRepository определяет методы для работы с заявками
type SubmissionRepository interface {
	// CreateValidated атомарно проверяет существование карточки и категории,
	// их принадлежность одной викторине, и вставляет заявку. Итоговый статус
	// (pending либо approved при включённом авто-одобрении) определяется внутри
	// той же транзакции — промежуточное pending-состояние невозможно наблюдать.
	CreateValidated(sub *entity.Submission) error
	GetByID(id uint) (*entity.Submission, error)
	// FinalizeStatus атомарно переводит pending → status (approved|rejected).
	// Возвращает apperrors.ErrNotFound для неизвестного id и
	// apperrors.ErrInvalidState, если заявка уже в терминальном статусе.
	FinalizeStatus(id uint, status string) (*entity.Submission, error)
	// ListPending возвращает pending-заявки, отсортированные по имени категории,
	// затем по времени создания (старые первыми)
	ListPending() ([]PendingSubmission, error)
	// ListPendingIDs возвращает id всех pending-заявок в порядке создания
	ListPendingIDs() ([]uint, error)
	// ListForExport возвращает строки отчёта с учётом фильтров,
	// отсортированные по имени викторины, затем по времени создания
	ListForExport(filters ExportFilters) ([]ExportRow, error)
	List() ([]entity.Submission, error)
}
