package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// SubmissionRepo реализует repository.SubmissionRepository
type SubmissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo создает новый репозиторий заявок
func NewSubmissionRepo(db *gorm.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// CreateValidated атомарно проверяет ссылки заявки и вставляет её.
// Итоговый статус вычисляется из политики auto_approve викторины внутри
// той же транзакции: при включённой политике заявка рождается сразу approved,
// промежуточное pending-состояние не наблюдаемо ни одним конкурентным чтением.
func (r *SubmissionRepo) CreateValidated(sub *entity.Submission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var card entity.Card
		if err := tx.First(&card, sub.CardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: card #%d", apperrors.ErrNotFound, sub.CardID)
			}
			return err
		}

		var category entity.Category
		if err := tx.First(&category, sub.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: category #%d", apperrors.ErrNotFound, sub.CategoryID)
			}
			return err
		}

		if card.QuizID != category.QuizID {
			return fmt.Errorf("%w: card #%d and category #%d belong to different quizzes",
				apperrors.ErrValidation, sub.CardID, sub.CategoryID)
		}

		var quiz entity.Quiz
		if err := tx.Select("id", "auto_approve").First(&quiz, card.QuizID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: quiz #%d", apperrors.ErrNotFound, card.QuizID)
			}
			return err
		}

		sub.Status = entity.SubmissionStatusPending
		if quiz.AutoApprove {
			sub.Status = entity.SubmissionStatusApproved
		}

		if err := tx.Create(sub).Error; err != nil {
			// Гонка с каскадным удалением карточки/категории между проверкой и вставкой
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: referenced card or category no longer exists", apperrors.ErrNotFound)
			}
			return err
		}
		return nil
	})
}

// GetByID возвращает заявку по ID
func (r *SubmissionRepo) GetByID(id uint) (*entity.Submission, error) {
	var sub entity.Submission
	err := r.db.First(&sub, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FinalizeStatus атомарно переводит pending → status.
// Guarded UPDATE по статусу:
// - RowsAffected == 0 и заявка существует → уже терминальна (ErrInvalidState)
// - RowsAffected == 0 и заявки нет → ErrNotFound
// Терминальная запись при этом не мутируется ни при каком исходе.
func (r *SubmissionRepo) FinalizeStatus(id uint, status string) (*entity.Submission, error) {
	result := r.db.Model(&entity.Submission{}).
		Where("id = ? AND status = ?", id, entity.SubmissionStatusPending).
		Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("finalize submission #%d failed: %w", id, result.Error)
	}

	if result.RowsAffected == 0 {
		sub, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: submission #%d is already %s", apperrors.ErrInvalidState, id, sub.Status)
	}

	return r.GetByID(id)
}

// ListPending возвращает pending-заявки с данными карточки и категории,
// отсортированные по имени категории, затем по времени создания
func (r *SubmissionRepo) ListPending() ([]repository.PendingSubmission, error) {
	var rows []repository.PendingSubmission
	err := r.db.Table("submissions s").
		Select(`s.id, s.user_name, s.timestamp, s.status,
			c.text AS card_text, cat.id AS category_id, cat.name AS category_name`).
		Joins("JOIN cards c ON s.card_id = c.id").
		Joins("JOIN categories cat ON s.category_id = cat.id").
		Where("s.status = ?", entity.SubmissionStatusPending).
		Order("cat.name, s.timestamp ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPendingIDs возвращает id всех pending-заявок в порядке создания
func (r *SubmissionRepo) ListPendingIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.Submission{}).
		Where("status = ?", entity.SubmissionStatusPending).
		Order("timestamp ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// ListForExport возвращает денормализованные строки отчёта с учётом фильтров,
// отсортированные по имени викторины, затем по времени создания
func (r *SubmissionRepo) ListForExport(filters repository.ExportFilters) ([]repository.ExportRow, error) {
	query := r.db.Table("submissions s").
		Select(`s.id, s.user_name, s.timestamp, s.status,
			c.text AS card_text, cat.name AS category_name, q.name AS quiz_name`).
		Joins("JOIN cards c ON s.card_id = c.id").
		Joins("JOIN categories cat ON s.category_id = cat.id").
		Joins("JOIN quizzes q ON c.quiz_id = q.id")

	if filters.QuizID != repository.QuizIDAll {
		query = query.Where("q.id = ?", filters.QuizID)
	}
	if filters.ApprovedOnly {
		query = query.Where("s.status = ?", entity.SubmissionStatusApproved)
	}

	var rows []repository.ExportRow
	err := query.Order("q.name, s.timestamp ASC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// List возвращает все заявки (для raw-снапшота)
func (r *SubmissionRepo) List() ([]entity.Submission, error) {
	var subs []entity.Submission
	err := r.db.Order("id").Find(&subs).Error
	return subs, err
}

// isForeignKeyViolation проверяет Postgres foreign key violation (23503) для pgconn и lib/pq драйверов
func isForeignKeyViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return true
	}
	return false
}
