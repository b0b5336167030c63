package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает новую викторину
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID возвращает викторину по ID
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithCatalog возвращает викторину вместе с карточками и категориями
func (r *QuizRepo) GetWithCatalog(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.
		Preload("Cards", func(db *gorm.DB) *gorm.DB { return db.Order("cards.id") }).
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("categories.id") }).
		First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetActive возвращает видимые игрокам викторины
func (r *QuizRepo) GetActive() ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// List возвращает все викторины (для админки)
func (r *QuizRepo) List() ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

// UpdateInfo точечно обновляет название, описание и видимость викторины.
// Полного Save здесь намеренно нет: он переписал бы progress_index и
// auto_approve значениями, прочитанными до редактирования, затирая
// конкурентные SetProgress/SetAutoApprove.
func (r *QuizRepo) UpdateInfo(quizID uint, name, description string, isActive bool) error {
	result := r.db.Model(&entity.Quiz{}).
		Where("id = ?", quizID).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
			"is_active":   isActive,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ToggleActive инвертирует флаг видимости через SQL-выражение и возвращает обновлённую викторину
func (r *QuizRepo) ToggleActive(id uint) (*entity.Quiz, error) {
	result := r.db.Model(&entity.Quiz{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetByID(id)
}

// UpdateProgress точечно записывает абсолютное значение курсора прогресса.
// Никакого read-modify-write: конкурентные записи не теряют друг друга,
// побеждает последняя дошедшая до БД.
func (r *QuizRepo) UpdateProgress(quizID uint, index int) error {
	result := r.db.Model(&entity.Quiz{}).
		Where("id = ?", quizID).
		Update("progress_index", index)
	if result.Error != nil {
		return fmt.Errorf("update progress for quiz #%d failed: %w", quizID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAutoApprove точечно обновляет политику авто-одобрения
func (r *QuizRepo) UpdateAutoApprove(quizID uint, autoApprove bool) error {
	result := r.db.Model(&entity.Quiz{}).
		Where("id = ?", quizID).
		Update("auto_approve", autoApprove)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет викторину; карточки, категории и их заявки удаляются каскадно на уровне БД
func (r *QuizRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Quiz{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
