package repository

import (
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	// GetWithCatalog возвращает викторину вместе с карточками и категориями
	GetWithCatalog(id uint) (*entity.Quiz, error)
	// GetActive возвращает видимые игрокам викторины (is_active = true)
	GetActive() ([]entity.Quiz, error)
	List() ([]entity.Quiz, error)
	// UpdateInfo точечно обновляет название, описание и видимость, не затрагивая
	// progress_index и auto_approve: эти колонки пишут только их собственные операции
	UpdateInfo(quizID uint, name, description string, isActive bool) error
	// ToggleActive инвертирует флаг видимости и возвращает обновлённую викторину
	ToggleActive(id uint) (*entity.Quiz, error)
	// UpdateProgress точечно записывает абсолютное значение курсора прогресса.
	// Возвращает apperrors.ErrNotFound, если викторины не существует.
	UpdateProgress(quizID uint, index int) error
	// UpdateAutoApprove точечно обновляет политику авто-одобрения заявок
	UpdateAutoApprove(quizID uint, autoApprove bool) error
	Delete(id uint) error
}
