package repository

import (
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// CardRepository определяет методы для работы с карточками
type CardRepository interface {
	Create(card *entity.Card) error
	GetByID(id uint) (*entity.Card, error)
	GetByQuizID(quizID uint) ([]entity.Card, error)
	List() ([]entity.Card, error)
	Update(card *entity.Card) error
	Delete(id uint) error
}
