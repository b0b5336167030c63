package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// CardRepo реализует repository.CardRepository
type CardRepo struct {
	db *gorm.DB
}

// NewCardRepo создает новый репозиторий карточек
func NewCardRepo(db *gorm.DB) *CardRepo {
	return &CardRepo{db: db}
}

// Create создает новую карточку
func (r *CardRepo) Create(card *entity.Card) error {
	return r.db.Create(card).Error
}

// GetByID возвращает карточку по ID
func (r *CardRepo) GetByID(id uint) (*entity.Card, error) {
	var card entity.Card
	err := r.db.First(&card, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// GetByQuizID возвращает карточки викторины в порядке создания
func (r *CardRepo) GetByQuizID(quizID uint) ([]entity.Card, error) {
	var cards []entity.Card
	err := r.db.Where("quiz_id = ?", quizID).Order("id").Find(&cards).Error
	return cards, err
}

// List возвращает все карточки
func (r *CardRepo) List() ([]entity.Card, error) {
	var cards []entity.Card
	err := r.db.Order("id").Find(&cards).Error
	return cards, err
}

// Update обновляет карточку
func (r *CardRepo) Update(card *entity.Card) error {
	return r.db.Save(card).Error
}

// Delete удаляет карточку; её заявки удаляются каскадно на уровне БД
func (r *CardRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Card{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
