package entity

import (
	"time"
)

// Quiz представляет викторину-классификатор: набор карточек и категорий
// с общим для всех игроков состоянием прохождения
type Quiz struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500;not null;default:''" json:"description"`
	IsActive    bool   `gorm:"not null;default:true;index" json:"is_active"`
	AutoApprove bool   `gorm:"not null;default:false" json:"auto_approve"`
	// ProgressIndex — общий курсор текущей карточки для всех игроков викторины.
	// Мутируется только абсолютной записью (никогда не инкрементом от ранее
	// прочитанного значения), последняя запись побеждает.
	ProgressIndex int        `gorm:"not null;default:0" json:"progress_index"`
	Cards         []Card     `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
	Categories    []Category `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}
