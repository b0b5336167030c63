package entity

import (
	"time"
)

// Card представляет карточку, которую игрок относит к одной из категорий
type Card struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:500;not null" json:"text"`
	QuizID    uint      `gorm:"not null;index" json:"quiz_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Card) TableName() string {
	return "cards"
}
