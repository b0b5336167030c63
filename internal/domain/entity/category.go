package entity

import (
	"time"
)

// Category представляет корзину классификации внутри викторины
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	QuizID    uint      `gorm:"not null;index" json:"quiz_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}
