package dto

import (
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// SubmissionResponse представляет заявку в формате для ответа клиенту
type SubmissionResponse struct {
	ID         uint      `json:"id"`
	UserName   string    `json:"user_name"`
	CardID     uint      `json:"card_id"`
	CategoryID uint      `json:"category_id"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewSubmissionResponse создает DTO для заявки
func NewSubmissionResponse(sub *entity.Submission) *SubmissionResponse {
	return &SubmissionResponse{
		ID:         sub.ID,
		UserName:   sub.UserName,
		CardID:     sub.CardID,
		CategoryID: sub.CategoryID,
		Status:     sub.Status,
		Timestamp:  sub.Timestamp,
	}
}
