package dto

import (
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// QuizResponse представляет викторину в формате для ответа клиенту
type QuizResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	IsActive      bool      `json:"is_active"`
	AutoApprove   bool      `json:"auto_approve"`
	ProgressIndex int       `json:"progress_index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CardResponse представляет карточку в формате для ответа клиенту
type CardResponse struct {
	ID     uint   `json:"id"`
	Text   string `json:"text"`
	QuizID uint   `json:"quiz_id"`
}

// CategoryResponse представляет категорию в формате для ответа клиенту
type CategoryResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	QuizID uint   `json:"quiz_id"`
}

// QuizCatalogResponse — викторина вместе с карточками и категориями
type QuizCatalogResponse struct {
	Quiz       *QuizResponse      `json:"quiz"`
	Cards      []CardResponse     `json:"cards"`
	Categories []CategoryResponse `json:"categories"`
}

// NewQuizResponse создает DTO для викторины
func NewQuizResponse(quiz *entity.Quiz) *QuizResponse {
	return &QuizResponse{
		ID:            quiz.ID,
		Name:          quiz.Name,
		Description:   quiz.Description,
		IsActive:      quiz.IsActive,
		AutoApprove:   quiz.AutoApprove,
		ProgressIndex: quiz.ProgressIndex,
		CreatedAt:     quiz.CreatedAt,
		UpdatedAt:     quiz.UpdatedAt,
	}
}

// NewCardResponse создает DTO для карточки
func NewCardResponse(card *entity.Card) CardResponse {
	return CardResponse{ID: card.ID, Text: card.Text, QuizID: card.QuizID}
}

// NewCategoryResponse создает DTO для категории
func NewCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{ID: category.ID, Name: category.Name, QuizID: category.QuizID}
}

// NewQuizCatalogResponse создает DTO каталога викторины
func NewQuizCatalogResponse(quiz *entity.Quiz) *QuizCatalogResponse {
	cards := make([]CardResponse, 0, len(quiz.Cards))
	for i := range quiz.Cards {
		cards = append(cards, NewCardResponse(&quiz.Cards[i]))
	}
	categories := make([]CategoryResponse, 0, len(quiz.Categories))
	for i := range quiz.Categories {
		categories = append(categories, NewCategoryResponse(&quiz.Categories[i]))
	}
	return &QuizCatalogResponse{
		Quiz:       NewQuizResponse(quiz),
		Cards:      cards,
		Categories: categories,
	}
}
