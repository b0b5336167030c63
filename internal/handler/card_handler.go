package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizmaster-api/internal/handler/dto"
	"github.com/yourusername/quizmaster-api/internal/service"
)

// CardHandler обрабатывает запросы, связанные с карточками
type CardHandler struct {
	quizService *service.QuizService
}

// NewCardHandler создает новый обработчик карточек
func NewCardHandler(quizService *service.QuizService) *CardHandler {
	return &CardHandler{quizService: quizService}
}

// CreateCardRequest представляет запрос на создание карточки
type CreateCardRequest struct {
	Text   string `json:"text" binding:"required,min=1,max=500"`
	QuizID uint   `json:"quiz_id" binding:"required"`
}

// CreateCard добавляет карточку в викторину
func (h *CardHandler) CreateCard(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := h.quizService.AddCard(req.QuizID, req.Text)
	if err != nil {
		respondServiceError(c, "CardHandler", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCardResponse(card))
}

// GetQuizCards возвращает карточки викторины
func (h *CardHandler) GetQuizCards(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	cards, err := h.quizService.GetCards(quizID)
	if err != nil {
		respondServiceError(c, "CardHandler", err)
		return
	}

	responses := make([]dto.CardResponse, 0, len(cards))
	for i := range cards {
		responses = append(responses, dto.NewCardResponse(&cards[i]))
	}
	c.JSON(http.StatusOK, gin.H{"cards": responses})
}

// UpdateCardRequest представляет запрос на обновление текста карточки
type UpdateCardRequest struct {
	Text string `json:"text" binding:"required,min=1,max=500"`
}

// UpdateCard обновляет текст карточки
func (h *CardHandler) UpdateCard(c *gin.Context) {
	cardID := c.MustGet("cardID").(uint)

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := h.quizService.UpdateCard(cardID, req.Text)
	if err != nil {
		respondServiceError(c, "CardHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCardResponse(card))
}

// DeleteCard удаляет карточку (каскадно удаляя её заявки)
func (h *CardHandler) DeleteCard(c *gin.Context) {
	cardID := c.MustGet("cardID").(uint)

	if err := h.quizService.DeleteCard(cardID); err != nil {
		respondServiceError(c, "CardHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}
