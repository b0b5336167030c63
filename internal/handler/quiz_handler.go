package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizmaster-api/internal/handler/dto"
	"github.com/yourusername/quizmaster-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с викторинами,
// курсором прогресса и политикой авто-одобрения
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// CreateQuizRequest представляет запрос на создание викторины
type CreateQuizRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool  `json:"is_active"`
	AutoApprove bool   `json:"auto_approve"`
}

// CreateQuiz обрабатывает запрос на создание викторины
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	quiz, err := h.quizService.CreateQuiz(req.Name, req.Description, isActive, req.AutoApprove)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz))
}

// GetActiveQuizzes возвращает викторины, видимые игрокам
func (h *QuizHandler) GetActiveQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.GetActiveQuizzes()
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	responses := make([]*dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		responses = append(responses, dto.NewQuizResponse(&quizzes[i]))
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": responses})
}

// ListQuizzes возвращает все викторины (для админки)
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzes()
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	responses := make([]*dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		responses = append(responses, dto.NewQuizResponse(&quizzes[i]))
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": responses})
}

// GetQuiz возвращает викторину вместе с карточками и категориями
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	quiz, err := h.quizService.GetQuizWithCatalog(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizCatalogResponse(quiz))
}

// UpdateQuizRequest представляет запрос на обновление викторины
type UpdateQuizRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	IsActive    bool   `json:"is_active"`
}

// UpdateQuiz обновляет название, описание и видимость викторины
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.UpdateQuiz(quizID, req.Name, req.Description, req.IsActive)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// ToggleQuizActive инвертирует видимость викторины
func (h *QuizHandler) ToggleQuizActive(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.quizService.ToggleQuizActive(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// DeleteQuiz удаляет викторину вместе с карточками, категориями и заявками
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	if err := h.quizService.DeleteQuiz(quizID); err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

// GetProgress возвращает текущий общий курсор прогресса викторины
func (h *QuizHandler) GetProgress(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	index, err := h.quizService.GetProgress(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quiz_id": quizID, "progress_index": index})
}

// SetProgressRequest представляет запрос на запись курсора прогресса
type SetProgressRequest struct {
	ProgressIndex *int `json:"progress_index" binding:"required"`
}

// SetProgress записывает новое абсолютное значение курсора прогресса
func (h *QuizHandler) SetProgress(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req SetProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.quizService.SetProgress(quizID, *req.ProgressIndex); err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quiz_id": quizID, "progress_index": *req.ProgressIndex})
}

// GetAutoApprove возвращает политику авто-одобрения викторины
func (h *QuizHandler) GetAutoApprove(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	autoApprove, err := h.quizService.GetAutoApprove(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quiz_id": quizID, "auto_approve": autoApprove})
}

// SetAutoApproveRequest представляет запрос на изменение политики авто-одобрения
type SetAutoApproveRequest struct {
	AutoApprove *bool `json:"auto_approve" binding:"required"`
}

// SetAutoApprove обновляет политику авто-одобрения викторины
func (h *QuizHandler) SetAutoApprove(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	var req SetAutoApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.quizService.SetAutoApprove(quizID, *req.AutoApprove); err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quiz_id": quizID, "auto_approve": *req.AutoApprove})
}

// handleQuizError преобразует ошибки сервисов в HTTP-ответы
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	respondServiceError(c, "QuizHandler", err)
}
