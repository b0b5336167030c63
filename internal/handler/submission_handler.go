package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizmaster-api/internal/handler/dto"
	"github.com/yourusername/quizmaster-api/internal/service"
)

// SubmissionHandler обрабатывает запросы журнала заявок и модерации
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler создает новый обработчик заявок
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// CreateSubmissionRequest представляет запрос на создание заявки
type CreateSubmissionRequest struct {
	UserName   string `json:"user_name" binding:"required,min=1,max=100"`
	CardID     uint   `json:"card_id" binding:"required"`
	CategoryID uint   `json:"category_id" binding:"required"`
}

// CreateSubmission создает заявку игрока. Если у викторины включено
// авто-одобрение, ответ сразу содержит статус approved.
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.submissionService.CreateSubmission(req.UserName, req.CardID, req.CategoryID)
	if err != nil {
		respondServiceError(c, "SubmissionHandler", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSubmissionResponse(sub))
}

// GetPendingSubmissions возвращает pending-заявки, сгруппированные по имени категории
func (h *SubmissionHandler) GetPendingSubmissions(c *gin.Context) {
	grouped, err := h.submissionService.ListPendingGrouped()
	if err != nil {
		respondServiceError(c, "SubmissionHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": grouped})
}

// SetStatusRequest представляет запрос на перевод заявки в терминальный статус
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetSubmissionStatus переводит заявку в approved или rejected.
// Повторный перевод уже терминальной заявки возвращает 409.
func (h *SubmissionHandler) SetSubmissionStatus(c *gin.Context) {
	submissionID := c.MustGet("submissionID").(uint)

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.submissionService.SetStatus(submissionID, req.Status)
	if err != nil {
		respondServiceError(c, "SubmissionHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmissionResponse(sub))
}

// ApproveAll одобряет все pending-заявки (best-effort, см. контракт сервиса).
// В ответе — число выполненных переходов; при частичном выполнении клиент
// повторяет вызов либо перечитывает список pending.
func (h *SubmissionHandler) ApproveAll(c *gin.Context) {
	approved, err := h.submissionService.ApproveAll()
	if err != nil {
		// Частичное выполнение — не откатывается; сообщаем сколько успело пройти
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    err.Error(),
			"approved": approved,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"approved": approved})
}

// RejectSubmission отклоняет одну заявку прямо из списка модерации
func (h *SubmissionHandler) RejectSubmission(c *gin.Context) {
	submissionID := c.MustGet("submissionID").(uint)

	sub, err := h.submissionService.RejectOne(submissionID)
	if err != nil {
		respondServiceError(c, "SubmissionHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmissionResponse(sub))
}
