package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizmaster-api/internal/handler/dto"
	"github.com/yourusername/quizmaster-api/internal/service"
)

// CategoryHandler обрабатывает запросы, связанные с категориями
type CategoryHandler struct {
	quizService *service.QuizService
}

// NewCategoryHandler создает новый обработчик категорий
func NewCategoryHandler(quizService *service.QuizService) *CategoryHandler {
	return &CategoryHandler{quizService: quizService}
}

// CreateCategoryRequest представляет запрос на создание категории
type CreateCategoryRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=100"`
	QuizID uint   `json:"quiz_id" binding:"required"`
}

// CreateCategory добавляет категорию в викторину
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.quizService.AddCategory(req.QuizID, req.Name)
	if err != nil {
		respondServiceError(c, "CategoryHandler", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCategoryResponse(category))
}

// GetQuizCategories возвращает категории викторины
func (h *CategoryHandler) GetQuizCategories(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)

	categories, err := h.quizService.GetCategories(quizID)
	if err != nil {
		respondServiceError(c, "CategoryHandler", err)
		return
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, dto.NewCategoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, gin.H{"categories": responses})
}

// UpdateCategoryRequest представляет запрос на обновление имени категории
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateCategory обновляет имя категории
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.quizService.UpdateCategory(categoryID, req.Name)
	if err != nil {
		respondServiceError(c, "CategoryHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

// DeleteCategory удаляет категорию (каскадно удаляя её заявки)
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	if err := h.quizService.DeleteCategory(categoryID); err != nil {
		respondServiceError(c, "CategoryHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
