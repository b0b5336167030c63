package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	"github.com/yourusername/quizmaster-api/internal/service"
)

// ExportHandler сериализует отчёты по заявкам в конкретные форматы.
// Построение строк (join/фильтры/порядок) выполняет ExportService,
// здесь — только байтовое представление.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler создает новый обработчик экспорта
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportDataRequest представляет запрос на экспорт
type ExportDataRequest struct {
	// Format: json, csv, xlsx или snapshot (полный слепок хранилища)
	Format string `json:"format" binding:"required"`
	// QuizID: "all" либо числовой id викторины
	QuizID string `json:"quiz_id"`
	// Status: "approved" — только одобренные; иначе без фильтра
	Status string `json:"status"`
}

// ExportData строит отчёт и отдаёт его в запрошенном формате.
// Формат snapshot — отдельный режим: он игнорирует фильтры и отдаёт
// буквальное содержимое хранилища, а не отфильтрованный отчёт.
func (h *ExportHandler) ExportData(c *gin.Context) {
	var req ExportDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("quiz_export_%s", time.Now().Format("2006-01-02"))

	// Raw-снапшот не проходит через конвейер отчёта вовсе
	if req.Format == "snapshot" {
		snapshot, err := h.exportService.ExportRawSnapshot()
		if err != nil {
			respondServiceError(c, "ExportHandler", err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_snapshot.json\"", filename))
		c.JSON(http.StatusOK, snapshot)
		return
	}

	filters, err := parseExportFilters(req.QuizID, req.Status)
	if err != nil {
		respondServiceError(c, "ExportHandler", err)
		return
	}

	rows, err := h.exportService.BuildReport(filters)
	if err != nil {
		respondServiceError(c, "ExportHandler", err)
		return
	}

	switch req.Format {
	case "json":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.json\"", filename))
		c.JSON(http.StatusOK, rows)
	case "csv":
		h.exportCSV(c, rows, filename)
	case "xlsx":
		h.exportXLSX(c, rows, filename)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unsupported format: %s", req.Format)})
	}
}

// parseExportFilters разбирает фильтры запроса ("all" — сентинел «все викторины»)
func parseExportFilters(quizID, status string) (repository.ExportFilters, error) {
	filters := repository.ExportFilters{
		QuizID:       repository.QuizIDAll,
		ApprovedOnly: status == "approved",
	}

	if quizID != "" && quizID != "all" {
		id, err := strconv.ParseUint(quizID, 10, 32)
		// 0 — сентинел «все викторины», буквальным id быть не может
		if err != nil || id == 0 {
			return filters, fmt.Errorf("%w: quiz_id must be \"all\" or a positive numeric id", apperrors.ErrValidation)
		}
		filters.QuizID = uint(id)
	}

	return filters, nil
}

// exportCSV сериализует отчёт в CSV с правильным экранированием спецсимволов
func (h *ExportHandler) exportCSV(c *gin.Context, rows []repository.ExportRow, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Description", "Catégorie", "Utilisateur", "Quiz", "Date", "Statut"})

	for _, r := range rows {
		writer.Write([]string{
			sanitizeForExcel(r.CardText),
			sanitizeForExcel(r.CategoryName),
			sanitizeForExcel(r.UserName),
			sanitizeForExcel(r.QuizName),
			r.Timestamp.Format(time.RFC3339),
			r.Status,
		})
	}
}

// exportXLSX сериализует отчёт в Excel с использованием StreamWriter
func (h *ExportHandler) exportXLSX(c *gin.Context, rows []repository.ExportRow, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Soumissions"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ExportHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Description", "Catégorie", "Utilisateur", "Quiz", "Date", "Statut"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[ExportHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range rows {
		rowNum := i + 2 // Первая строка — заголовки
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{
			sanitizeForExcel(r.CardText),
			sanitizeForExcel(r.CategoryName),
			sanitizeForExcel(r.UserName),
			sanitizeForExcel(r.QuizName),
			r.Timestamp.Format(time.RFC3339),
			r.Status,
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[ExportHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[ExportHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ExportHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
