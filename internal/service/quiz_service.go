package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// catalogCacheTTL — время жизни кешированного каталога викторины
const catalogCacheTTL = 5 * time.Minute

// QuizService предоставляет методы для работы с викторинами:
// каталог, курсор прогресса и политика авто-одобрения
type QuizService struct {
	quizRepo     repository.QuizRepository
	cardRepo     repository.CardRepository
	categoryRepo repository.CategoryRepository
	cacheRepo    repository.CacheRepository
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	cardRepo repository.CardRepository,
	categoryRepo repository.CategoryRepository,
	cacheRepo repository.CacheRepository,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		cardRepo:     cardRepo,
		categoryRepo: categoryRepo,
		cacheRepo:    cacheRepo,
	}
}

func catalogCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:catalog:%d", quizID)
}

// invalidateCatalog сбрасывает кешированный каталог викторины после любой записи
func (s *QuizService) invalidateCatalog(quizID uint) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(catalogCacheKey(quizID)); err != nil {
		log.Printf("[QuizService] Не удалось сбросить кеш каталога викторины #%d: %v", quizID, err)
	}
}

// CreateQuiz создает новую викторину
func (s *QuizService) CreateQuiz(name, description string, isActive, autoApprove bool) (*entity.Quiz, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: quiz name must not be empty", apperrors.ErrValidation)
	}

	quiz := &entity.Quiz{
		Name:        name,
		Description: description,
		IsActive:    isActive,
		AutoApprove: autoApprove,
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	return quiz, nil
}

// GetQuizByID возвращает викторину по ID
func (s *QuizService) GetQuizByID(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetByID(quizID)
}

// GetQuizWithCatalog возвращает викторину с карточками и категориями.
// Каталог читается через Redis-кеш; любая запись в каталог сбрасывает его.
func (s *QuizService) GetQuizWithCatalog(quizID uint) (*entity.Quiz, error) {
	if s.cacheRepo != nil {
		var cached entity.Quiz
		if err := s.cacheRepo.GetJSON(catalogCacheKey(quizID), &cached); err == nil {
			return &cached, nil
		}
	}

	quiz, err := s.quizRepo.GetWithCatalog(quizID)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(catalogCacheKey(quizID), quiz, catalogCacheTTL); err != nil {
			log.Printf("[QuizService] Не удалось закешировать каталог викторины #%d: %v", quizID, err)
		}
	}

	return quiz, nil
}

// GetActiveQuizzes возвращает викторины, видимые игрокам
func (s *QuizService) GetActiveQuizzes() ([]entity.Quiz, error) {
	return s.quizRepo.GetActive()
}

// ListQuizzes возвращает все викторины (для админки)
func (s *QuizService) ListQuizzes() ([]entity.Quiz, error) {
	return s.quizRepo.List()
}

// UpdateQuiz обновляет название, описание и видимость викторины.
// Запись точечная: без read-modify-write всей строки, так что конкурентный
// SetProgress или SetAutoApprove между чтением в админке и сохранением
// не затирается.
func (s *QuizService) UpdateQuiz(quizID uint, name, description string, isActive bool) (*entity.Quiz, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: quiz name must not be empty", apperrors.ErrValidation)
	}

	if err := s.quizRepo.UpdateInfo(quizID, name, description, isActive); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	s.invalidateCatalog(quizID)
	return s.quizRepo.GetByID(quizID)
}

// ToggleQuizActive инвертирует видимость викторины для игроков
func (s *QuizService) ToggleQuizActive(quizID uint) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.ToggleActive(quizID)
	if err != nil {
		return nil, err
	}
	s.invalidateCatalog(quizID)
	return quiz, nil
}

// DeleteQuiz удаляет викторину вместе с карточками, категориями и их заявками
func (s *QuizService) DeleteQuiz(quizID uint) error {
	if err := s.quizRepo.Delete(quizID); err != nil {
		return err
	}
	s.invalidateCatalog(quizID)
	return nil
}

// GetProgress возвращает текущее значение общего курсора прогресса.
// Читается из БД, минуя кеш: курсор — авторитетное разделяемое состояние.
func (s *QuizService) GetProgress(quizID uint) (int, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return 0, err
	}
	return quiz.ProgressIndex, nil
}

// SetProgress записывает абсолютное значение курсора прогресса.
// Значение видно всем последующим GetProgress любого клиента — так
// одновременные игроки остаются на одной карточке. Сброс — обычный SetProgress(q, 0),
// заявки он не трогает.
func (s *QuizService) SetProgress(quizID uint, index int) error {
	if index < 0 {
		return fmt.Errorf("%w: progress index must be non-negative, got %d", apperrors.ErrValidation, index)
	}

	if err := s.quizRepo.UpdateProgress(quizID, index); err != nil {
		return err
	}

	s.invalidateCatalog(quizID)
	return nil
}

// GetAutoApprove возвращает политику авто-одобрения викторины
func (s *QuizService) GetAutoApprove(quizID uint) (bool, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return false, err
	}
	return quiz.AutoApprove, nil
}

// SetAutoApprove обновляет политику авто-одобрения.
// Уже созданные заявки не пере-оцениваются: политика читается
// только в момент создания заявки.
func (s *QuizService) SetAutoApprove(quizID uint, autoApprove bool) error {
	if err := s.quizRepo.UpdateAutoApprove(quizID, autoApprove); err != nil {
		return err
	}
	s.invalidateCatalog(quizID)
	return nil
}

// AddCard добавляет карточку в викторину
func (s *QuizService) AddCard(quizID uint, text string) (*entity.Card, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: card text must not be empty", apperrors.ErrValidation)
	}

	// Убеждаемся, что викторина существует
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}

	card := &entity.Card{Text: text, QuizID: quizID}
	if err := s.cardRepo.Create(card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.invalidateCatalog(quizID)
	return card, nil
}

// GetCards возвращает карточки викторины
func (s *QuizService) GetCards(quizID uint) ([]entity.Card, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}
	return s.cardRepo.GetByQuizID(quizID)
}

// UpdateCard обновляет текст карточки
func (s *QuizService) UpdateCard(cardID uint, text string) (*entity.Card, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: card text must not be empty", apperrors.ErrValidation)
	}

	card, err := s.cardRepo.GetByID(cardID)
	if err != nil {
		return nil, err
	}

	card.Text = text
	if err := s.cardRepo.Update(card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	s.invalidateCatalog(card.QuizID)
	return card, nil
}

// DeleteCard удаляет карточку (и каскадно её заявки)
func (s *QuizService) DeleteCard(cardID uint) error {
	card, err := s.cardRepo.GetByID(cardID)
	if err != nil {
		return err
	}
	if err := s.cardRepo.Delete(cardID); err != nil {
		return err
	}
	s.invalidateCatalog(card.QuizID)
	return nil
}

// AddCategory добавляет категорию в викторину
func (s *QuizService) AddCategory(quizID uint, name string) (*entity.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: category name must not be empty", apperrors.ErrValidation)
	}

	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}

	category := &entity.Category{Name: name, QuizID: quizID}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCatalog(quizID)
	return category, nil
}

// GetCategories возвращает категории викторины
func (s *QuizService) GetCategories(quizID uint) ([]entity.Category, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetByQuizID(quizID)
}

// UpdateCategory обновляет имя категории
func (s *QuizService) UpdateCategory(categoryID uint, name string) (*entity.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: category name must not be empty", apperrors.ErrValidation)
	}

	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCatalog(category.QuizID)
	return category, nil
}

// DeleteCategory удаляет категорию (и каскадно её заявки)
func (s *QuizService) DeleteCategory(categoryID uint) error {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(categoryID); err != nil {
		return err
	}
	s.invalidateCatalog(category.QuizID)
	return nil
}
