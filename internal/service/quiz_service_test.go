package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// ============================================================================
// MockQuizRepository реализует repository.QuizRepository
// ============================================================================

type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetWithCatalog(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetActive() ([]entity.Quiz, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) List() ([]entity.Quiz, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) UpdateInfo(quizID uint, name, description string, isActive bool) error {
	args := m.Called(quizID, name, description, isActive)
	return args.Error(0)
}

func (m *MockQuizRepository) ToggleActive(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) UpdateProgress(quizID uint, index int) error {
	args := m.Called(quizID, index)
	return args.Error(0)
}

func (m *MockQuizRepository) UpdateAutoApprove(quizID uint, autoApprove bool) error {
	args := m.Called(quizID, autoApprove)
	return args.Error(0)
}

func (m *MockQuizRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// ============================================================================
// MockCardRepository реализует repository.CardRepository
// ============================================================================

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(card *entity.Card) error {
	args := m.Called(card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByID(id uint) (*entity.Card, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Card), args.Error(1)
}

func (m *MockCardRepository) GetByQuizID(quizID uint) ([]entity.Card, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Card), args.Error(1)
}

func (m *MockCardRepository) List() ([]entity.Card, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Card), args.Error(1)
}

func (m *MockCardRepository) Update(card *entity.Card) error {
	args := m.Called(card)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// ============================================================================
// MockCategoryRepository реализует repository.CategoryRepository
// ============================================================================

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(category *entity.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(id uint) (*entity.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByQuizID(quizID uint) ([]entity.Category, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) List() ([]entity.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(category *entity.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// ============================================================================
// MockCacheRepository реализует repository.CacheRepository
// ============================================================================

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func newQuizServiceForTest(quizRepo *MockQuizRepository, cardRepo *MockCardRepository, categoryRepo *MockCategoryRepository, cacheRepo *MockCacheRepository) *QuizService {
	return NewQuizService(quizRepo, cardRepo, categoryRepo, cacheRepo)
}

// ============================================================================
// CreateQuiz / UpdateQuiz
// ============================================================================

func TestQuizService_CreateQuiz_EmptyName(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), new(MockCacheRepository))

	_, err := svc.CreateQuiz("  ", "desc", true, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	quizRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestQuizService_CreateQuiz(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), new(MockCacheRepository))

	quizRepo.On("Create", mock.AnythingOfType("*entity.Quiz")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*entity.Quiz).ID = 1
		}).
		Return(nil)

	quiz, err := svc.CreateQuiz("Quiz du vendredi", "Soirée jeux", true, true)

	require.NoError(t, err)
	assert.Equal(t, uint(1), quiz.ID)
	assert.True(t, quiz.AutoApprove)
	// Новая викторина стартует с нулевым курсором
	assert.Equal(t, 0, quiz.ProgressIndex)
}

func TestQuizService_UpdateQuiz_InvalidatesCache(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cacheRepo := new(MockCacheRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), cacheRepo)

	quizRepo.On("UpdateInfo", uint(3), "New", "updated", true).Return(nil)
	quizRepo.On("GetByID", uint(3)).Return(&entity.Quiz{ID: 3, Name: "New", IsActive: true}, nil)
	cacheRepo.On("Delete", "quiz:catalog:3").Return(nil)

	quiz, err := svc.UpdateQuiz(3, "New", "updated", true)

	require.NoError(t, err)
	assert.Equal(t, "New", quiz.Name)
	assert.True(t, quiz.IsActive)
	cacheRepo.AssertExpectations(t)
}

func TestQuizService_UpdateQuiz_DoesNotTouchCursorOrPolicy(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cacheRepo := new(MockCacheRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), cacheRepo)

	// Админ начал редактирование, когда курсор был 5; пока форма была открыта,
	// игрок успел записать 9. Обновление пишет только name/description/is_active,
	// поэтому конкурентная запись курсора переживает сохранение.
	quizRepo.On("UpdateInfo", uint(1), "New name", "desc", true).Return(nil)
	quizRepo.On("GetByID", uint(1)).
		Return(&entity.Quiz{ID: 1, Name: "New name", IsActive: true, ProgressIndex: 9, AutoApprove: true}, nil)
	cacheRepo.On("Delete", "quiz:catalog:1").Return(nil)

	quiz, err := svc.UpdateQuiz(1, "New name", "desc", true)

	require.NoError(t, err)
	assert.Equal(t, 9, quiz.ProgressIndex)
	assert.True(t, quiz.AutoApprove)
	// Интерфейс репозитория не даёт обновлению админки передать
	// progress_index или auto_approve вовсе
	quizRepo.AssertExpectations(t)
}

func TestQuizService_UpdateQuiz_NotFound(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), new(MockCacheRepository))

	quizRepo.On("UpdateInfo", uint(99), "New", "", true).Return(apperrors.ErrNotFound)

	_, err := svc.UpdateQuiz(99, "New", "", true)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// Каталог и кеш
// ============================================================================

func TestQuizService_GetQuizWithCatalog_CacheHit(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cacheRepo := new(MockCacheRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), cacheRepo)

	cached := entity.Quiz{ID: 5, Name: "Cached quiz"}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	cacheRepo.On("GetJSON", "quiz:catalog:5", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*entity.Quiz)
			require.NoError(t, json.Unmarshal(payload, dest))
		}).
		Return(nil)

	quiz, err := svc.GetQuizWithCatalog(5)

	require.NoError(t, err)
	assert.Equal(t, "Cached quiz", quiz.Name)
	// При попадании в кеш БД не трогаем
	quizRepo.AssertNotCalled(t, "GetWithCatalog", mock.Anything)
}

func TestQuizService_GetQuizWithCatalog_CacheMiss(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cacheRepo := new(MockCacheRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), cacheRepo)

	cacheRepo.On("GetJSON", "quiz:catalog:5", mock.Anything).Return(apperrors.ErrNotFound)

	fromDB := &entity.Quiz{
		ID:   5,
		Name: "Fresh quiz",
		Cards: []entity.Card{
			{ID: 1, Text: "Une pomme", QuizID: 5},
		},
	}
	quizRepo.On("GetWithCatalog", uint(5)).Return(fromDB, nil)
	cacheRepo.On("SetJSON", "quiz:catalog:5", fromDB, catalogCacheTTL).Return(nil)

	quiz, err := svc.GetQuizWithCatalog(5)

	require.NoError(t, err)
	assert.Equal(t, "Fresh quiz", quiz.Name)
	require.Len(t, quiz.Cards, 1)
	cacheRepo.AssertExpectations(t)
}

// ============================================================================
// Курсор прогресса
// ============================================================================

func TestQuizService_SetProgress_Negative(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), new(MockCacheRepository))

	err := svc.SetProgress(1, -1)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	quizRepo.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything)
}

func TestQuizService_SetProgress(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cacheRepo := new(MockCacheRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), cacheRepo)

	// Абсолютная запись: сервис передаёт значение как есть, без чтения-модификации
	quizRepo.On("UpdateProgress", uint(1), 12).Return(nil)
	cacheRepo.On("Delete", "quiz:catalog:1").Return(nil)

	err := svc.SetProgress(1, 12)

	require.NoError(t, err)
	quizRepo.AssertExpectations(t)
	cacheRepo.AssertExpectations(t)
}

func TestQuizService_SetProgress_Reset(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cacheRepo := new(MockCacheRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), cacheRepo)

	// Сброс — это запись нуля, отдельной операции нет
	quizRepo.On("UpdateProgress", uint(1), 0).Return(nil)
	cacheRepo.On("Delete", "quiz:catalog:1").Return(nil)

	require.NoError(t, svc.SetProgress(1, 0))
}

func TestQuizService_SetProgress_QuizNotFound(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), new(MockCacheRepository))

	quizRepo.On("UpdateProgress", uint(99), 5).Return(apperrors.ErrNotFound)

	err := svc.SetProgress(99, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestQuizService_GetProgress(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), new(MockCacheRepository))

	quizRepo.On("GetByID", uint(1)).Return(&entity.Quiz{ID: 1, ProgressIndex: 42}, nil)

	index, err := svc.GetProgress(1)

	require.NoError(t, err)
	assert.Equal(t, 42, index)
}

// ============================================================================
// Авто-одобрение
// ============================================================================

func TestQuizService_SetAutoApprove(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cacheRepo := new(MockCacheRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), cacheRepo)

	quizRepo.On("UpdateAutoApprove", uint(2), true).Return(nil)
	cacheRepo.On("Delete", "quiz:catalog:2").Return(nil)

	require.NoError(t, svc.SetAutoApprove(2, true))
	quizRepo.AssertExpectations(t)
}

func TestQuizService_GetAutoApprove(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), new(MockCategoryRepository), new(MockCacheRepository))

	quizRepo.On("GetByID", uint(2)).Return(&entity.Quiz{ID: 2, AutoApprove: true}, nil)

	autoApprove, err := svc.GetAutoApprove(2)

	require.NoError(t, err)
	assert.True(t, autoApprove)
}

// ============================================================================
// Карточки и категории
// ============================================================================

func TestQuizService_AddCard(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cardRepo := new(MockCardRepository)
	cacheRepo := new(MockCacheRepository)
	svc := newQuizServiceForTest(quizRepo, cardRepo, new(MockCategoryRepository), cacheRepo)

	quizRepo.On("GetByID", uint(1)).Return(&entity.Quiz{ID: 1}, nil)
	cardRepo.On("Create", mock.AnythingOfType("*entity.Card")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*entity.Card).ID = 11
		}).
		Return(nil)
	cacheRepo.On("Delete", "quiz:catalog:1").Return(nil)

	card, err := svc.AddCard(1, "Un objet rouge")

	require.NoError(t, err)
	assert.Equal(t, uint(11), card.ID)
	assert.Equal(t, uint(1), card.QuizID)
}

func TestQuizService_AddCard_QuizNotFound(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cardRepo := new(MockCardRepository)
	svc := newQuizServiceForTest(quizRepo, cardRepo, new(MockCategoryRepository), new(MockCacheRepository))

	quizRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.AddCard(99, "Texte")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	cardRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestQuizService_DeleteCategory_InvalidatesOwnerCatalog(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	categoryRepo := new(MockCategoryRepository)
	cacheRepo := new(MockCacheRepository)
	svc := newQuizServiceForTest(quizRepo, new(MockCardRepository), categoryRepo, cacheRepo)

	categoryRepo.On("GetByID", uint(4)).Return(&entity.Category{ID: 4, Name: "Divers", QuizID: 2}, nil)
	categoryRepo.On("Delete", uint(4)).Return(nil)
	cacheRepo.On("Delete", "quiz:catalog:2").Return(nil)

	require.NoError(t, svc.DeleteCategory(4))
	cacheRepo.AssertExpectations(t)
}
