package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// SubmissionService предоставляет методы журнала заявок и модерации
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
}

// NewSubmissionService создает новый сервис заявок
func NewSubmissionService(submissionRepo repository.SubmissionRepository) *SubmissionService {
	return &SubmissionService{submissionRepo: submissionRepo}
}

// CreateSubmission создает заявку игрока на классификацию карточки.
// Проверка ссылок и применение политики авто-одобрения выполняются
// одной атомарной операцией на стороне репозитория: при включённом
// авто-одобрении вызывающий сразу видит approved-заявку.
func (s *SubmissionService) CreateSubmission(userName string, cardID, categoryID uint) (*entity.Submission, error) {
	if strings.TrimSpace(userName) == "" {
		return nil, fmt.Errorf("%w: user name must not be empty", apperrors.ErrValidation)
	}

	sub := &entity.Submission{
		UserName:   userName,
		CardID:     cardID,
		CategoryID: categoryID,
	}

	if err := s.submissionRepo.CreateValidated(sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// SetStatus переводит заявку в терминальный статус approved или rejected.
// Повторный перевод уже терминальной заявки отклоняется с ErrInvalidState,
// запись при этом не изменяется.
func (s *SubmissionService) SetStatus(submissionID uint, status string) (*entity.Submission, error) {
	if !entity.IsValidTargetStatus(status) {
		return nil, fmt.Errorf("%w: unknown target status %q", apperrors.ErrValidation, status)
	}

	return s.submissionRepo.FinalizeStatus(submissionID, status)
}

// ListPendingGrouped возвращает pending-заявки, сгруппированные по имени категории,
// внутри группы — по возрастанию времени создания (модераторы смотрят старые первыми).
// Группировка намеренно идёт по имени, а не по id: одноимённые категории
// из разных викторин попадают в одну корзину.
func (s *SubmissionService) ListPendingGrouped() (map[string][]repository.PendingSubmission, error) {
	rows, err := s.submissionRepo.ListPending()
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]repository.PendingSubmission)
	for _, row := range rows {
		grouped[row.CategoryName] = append(grouped[row.CategoryName], row)
	}
	return grouped, nil
}

// ApproveAll одобряет все текущие pending-заявки последовательностью
// независимых переходов. Это best-effort батч: при ошибке на середине
// уже одобренные заявки остаются одобренными, возвращается число успешных
// переходов и первая ошибка. Повторный вызов доберёт оставшиеся.
func (s *SubmissionService) ApproveAll() (int, error) {
	ids, err := s.submissionRepo.ListPendingIDs()
	if err != nil {
		return 0, err
	}

	approved := 0
	for _, id := range ids {
		if _, err := s.submissionRepo.FinalizeStatus(id, entity.SubmissionStatusApproved); err != nil {
			// Гонка с другим модератором: заявка уже терминальна — не ошибка батча
			if errorsIsInvalidState(err) {
				log.Printf("[SubmissionService] Заявка #%d финализирована конкурентно, пропускаем", id)
				continue
			}
			return approved, fmt.Errorf("approve all stopped at submission #%d: %w", id, err)
		}
		approved++
	}
	return approved, nil
}

// RejectOne отклоняет одну заявку прямо из списка модерации
func (s *SubmissionService) RejectOne(submissionID uint) (*entity.Submission, error) {
	return s.submissionRepo.FinalizeStatus(submissionID, entity.SubmissionStatusRejected)
}
