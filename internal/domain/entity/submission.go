package entity

import (
	"time"
)

// Константы статусов заявки
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// Submission представляет попытку игрока отнести карточку к категории.
// Статус движется строго в одну сторону: pending → approved или pending → rejected.
// Терминальная запись неизменяема.
type Submission struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserName   string    `gorm:"size:100;not null" json:"user_name"`
	CardID     uint      `gorm:"not null;index" json:"card_id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Status     string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Timestamp  time.Time `gorm:"not null;autoCreateTime" json:"timestamp"`
}

// TableName определяет имя таблицы для GORM
func (Submission) TableName() string {
	return "submissions"
}

// IsPending проверяет, ожидает ли заявка модерации
func (s *Submission) IsPending() bool {
	return s.Status == SubmissionStatusPending
}

// IsTerminal проверяет, достигла ли заявка терминального статуса
func (s *Submission) IsTerminal() bool {
	return s.Status == SubmissionStatusApproved || s.Status == SubmissionStatusRejected
}

// IsValidTargetStatus проверяет, допустим ли target как цель перехода из pending
func IsValidTargetStatus(target string) bool {
	return target == SubmissionStatusApproved || target == SubmissionStatusRejected
}
