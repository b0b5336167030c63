package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных
	// (отрицательный курсор, пустое имя пользователя, неизвестный статус,
	// карточка и категория из разных викторин).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState используется при попытке перевести заявку из терминального статуса.
	ErrInvalidState = errors.New("invalid state transition")

	// ErrUnauthorized используется для ошибок авторизации (неверный пароль, нет токена).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у вызывающего недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")
)
