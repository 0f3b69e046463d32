package models

import "github.com/pkg/errors"

// ValidationError - локальная ошибка проверки полей, до бекенда не доходит
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// NotFoundError - запись не найдена на бекенде
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{Msg: msg}
}

// RemoteError - транспортная или серверная ошибка,
// сообщение бекенда передается пользователю без изменений
type RemoteError struct {
	Msg string
}

func (e *RemoteError) Error() string {
	return e.Msg
}

func NewRemoteError(msg string) error {
	return &RemoteError{Msg: msg}
}

// BusyError - действие уже выполняется в рамках сессии
type BusyError struct {
	Action string
}

func (e *BusyError) Error() string {
	return "действие уже выполняется, дождитесь завершения"
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsRemoteError(err error) bool {
	var target *RemoteError
	return errors.As(err, &target)
}

func IsBusyError(err error) bool {
	var target *BusyError
	return errors.As(err, &target)
}
