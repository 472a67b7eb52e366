package allocate_room

import "errors"

var (
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrAttemptsExhausted все попытки записи проиграли гонку
	ErrAttemptsExhausted = errors.New("allocation attempts exhausted")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
