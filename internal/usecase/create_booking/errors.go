package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrRoomNotFound возвращается, когда комнаты нет в каталоге
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrRoomBusy возвращается, когда блокировку комнаты не удалось получить
	// Повторяемая ошибка, вызывающая сторона обрабатывает ее как конфликт
	ErrRoomBusy = errors.New("create_booking: room is busy")

	// ErrConflictOnCommit возвращается, когда к моменту записи комната оказалась занята или мала
	ErrConflictOnCommit = errors.New("create_booking: conflict on commit")

	// ErrPersistence возвращается при ошибке записи, транзакция откатывается целиком
	ErrPersistence = errors.New("create_booking: persistence error")
)

// IsRetryable возвращает true для ошибок, после которых имеет смысл повторить подбор
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflictOnCommit) || errors.Is(err, ErrRoomBusy)
}
