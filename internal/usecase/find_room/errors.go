package find_room

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("find_room: invalid input data")

	// ErrInternal возвращается, когда каталог недоступен
	ErrInternal = errors.New("find_room: internal error")
)
