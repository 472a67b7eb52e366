package profileservice

import "errors"

var (
	// ErrProfileNotFound возвращается, когда у пользователя нет профиля
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("profileservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что ProfileService недоступен и данные автора запроса не дополняются
	ErrServiceDegraded = errors.New("profileservice unavailable: graceful degradation applied")
)
