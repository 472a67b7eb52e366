package profileservice

// Profile модель профиля пользователя из ProfileService
type Profile struct {
	UID        string `json:"uid"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
