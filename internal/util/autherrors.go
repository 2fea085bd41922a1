package util

import "fmt"

// Коды ошибок провайдера аутентификации. Строковые значения сохранены в
// формате auth/*, чтобы клиенты могли вести собственную таблицу
// соответствий.
const (
	AuthEmailAlreadyInUse    = "auth/email-already-in-use"
	AuthInvalidEmail         = "auth/invalid-email"
	AuthOperationNotAllowed  = "auth/operation-not-allowed"
	AuthWeakPassword         = "auth/weak-password"
	AuthUserDisabled         = "auth/user-disabled"
	AuthUserNotFound         = "auth/user-not-found"
	AuthWrongPassword        = "auth/wrong-password"
	AuthTooManyRequests      = "auth/too-many-requests"
	AuthNetworkRequestFailed = "auth/network-request-failed"
	AuthInvalidToken         = "auth/invalid-token"
)

// AuthError несёт код провайдера; в конверт ответа попадает только
// переведённое сообщение.
type AuthError struct {
	Code string
}

func (e *AuthError) Error() string {
	return e.Code
}

func NewAuthError(code string) *AuthError {
	return &AuthError{Code: code}
}

var authMessages = map[string]string{
	AuthEmailAlreadyInUse:    "Этот email уже используется",
	AuthInvalidEmail:         "Неверный формат email",
	AuthOperationNotAllowed:  "Операция не разрешена",
	AuthWeakPassword:         "Слишком простой пароль (минимум 6 символов)",
	AuthUserDisabled:         "Пользователь заблокирован",
	AuthUserNotFound:         "Пользователь не найден",
	AuthWrongPassword:        "Неверный пароль",
	AuthTooManyRequests:      "Слишком много попыток. Попробуйте позже",
	AuthNetworkRequestFailed: "Ошибка сети. Проверьте подключение к интернету",
	AuthInvalidToken:         "Недействительный токен входа",
}

// AuthErrorMessage переводит код в сообщение для пользователя;
// неизвестные коды получают общий текст с кодом внутри.
func AuthErrorMessage(code string) string {
	if msg, ok := authMessages[code]; ok {
		return msg
	}
	return fmt.Sprintf("Произошла ошибка: %s", code)
}
