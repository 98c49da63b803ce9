package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrStaffIDNotFoundInContext = fmt.Errorf("StaffID не найден в контексте запроса")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Жизненный цикл ремонта
	ErrInvalidTransition    = fmt.Errorf("недопустимый переход статуса заявки на ремонт")
	ErrNotAssignedRepairer  = fmt.Errorf("завершить ремонт может только назначенный исполнитель")
	ErrUnknownPart          = fmt.Errorf("запчасть не найдена")
	ErrUnknownStaff         = fmt.Errorf("сотрудник не найден")
	ErrUnknownEquipment     = fmt.Errorf("оборудование не найдено")
	ErrPartInUse            = fmt.Errorf("запчасть используется в ремонтах и не может быть удалена")
	ErrPartNameTaken        = fmt.Errorf("запчасть с таким названием уже существует")
	ErrDuplicatePartInUsage = fmt.Errorf("запчасть указана в списке более одного раза")
)

// HttpError — ошибка с HTTP-статусом и сообщением для клиента.
// Err хранит исходную причину для логов, Details — структуру для тела ответа.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// StatusCode сопоставляет доменным ошибкам HTTP-статусы.
// Всё, что не перечислено, считается внутренней ошибкой (500).
var StatusCode = map[error]int{
	ErrEmptyAuthHeader:    http.StatusUnauthorized,
	ErrInvalidAuthHeader:  http.StatusUnauthorized,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrTokenExpired:       http.StatusUnauthorized,
	ErrTokenIsNotRefresh:  http.StatusUnauthorized,
	ErrTokenIsNotAccess:   http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,

	ErrNotFound:   http.StatusNotFound,
	ErrBadRequest: http.StatusBadRequest,

	ErrInvalidTransition:    http.StatusBadRequest,
	ErrNotAssignedRepairer:  http.StatusForbidden,
	ErrUnknownPart:          http.StatusBadRequest,
	ErrUnknownStaff:         http.StatusNotFound,
	ErrUnknownEquipment:     http.StatusNotFound,
	ErrPartInUse:            http.StatusConflict,
	ErrPartNameTaken:        http.StatusConflict,
	ErrDuplicatePartInUsage: http.StatusBadRequest,
}
