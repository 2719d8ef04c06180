// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: бизнес-ошибок, ошибок
// валидации и внутренних ошибок сервера.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

const (
	// MsgValidation — сообщение ответа с ошибками валидации.
	MsgValidation = "Data validation error"
	// MsgInternal — сообщение ответа при внутренней ошибке.
	MsgInternal = "Internal Server Error"
	// MsgUnauthorized — сообщение ответа при отсутствии cookie сессии.
	MsgUnauthorized = "You're not authorized to do this action"
	// MsgTooManyRequests — сообщение ответа при превышении лимита запросов.
	MsgTooManyRequests = "Too Many Requests"

	// RootIssue — ключ для ошибок, не относящихся к конкретному полю.
	RootIssue = "_errors"
)

// ErrorResponse — ответ с сообщением об ошибке.
type ErrorResponse struct {
	Message string `json:"message" example:"User already exists!"`
}

// UnauthorizedResponse — ответ на запрос без cookie сессии.
type UnauthorizedResponse struct {
	Status  string `json:"status" example:"Unauthorized"`
	Message string `json:"message" example:"You're not authorized to do this action"`
}

// ValidationResponse — ответ с ошибками валидации тела запроса.
// Issues сопоставляет имени поля в JSON список причин.
type ValidationResponse struct {
	Message string              `json:"message" example:"Data validation error"`
	Issues  map[string][]string `json:"issues"`
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Message: msg}
}

// Internal возвращает ответ для внутренней ошибки сервера.
func Internal() ErrorResponse {
	return ErrorResponse{Message: MsgInternal}
}

// Unauthorized возвращает ответ для запроса без сессии.
func Unauthorized() UnauthorizedResponse {
	return UnauthorizedResponse{
		Status:  "Unauthorized",
		Message: MsgUnauthorized,
	}
}

// NewValidator создает валидатор, который называет поля по их json-тегам.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationError формирует ValidationResponse на основе ошибок валидации.
// Каждое нарушение превращается в человеко‑читаемую причину у своего поля.
func ValidationError(errs validator.ValidationErrors) ValidationResponse {
	issues := make(map[string][]string, len(errs))
	for _, err := range errs {
		var msg string
		switch err.ActualTag() {
		case "required":
			msg = "Required"
		case "email":
			msg = "Invalid email"
		case "min":
			msg = fmt.Sprintf("String must contain at least %s character(s)", err.Param())
		default:
			msg = fmt.Sprintf("Failed on %s", err.ActualTag())
		}
		issues[err.Field()] = append(issues[err.Field()], msg)
	}
	return ValidationResponse{
		Message: MsgValidation,
		Issues:  issues,
	}
}

// DecodeError формирует ValidationResponse для тела, которое не удалось разобрать.
// Несовпадение типа поля относится к этому полю, остальные ошибки к RootIssue.
func DecodeError(err error) ValidationResponse {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return ValidationResponse{
			Message: MsgValidation,
			Issues: map[string][]string{
				typeErr.Field: {fmt.Sprintf("Expected %s, received %s", typeErr.Type.Kind(), typeErr.Value)},
			},
		}
	}
	return ValidationResponse{
		Message: MsgValidation,
		Issues:  map[string][]string{RootIssue: {"invalid JSON body"}},
	}
}
