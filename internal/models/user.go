// Package models содержит доменные структуры сервиса: пользователя,
// приём пищи и агрегированную статистику по диете.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string    `json:"id"`         // Уникальный идентификатор пользователя
	Name         string    `json:"name"`       // Имя пользователя
	Email        string    `json:"email"`      // Электронная почта, уникальна
	PasswordHash string    `json:"-"`          // Хэш пароля пользователя
	CreatedAt    time.Time `json:"created_at"` // Дата регистрации
	SessionID    *string   `json:"-"`          // Текущая сессия, nil до первого входа
}
