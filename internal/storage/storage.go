// Package storage содержит ошибки слоя хранения, общие для всех реализаций репозитория.
package storage

import "errors"

var (
	// ErrUserNotFound — пользователь с заданным ключом отсутствует.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists — нарушена уникальность email пользователя.
	ErrUserExists = errors.New("user already exists")
	// ErrMealNotFound — приём пищи отсутствует или принадлежит другому пользователю.
	ErrMealNotFound = errors.New("meal not found")
)
