// Package password реализует функции для хеширования и проверки паролей.
//
// GetHash создает bcrypt-хеш пароля с заданной стоимостью.
// CompareHash сравнивает сохранённый bcrypt-хеш с введённым паролем.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost — стоимость bcrypt, с которой сервис хеширует пароли по умолчанию.
const DefaultCost = 6

// ErrMismatch возвращается CompareHash, если пароль не соответствует хешу.
var ErrMismatch = errors.New("password does not match hash")

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
//
// Стоимость вне диапазона bcrypt заменяется на DefaultCost.
func GetHash(password string, cost int) (string, error) {
	const op = "password.GetHash"
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, ErrMismatch при несовпадении
// и обёрнутую ошибку, если хеш повреждён.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
