package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat — файл схемы не в формате TOML
	ErrUnsupportedFormat = errors.New("неподдерживаемый формат схемы, допустим только .toml")
	// ErrSyntax — синтаксическая ошибка документа
	ErrSyntax = errors.New("синтаксическая ошибка схемы")
	// ErrUnsupportedVector — элемент списка не встроенного типа
	ErrUnsupportedVector = errors.New("неподдерживаемый тип элемента списка")
)

// FieldError привязывает ошибку к id поля схемы
type FieldError struct {
	ID  string
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("поле %q: %v", e.ID, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
