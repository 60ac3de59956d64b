package argbind

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRequired — обязательное значение не пришло ни из флага, ни из окружения
	ErrMissingRequired = errors.New("не задано обязательное значение")
	// ErrDuplicateFlag — два поля претендуют на один флаг
	ErrDuplicateFlag = errors.New("флаг объявлен дважды")
	// ErrInvalidTarget — цель не указатель на структуру
	ErrInvalidTarget = errors.New("ожидался указатель на структуру")
	// ErrUnsupportedType — тип поля нельзя привязать к флагу
	ErrUnsupportedType = errors.New("неподдерживаемый тип поля")
)

// VariantError — значение enum вне списка вариантов
type VariantError struct {
	Value   string
	Allowed []string
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("недопустимое значение %q, возможные: %s", e.Value, strings.Join(e.Allowed, ", "))
}
