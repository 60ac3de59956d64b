package argbind

// Char — значение флага из одного символа
type Char rune

func (c Char) String() string {
	if c == 0 {
		return ""
	}
	return string(rune(c))
}

// Ptr возвращает указатель на копию v. Нужен для значений по умолчанию
// опциональных полей.
func Ptr[T any](v T) *T {
	return &v
}
