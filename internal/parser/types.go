package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vovanwin/flaggen/internal/model"
)

// KindTag — вид поля, выбранный резолвером типов
type KindTag int

const (
	KindLeaf KindTag = iota
	KindVector
	KindEnum
	KindNested
	KindExternal
)

func (k KindTag) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindVector:
		return "vector"
	case KindEnum:
		return "enum"
	case KindNested:
		return "nested"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// TypeInfo — результат разрешения типа таблицы
type TypeInfo struct {
	Name     string       // Каноническое имя типа
	Kind     KindTag      // Вид поля
	Native   model.Native // Для KindLeaf — встроенный тип, для KindVector — тип элемента
	Inferred bool         // Тип не задан явно и выведен как string
}

// Зарезервированные ключи таблицы поля. Никогда не становятся дочерними полями.
const (
	keyType     = "type"
	keyEnum     = "enum"
	keyDefault  = "default"
	keyDoc      = "doc"
	keyEnv      = "env"
	keyOptional = "optional"
	keyLong     = "long"
	keyShort    = "short"
	keyVariants = "variants"
)

var reservedKeys = map[string]bool{
	keyType:     true,
	keyEnum:     true,
	keyDefault:  true,
	keyDoc:      true,
	keyEnv:      true,
	keyOptional: true,
	keyLong:     true,
	keyShort:    true,
}

// IsReserved сообщает, является ли ключ управляющим
func IsReserved(key string) bool {
	return reservedKeys[key]
}

// ResolveType определяет вид и имя типа поля. Порядок проверок фиксирован:
// явный type, затем enum, затем наличие вложенных таблиц, иначе string.
func ResolveType(t *Table, hasNested bool, name string) (TypeInfo, error) {
	if typeName, ok := t.String(keyType); ok {
		if inner, isVec := vectorElem(typeName); isVec {
			elem, native := model.LookupNative(inner)
			if !native {
				return TypeInfo{}, fmt.Errorf("%w: %q", ErrUnsupportedVector, inner)
			}
			return TypeInfo{Name: "[]" + elem.String(), Kind: KindVector, Native: elem}, nil
		}

		if n, native := model.LookupNative(typeName); native {
			return TypeInfo{Name: n.String(), Kind: KindLeaf, Native: n}, nil
		}
		if hasNested {
			return TypeInfo{Name: typeName, Kind: KindNested}, nil
		}
		return TypeInfo{Name: typeName, Kind: KindExternal}, nil
	}

	if enumName, ok := t.String(keyEnum); ok {
		return TypeInfo{Name: enumName, Kind: KindEnum}, nil
	}

	if hasNested {
		return TypeInfo{Name: PascalCase(name) + "Config", Kind: KindNested}, nil
	}

	return TypeInfo{Name: model.NativeString.String(), Kind: KindLeaf, Native: model.NativeString, Inferred: true}, nil
}

// vectorElem разбирает запись вида [int]
func vectorElem(typeName string) (string, bool) {
	s := strings.TrimSpace(typeName)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", false
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" || strings.ContainsAny(inner, ",[]") {
		return "", false
	}
	return inner, true
}

// PascalCase переводит в верхний регистр только первую букву:
// redis_config -> Redis_config. Остальные символы не трогаются.
func PascalCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
