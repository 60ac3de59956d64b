package generator

import "errors"

var (
	// ErrMalformedDefault — значение по умолчанию не приводится к типу поля
	ErrMalformedDefault = errors.New("некорректное значение по умолчанию")
	// ErrTypeConflict — одно имя типа объявлено дважды с разным содержимым
	ErrTypeConflict = errors.New("конфликт объявлений типа")
	// ErrInvalidName — имя нельзя использовать как идентификатор Go
	ErrInvalidName = errors.New("недопустимое имя")
)

// Ключи атрибутов привязки. Они же ключи struct-тегов в сгенерированном коде.
const (
	AttrID      = "id"
	AttrHelp    = "help"
	AttrDefault = "default"
	AttrEnv     = "env"
	AttrSep     = "sep"
	AttrLong    = "long"
	AttrShort   = "short"
	AttrEnum    = "enum"
	AttrFlatten = "flatten"
)

// RenameVerbatim — имена вариантов enum используются как есть
const RenameVerbatim = "verbatim"

// DeclKind — вид объявления
type DeclKind int

const (
	DeclStruct DeclKind = iota
	DeclEnum
)

func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// MarshalYAML пишет вид объявления строкой
func (k DeclKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Declaration — объявление типа: корневая или вложенная структура либо enum
type Declaration struct {
	Kind      DeclKind    `yaml:"kind"`
	Name      string      `yaml:"name"`
	Doc       string      `yaml:"doc,omitempty"`
	Root      bool        `yaml:"root,omitempty"`
	Fields    []FieldDecl `yaml:"fields,omitempty"`
	Variants  []string    `yaml:"variants,omitempty"`
	RenameAll string      `yaml:"rename_all,omitempty"`
}

// FieldDecl — поле структуры с атрибутами привязки в порядке объявления
type FieldDecl struct {
	Name     string `yaml:"name"`
	ID       string `yaml:"id,omitempty"`
	GoName   string `yaml:"go_name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional,omitempty"`
	Doc      string `yaml:"doc,omitempty"`
	Flatten  bool   `yaml:"flatten,omitempty"`
	Attrs    []Attr `yaml:"attrs"`
}

// Attr — один атрибут привязки. Literal заполнен только для default.
type Attr struct {
	Key     string `yaml:"key"`
	Value   string `yaml:"value,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// Attr ищет атрибут по ключу
func (f FieldDecl) Attr(key string) (Attr, bool) {
	for _, a := range f.Attrs {
		if a.Key == key {
			return a, true
		}
	}
	return Attr{}, false
}

// GoType возвращает тип поля с учётом опциональности
func (f FieldDecl) GoType() string {
	if f.Optional {
		return "*" + f.Type
	}
	return f.Type
}

// Keys возвращает ключи атрибутов по порядку
func (f FieldDecl) Keys() []string {
	keys := make([]string, 0, len(f.Attrs))
	for _, a := range f.Attrs {
		keys = append(keys, a.Key)
	}
	return keys
}
