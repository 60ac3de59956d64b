package model

// FieldSpec описывает одно разрешённое поле конфигурации
type FieldSpec struct {
	Name     string  // Ключ из схемы
	ID       string  // Полный путь через точку (database.primary.url)
	TypeName string  // Имя типа: встроенный тег, []тег, enum, вложенная или внешняя структура
	Doc      string  // Описание поля, пустое если не задано
	Optional bool    // Поле может отсутствовать
	Variant  Variant // Вид поля
}

// Variant — закрытое множество видов поля.
// Реализации: Leaf, Vector, Enum, Nested, External.
type Variant interface {
	variant()
}

// Binding — общие метаданные привязки к флагам и окружению
type Binding struct {
	Env   string // Имя переменной окружения
	Long  string // Длинный флаг, пустой если не задан
	Short rune   // Короткий флаг, 0 если не задан
}

// Leaf — скалярное поле встроенного типа
type Leaf struct {
	Binding
	Native  Native
	Default *string
}

// Vector — однородный список значений встроенного типа
type Vector struct {
	Binding
	Elem    Native
	Default any // Сырое значение из схемы, nil если не задано
}

// Enum — поле с перечислимым набором значений
type Enum struct {
	Binding
	Name     string
	Variants []string // Пустой список — enum определён вне схемы
	Default  *string
}

// Nested — вложенная таблица, которая становится отдельной структурой
type Nested struct {
	Fields []FieldSpec
}

// External — таблица, тип которой определён вне схемы
type External struct {
	Long  string
	Short rune
}

func (Leaf) variant()     {}
func (Vector) variant()   {}
func (Enum) variant()     {}
func (Nested) variant()   {}
func (External) variant() {}

// Tree — результат разрешения схемы
type Tree struct {
	Fields      []FieldSpec
	Diagnostics []Diagnostic
}

// Walk обходит поля в прямом порядке. Если fn возвращает false,
// потомки поля не посещаются.
func (t *Tree) Walk(fn func(f *FieldSpec) bool) {
	walkFields(t.Fields, fn)
}

func walkFields(fields []FieldSpec, fn func(f *FieldSpec) bool) {
	for i := range fields {
		f := &fields[i]
		if !fn(f) {
			continue
		}
		if n, ok := f.Variant.(Nested); ok {
			walkFields(n.Fields, fn)
		}
	}
}

// Field ищет поле по полному id
func (t *Tree) Field(id string) (*FieldSpec, bool) {
	var found *FieldSpec
	t.Walk(func(f *FieldSpec) bool {
		if found != nil {
			return false
		}
		if f.ID == id {
			found = f
			return false
		}
		return true
	})
	return found, found != nil
}

// KindName возвращает короткое имя вида поля для сообщений и манифеста
func KindName(v Variant) string {
	switch v.(type) {
	case Leaf:
		return "leaf"
	case Vector:
		return "vector"
	case Enum:
		return "enum"
	case Nested:
		return "nested"
	case External:
		return "external"
	default:
		return "unknown"
	}
}
