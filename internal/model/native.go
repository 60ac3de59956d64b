package model

import "strconv"

// Native представляет встроенный скалярный тип поля
type Native int

const (
	NativeInvalid Native = iota
	NativeString
	NativePath
	NativeChar
	NativeBool
	NativeInt
	NativeInt8
	NativeInt16
	NativeInt32
	NativeInt64
	NativeUint
	NativeUint8
	NativeUint16
	NativeUint32
	NativeUint64
	NativeFloat32
	NativeFloat64
	NativeDuration
)

var nativeNames = [...]string{
	NativeInvalid:  "invalid",
	NativeString:   "string",
	NativePath:     "path",
	NativeChar:     "char",
	NativeBool:     "bool",
	NativeInt:      "int",
	NativeInt8:     "int8",
	NativeInt16:    "int16",
	NativeInt32:    "int32",
	NativeInt64:    "int64",
	NativeUint:     "uint",
	NativeUint8:    "uint8",
	NativeUint16:   "uint16",
	NativeUint32:   "uint32",
	NativeUint64:   "uint64",
	NativeFloat32:  "float32",
	NativeFloat64:  "float64",
	NativeDuration: "duration",
}

// String возвращает каноническое имя типа
func (n Native) String() string {
	if n < 0 || int(n) >= len(nativeNames) {
		return "unknown"
	}
	return nativeNames[n]
}

// nativeAliases — допустимые написания типа в схеме.
// Имена в стиле Rust оставлены для схем, написанных под rclap.
var nativeAliases = map[string]Native{
	"string":   NativeString,
	"String":   NativeString,
	"str":      NativeString,
	"text":     NativeString,
	"OsString": NativeString,
	"path":     NativePath,
	"PathBuf":  NativePath,
	"pathbuf":  NativePath,
	"char":     NativeChar,
	"rune":     NativeChar,
	"bool":     NativeBool,
	"boolean":  NativeBool,
	"int":      NativeInt,
	"integer":  NativeInt,
	"isize":    NativeInt,
	"int8":     NativeInt8,
	"i8":       NativeInt8,
	"int16":    NativeInt16,
	"i16":      NativeInt16,
	"int32":    NativeInt32,
	"i32":      NativeInt32,
	"int64":    NativeInt64,
	"i64":      NativeInt64,
	"uint":     NativeUint,
	"usize":    NativeUint,
	"uint8":    NativeUint8,
	"u8":       NativeUint8,
	"byte":     NativeUint8,
	"uint16":   NativeUint16,
	"u16":      NativeUint16,
	"uint32":   NativeUint32,
	"u32":      NativeUint32,
	"uint64":   NativeUint64,
	"u64":      NativeUint64,
	"float":    NativeFloat64,
	"float32":  NativeFloat32,
	"f32":      NativeFloat32,
	"float64":  NativeFloat64,
	"f64":      NativeFloat64,
	"duration": NativeDuration,
}

// LookupNative ищет встроенный тип по имени из схемы (с учётом алиасов)
func LookupNative(name string) (Native, bool) {
	n, ok := nativeAliases[name]
	return n, ok
}

// IsText сообщает, хранится ли значение как строка
func (n Native) IsText() bool {
	return n == NativeString || n == NativePath
}

// IsSigned сообщает, является ли тип знаковым целым
func (n Native) IsSigned() bool {
	return n >= NativeInt && n <= NativeInt64
}

// IsUnsigned сообщает, является ли тип беззнаковым целым
func (n Native) IsUnsigned() bool {
	return n >= NativeUint && n <= NativeUint64
}

// IsFloat сообщает, является ли тип числом с плавающей точкой
func (n Native) IsFloat() bool {
	return n == NativeFloat32 || n == NativeFloat64
}

// Bits возвращает разрядность числового типа (0 для остальных)
func (n Native) Bits() int {
	switch n {
	case NativeInt8, NativeUint8:
		return 8
	case NativeInt16, NativeUint16:
		return 16
	case NativeInt32, NativeUint32, NativeFloat32:
		return 32
	case NativeInt64, NativeUint64, NativeFloat64, NativeDuration:
		return 64
	case NativeInt, NativeUint:
		return strconv.IntSize
	default:
		return 0
	}
}
