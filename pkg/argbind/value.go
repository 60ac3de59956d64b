package argbind

import (
	"encoding/csv"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/pflag"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	charType     = reflect.TypeOf(Char(0))
	pflagType    = reflect.TypeOf((*pflag.Value)(nil)).Elem()
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// fieldValue — pflag.Value поверх поля структуры.
// Указатели выделяются при первой записи, слайсы заменяются при первой
// записи после reset и дальше дополняются.
type fieldValue struct {
	field     reflect.Value
	appending bool
}

func newFieldValue(field reflect.Value) (*fieldValue, error) {
	t := field.Type()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Slice && !implementsValue(t) {
		t = t.Elem()
	}
	if !supported(t) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, field.Type())
	}
	return &fieldValue{field: field}, nil
}

func supported(t reflect.Type) bool {
	if implementsValue(t) || t == durationType || t == charType {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func implementsValue(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(pflagType)
}

// valueType — тип значения без указателя опционального поля
func (v *fieldValue) valueType() reflect.Type {
	t := v.field.Type()
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

func (v *fieldValue) isSlice() bool {
	t := v.valueType()
	return t.Kind() == reflect.Slice && !implementsValue(t)
}

func (v *fieldValue) isBool() bool {
	return v.valueType().Kind() == reflect.Bool && !implementsValue(v.valueType())
}

func (v *fieldValue) isOptional() bool {
	return v.field.Kind() == reflect.Pointer
}

func (v *fieldValue) target() reflect.Value {
	if v.field.Kind() != reflect.Pointer {
		return v.field
	}
	if v.field.IsNil() {
		v.field.Set(reflect.New(v.field.Type().Elem()))
	}
	return v.field.Elem()
}

// reset — следующая запись в слайс заменит его содержимое
func (v *fieldValue) reset() {
	v.appending = false
}

func (v *fieldValue) Set(s string) error {
	if !v.isSlice() {
		return setScalar(v.target(), s)
	}

	items, err := splitCSV(s)
	if err != nil {
		return err
	}
	if !v.appending {
		slice := v.target()
		slice.Set(reflect.MakeSlice(slice.Type(), 0, len(items)))
		v.appending = true
	}
	for _, item := range items {
		if err := v.appendOne(item); err != nil {
			return err
		}
	}
	return nil
}

// appendOne добавляет один элемент без разбора CSV
func (v *fieldValue) appendOne(s string) error {
	slice := v.target()
	if !v.appending {
		slice.Set(reflect.MakeSlice(slice.Type(), 0, 1))
		v.appending = true
	}
	elem := reflect.New(slice.Type().Elem()).Elem()
	if err := setScalar(elem, s); err != nil {
		return err
	}
	slice.Set(reflect.Append(slice, elem))
	return nil
}

func (v *fieldValue) String() string {
	rv := v.field
	if !rv.IsValid() {
		return ""
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if v.isSlice() {
		items := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items = append(items, formatScalar(rv.Index(i)))
		}
		return "[" + strings.Join(items, ",") + "]"
	}
	return formatScalar(rv)
}

func (v *fieldValue) Type() string {
	t := v.valueType()
	if v.isSlice() {
		return scalarType(t.Elem()) + "s"
	}
	return scalarType(t)
}

func scalarType(t reflect.Type) string {
	switch {
	case implementsValue(t):
		return reflect.New(t).Interface().(pflag.Value).Type()
	case t == durationType:
		return "duration"
	case t == charType:
		return "char"
	default:
		return t.Kind().String()
	}
}

func setScalar(rv reflect.Value, s string) error {
	if rv.CanAddr() {
		if pv, ok := rv.Addr().Interface().(pflag.Value); ok {
			return pv.Set(s)
		}
	}

	t := rv.Type()
	switch {
	case t == durationType:
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		rv.SetInt(int64(d))
		return nil
	case t == charType:
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) || r == utf8.RuneError {
			return fmt.Errorf("ожидался один символ, получено %q", s)
		}
		rv.SetInt(int64(r))
		return nil
	}

	switch t.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 0, t.Bits())
		if err != nil {
			return err
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 0, t.Bits())
		if err != nil {
			return err
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return err
		}
		rv.SetFloat(f)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	return nil
}

func formatScalar(rv reflect.Value) string {
	t := rv.Type()
	if t == charType {
		return Char(rv.Int()).String()
	}
	if t.Implements(stringerType) {
		return rv.Interface().(fmt.Stringer).String()
	}
	if rv.CanAddr() && reflect.PointerTo(t).Implements(stringerType) {
		return rv.Addr().Interface().(fmt.Stringer).String()
	}
	return fmt.Sprint(rv.Interface())
}

// splitCSV разбирает значение флага-списка так же, как pflag StringSlice
func splitCSV(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	r := csv.NewReader(strings.NewReader(s))
	items, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("разбор списка %q: %w", s, err)
	}
	return items, nil
}
