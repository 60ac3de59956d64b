package generator

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovanwin/flaggen/internal/model"
)

// literal — значение по умолчанию в двух формах: выражение Go для
// конструктора и текст для struct-тега
type literal struct {
	Go   string
	Text string
}

// goType возвращает Go тип для встроенного типа схемы
func goType(n model.Native) string {
	switch n {
	case model.NativeString, model.NativePath:
		return "string"
	case model.NativeChar:
		return "argbind.Char"
	case model.NativeDuration:
		return "time.Duration"
	default:
		return n.String()
	}
}

// scalarLiteral приводит строковое значение по умолчанию к типу поля
func scalarLiteral(n model.Native, raw string) (literal, error) {
	switch {
	case n == model.NativeString || n == model.NativePath:
		return literal{Go: strconv.Quote(raw), Text: raw}, nil
	case n == model.NativeChar:
		r, size := utf8.DecodeRuneInString(raw)
		if size == 0 || r == utf8.RuneError {
			return literal{}, fmt.Errorf("%w: ожидался символ, получено %q", ErrMalformedDefault, raw)
		}
		return literal{Go: strconv.QuoteRune(r), Text: string(r)}, nil
	case n == model.NativeBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return literal{}, fmt.Errorf("%w: ожидался bool, получено %q", ErrMalformedDefault, raw)
		}
		s := strconv.FormatBool(v)
		return literal{Go: s, Text: s}, nil
	case n.IsSigned():
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, n.Bits())
		if err != nil {
			return literal{}, fmt.Errorf("%w: ожидался %s, получено %q", ErrMalformedDefault, n, raw)
		}
		s := strconv.FormatInt(v, 10)
		return literal{Go: s, Text: s}, nil
	case n.IsUnsigned():
		v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, n.Bits())
		if err != nil {
			return literal{}, fmt.Errorf("%w: ожидался %s, получено %q", ErrMalformedDefault, n, raw)
		}
		s := strconv.FormatUint(v, 10)
		return literal{Go: s, Text: s}, nil
	case n.IsFloat():
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), n.Bits())
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return literal{}, fmt.Errorf("%w: ожидался %s, получено %q", ErrMalformedDefault, n, raw)
		}
		return literal{Go: floatLiteral(v, n.Bits()), Text: strconv.FormatFloat(v, 'g', -1, n.Bits())}, nil
	case n == model.NativeDuration:
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return literal{}, fmt.Errorf("%w: ожидалась длительность, получено %q", ErrMalformedDefault, raw)
		}
		return literal{Go: durationLiteral(d), Text: d.String()}, nil
	default:
		return literal{}, fmt.Errorf("%w: неизвестный тип %s", ErrMalformedDefault, n)
	}
}

// vectorLiteral приводит массив из схемы к литералу слайса.
// Элементы проверяются строго: строка не становится числом.
func vectorLiteral(elem model.Native, raw any) (literal, error) {
	items, ok := raw.([]any)
	if !ok {
		return literal{}, fmt.Errorf("%w: ожидался массив, получен %T", ErrMalformedDefault, raw)
	}

	goItems := make([]string, 0, len(items))
	textItems := make([]string, 0, len(items))
	for i, item := range items {
		lit, err := elemLiteral(elem, item)
		if err != nil {
			return literal{}, fmt.Errorf("элемент %d: %w", i, err)
		}
		goItems = append(goItems, lit.Go)
		textItems = append(textItems, lit.Text)
	}

	text, err := joinCSV(textItems)
	if err != nil {
		return literal{}, fmt.Errorf("%w: %w", ErrMalformedDefault, err)
	}

	return literal{
		Go:   "[]" + goType(elem) + "{" + strings.Join(goItems, ", ") + "}",
		Text: text,
	}, nil
}

func elemLiteral(elem model.Native, item any) (literal, error) {
	switch {
	case elem == model.NativeBool:
		v, ok := item.(bool)
		if !ok {
			return literal{}, mismatch(elem, item)
		}
		return scalarLiteral(elem, strconv.FormatBool(v))
	case elem.IsSigned() || elem.IsUnsigned():
		v, ok := item.(int64)
		if !ok {
			return literal{}, mismatch(elem, item)
		}
		return scalarLiteral(elem, strconv.FormatInt(v, 10))
	case elem.IsFloat():
		switch v := item.(type) {
		case float64:
			return scalarLiteral(elem, strconv.FormatFloat(v, 'g', -1, 64))
		case int64:
			return scalarLiteral(elem, strconv.FormatInt(v, 10))
		default:
			return literal{}, mismatch(elem, item)
		}
	default:
		v, ok := item.(string)
		if !ok {
			return literal{}, mismatch(elem, item)
		}
		return scalarLiteral(elem, v)
	}
}

func mismatch(elem model.Native, item any) error {
	return fmt.Errorf("%w: ожидался %s, получен %T", ErrMalformedDefault, elem, item)
}

// floatLiteral печатает число так, чтобы константа оставалась float
func floatLiteral(v float64, bits int) string {
	s := strconv.FormatFloat(v, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// durationLiteral выбирает самую крупную единицу, на которую делится d
func durationLiteral(d time.Duration) string {
	if d == 0 {
		return "0"
	}
	units := []struct {
		unit time.Duration
		name string
	}{
		{time.Hour, "time.Hour"},
		{time.Minute, "time.Minute"},
		{time.Second, "time.Second"},
		{time.Millisecond, "time.Millisecond"},
		{time.Microsecond, "time.Microsecond"},
	}
	for _, u := range units {
		if d%u.unit == 0 {
			return strconv.FormatInt(int64(d/u.unit), 10) + " * " + u.name
		}
	}
	return "time.Duration(" + strconv.FormatInt(int64(d), 10) + ")"
}

// joinCSV склеивает элементы в одну CSV-строку, как её читает pflag
func joinCSV(items []string) (string, error) {
	if len(items) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(items); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
