package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovanwin/flaggen/internal/model"
)

func TestGoType(t *testing.T) {
	tests := []struct {
		native   model.Native
		expected string
	}{
		{model.NativeString, "string"},
		{model.NativePath, "string"},
		{model.NativeChar, "argbind.Char"},
		{model.NativeBool, "bool"},
		{model.NativeInt, "int"},
		{model.NativeUint8, "uint8"},
		{model.NativeFloat32, "float32"},
		{model.NativeDuration, "time.Duration"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, goType(tt.native))
		})
	}
}

func TestScalarLiteral(t *testing.T) {
	tests := []struct {
		name     string
		native   model.Native
		raw      string
		wantGo   string
		wantText string
	}{
		{"строка", model.NativeString, `say "hi"`, `"say \"hi\""`, `say "hi"`},
		{"путь", model.NativePath, "/etc/app", `"/etc/app"`, "/etc/app"},
		{"символ", model.NativeChar, "xyz", "'x'", "x"},
		{"bool", model.NativeBool, "TRUE", "true", "true"},
		{"int", model.NativeInt, " 42 ", "42", "42"},
		{"int8 min", model.NativeInt8, "-128", "-128", "-128"},
		{"uint16", model.NativeUint16, "65535", "65535", "65535"},
		{"float целое", model.NativeFloat64, "3", "3.0", "3"},
		{"float дробное", model.NativeFloat64, "0.25", "0.25", "0.25"},
		{"float экспонента", model.NativeFloat64, "1e21", "1e+21", "1e+21"},
		{"секунды", model.NativeDuration, "30s", "30 * time.Second", "30s"},
		{"полторы секунды", model.NativeDuration, "1.5s", "1500 * time.Millisecond", "1.5s"},
		{"часы", model.NativeDuration, "2h", "2 * time.Hour", "2h0m0s"},
		{"ноль", model.NativeDuration, "0s", "0", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit, err := scalarLiteral(tt.native, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantGo, lit.Go)
			assert.Equal(t, tt.wantText, lit.Text)
		})
	}
}

func TestScalarLiteralMalformed(t *testing.T) {
	tests := []struct {
		name   string
		native model.Native
		raw    string
	}{
		{"пустой символ", model.NativeChar, ""},
		{"bool", model.NativeBool, "yes"},
		{"int", model.NativeInt, "ten"},
		{"int8 переполнение", model.NativeInt8, "128"},
		{"uint отрицательный", model.NativeUint, "-1"},
		{"float", model.NativeFloat64, "half"},
		{"бесконечность", model.NativeFloat64, "inf"},
		{"длительность без единиц", model.NativeDuration, "30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scalarLiteral(tt.native, tt.raw)
			assert.ErrorIs(t, err, ErrMalformedDefault)
		})
	}
}

func TestVectorLiteral(t *testing.T) {
	lit, err := vectorLiteral(model.NativeString, []any{"a", "b,c", `q"q`})
	require.NoError(t, err)
	assert.Equal(t, `[]string{"a", "b,c", "q\"q"}`, lit.Go)
	assert.Equal(t, `a,"b,c","q""q"`, lit.Text)

	lit, err = vectorLiteral(model.NativeDuration, []any{"1s", "1m"})
	require.NoError(t, err)
	assert.Equal(t, "[]time.Duration{1 * time.Second, 1 * time.Minute}", lit.Go)
	assert.Equal(t, "1s,1m0s", lit.Text)

	lit, err = vectorLiteral(model.NativeBool, []any{true, false})
	require.NoError(t, err)
	assert.Equal(t, "[]bool{true, false}", lit.Go)

	lit, err = vectorLiteral(model.NativeInt, []any{})
	require.NoError(t, err)
	assert.Equal(t, "[]int{}", lit.Go)
	assert.Equal(t, "", lit.Text)
}

func TestVectorLiteralMalformed(t *testing.T) {
	_, err := vectorLiteral(model.NativeBool, []any{"true"})
	assert.ErrorIs(t, err, ErrMalformedDefault)

	_, err = vectorLiteral(model.NativeInt, []any{1.5})
	assert.ErrorIs(t, err, ErrMalformedDefault)

	_, err = vectorLiteral(model.NativeInt8, []any{int64(1000)})
	assert.ErrorIs(t, err, ErrMalformedDefault)
}

func TestDurationLiteralOddNanoseconds(t *testing.T) {
	assert.Equal(t, "time.Duration(1001)", durationLiteral(1001))
	assert.Equal(t, "3 * time.Microsecond", durationLiteral(3000))
}
