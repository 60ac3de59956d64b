package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovanwin/flaggen/internal/model"
	"github.com/vovanwin/flaggen/internal/parser"
)

func resolveSchema(t *testing.T, src string) *model.Tree {
	t.Helper()
	doc, err := parser.Decode([]byte(src))
	require.NoError(t, err)
	tree, err := parser.ResolveTree(doc, parser.ResolveOptions{})
	require.NoError(t, err)
	return tree
}

func generate(t *testing.T, src string) []Declaration {
	t.Helper()
	decls, err := Generate(resolveSchema(t, src), "Config")
	require.NoError(t, err)
	return decls
}

func fieldNamed(t *testing.T, d Declaration, name string) FieldDecl {
	t.Helper()
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("поле %s не найдено в %s", name, d.Name)
	return FieldDecl{}
}

func declNames(decls []Declaration) []string {
	names := make([]string, 0, len(decls))
	for _, d := range decls {
		names = append(names, d.Name)
	}
	return names
}

func TestGenerateSimpleScalars(t *testing.T) {
	decls := generate(t, `
port = { type = "u16", default = "8080", env = "PORT", doc = "Server port", short = "p" }
host = { type = "string", default = "localhost" }
`)

	require.Len(t, decls, 1)
	root := decls[0]
	assert.True(t, root.Root)
	assert.Equal(t, DeclStruct, root.Kind)
	assert.Equal(t, "Config", root.Name)

	port := fieldNamed(t, root, "port")
	assert.Equal(t, "Port", port.GoName)
	assert.Equal(t, "uint16", port.Type)
	assert.Equal(t, []string{"id", "help", "default", "env", "long", "short"}, port.Keys())

	def, _ := port.Attr(AttrDefault)
	assert.Equal(t, "8080", def.Value)
	assert.Equal(t, "8080", def.Literal)
	short, _ := port.Attr(AttrShort)
	assert.Equal(t, "p", short.Value)

	host := fieldNamed(t, root, "host")
	assert.Equal(t, []string{"id", "default", "long"}, host.Keys())
	def, _ = host.Attr(AttrDefault)
	assert.Equal(t, `"localhost"`, def.Literal)
	long, _ := host.Attr(AttrLong)
	assert.Equal(t, "host", long.Value)
}

func TestGenerateNestedOrder(t *testing.T) {
	decls := generate(t, `
name = { default = "app" }

[database]
url = { env = "DB_URL" }

[database.primary]
host = { default = "db1" }

[database.replica]
host = { default = "db2" }

[cache]
ttl = { type = "duration", default = "30s" }
`)

	assert.Equal(t, []string{"Config", "DatabaseConfig", "PrimaryConfig", "ReplicaConfig", "CacheConfig"}, declNames(decls))

	db := fieldNamed(t, decls[0], "database")
	assert.True(t, db.Flatten)
	assert.Equal(t, "DatabaseConfig", db.Type)
	assert.Equal(t, []string{"flatten"}, db.Keys())

	url := fieldNamed(t, decls[1], "url")
	id, _ := url.Attr(AttrID)
	assert.Equal(t, "database.url", id.Value)
	long, _ := url.Attr(AttrLong)
	assert.Equal(t, "database.url", long.Value)
}

func TestGenerateEnum(t *testing.T) {
	decls := generate(t, `
[level]
enum = "LogLevel"
variants = ["debug", "info", "warn"]
default = "info"
env = "LOG_LEVEL"
doc = "Log level"
`)

	require.Len(t, decls, 2)
	enum := decls[1]
	assert.Equal(t, DeclEnum, enum.Kind)
	assert.Equal(t, "LogLevel", enum.Name)
	assert.Equal(t, []string{"debug", "info", "warn"}, enum.Variants)
	assert.Equal(t, RenameVerbatim, enum.RenameAll)

	level := fieldNamed(t, decls[0], "level")
	assert.Equal(t, "LogLevel", level.Type)
	assert.Equal(t, []string{"id", "help", "enum", "default", "env", "long"}, level.Keys())
	def, _ := level.Attr(AttrDefault)
	assert.Equal(t, "info", def.Value)
	assert.Equal(t, "LogLevelinfo", def.Literal)
}

func TestGenerateEnumDefaultNotInVariants(t *testing.T) {
	_, err := Generate(resolveSchema(t, `
level = { enum = "LogLevel", variants = ["debug", "info"], default = "trace" }
`), "Config")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedDefault)

	var fe *parser.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "level", fe.ID)
}

func TestGenerateExternalEnum(t *testing.T) {
	decls := generate(t, `
mode = { enum = "modes.Mode", default = "fast" }
`)

	require.Len(t, decls, 1, "enum без вариантов не объявляется")
	mode := fieldNamed(t, decls[0], "mode")
	def, _ := mode.Attr(AttrDefault)
	assert.Equal(t, `modes.Mode("fast")`, def.Literal)
}

func TestGenerateSharedEnumEmittedOnce(t *testing.T) {
	decls := generate(t, `
in = { enum = "Format", variants = ["json", "text"] }
out = { enum = "Format", variants = ["json", "text"] }
`)
	assert.Equal(t, []string{"Config", "Format"}, declNames(decls))
}

func TestGenerateTypeConflict(t *testing.T) {
	tests := []struct {
		name   string
		schema string
	}{
		{"разные варианты enum", `
in = { enum = "Format", variants = ["json"] }
out = { enum = "Format", variants = ["text"] }
`},
		{"enum и структура", `
fmt = { enum = "ServerConfig", variants = ["a"] }
[server]
port = { type = "int" }
`},
		{"две структуры", `
[a.server]
port = { type = "int" }
[b.server]
port = { type = "int" }
`},
		{"корневой тип", `
[cfg]
type = "Config"
port = { type = "int" }
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(resolveSchema(t, tt.schema), "Config")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTypeConflict)
		})
	}
}

func TestGenerateExternalStruct(t *testing.T) {
	decls := generate(t, `
[tls]
type = "tlsconf.Settings"
`)

	require.Len(t, decls, 1)
	tls := fieldNamed(t, decls[0], "tls")
	assert.True(t, tls.Flatten)
	assert.False(t, tls.Optional)
	assert.Equal(t, "tlsconf.Settings", tls.Type)
	assert.Equal(t, []string{"flatten"}, tls.Keys())
}

func TestGenerateVector(t *testing.T) {
	decls := generate(t, `
ports = { type = "[u16]", default = [80, 443], env = "PORTS" }
ratios = { type = "[f64]", default = [1, 0.5] }
names = { type = "[string]" }
`)

	ports := fieldNamed(t, decls[0], "ports")
	assert.Equal(t, "[]uint16", ports.Type)
	assert.Equal(t, []string{"id", "default", "env", "sep", "long"}, ports.Keys())
	def, _ := ports.Attr(AttrDefault)
	assert.Equal(t, "80,443", def.Value)
	assert.Equal(t, "[]uint16{80, 443}", def.Literal)
	sep, _ := ports.Attr(AttrSep)
	assert.Equal(t, ",", sep.Value)

	ratios := fieldNamed(t, decls[0], "ratios")
	def, _ = ratios.Attr(AttrDefault)
	assert.Equal(t, "[]float64{1.0, 0.5}", def.Literal)

	names := fieldNamed(t, decls[0], "names")
	assert.Equal(t, []string{"id", "long"}, names.Keys())
}

func TestGenerateVectorMalformedDefault(t *testing.T) {
	tests := []struct {
		name   string
		schema string
	}{
		{"строка в списке чисел", `ports = { type = "[int]", default = ["80"] }`},
		{"выход за диапазон", `ports = { type = "[u8]", default = [300] }`},
		{"отрицательное беззнаковое", `ports = { type = "[u16]", default = [-1] }`},
		{"не массив", `ports = { type = "[int]", default = "80" }`},
		{"число в списке строк", `names = { type = "[string]", default = [1] }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(resolveSchema(t, tt.schema), "Config")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedDefault)
		})
	}
}

func TestGenerateOptional(t *testing.T) {
	decls := generate(t, `
timeout = { type = "duration", optional = true, default = "5s" }
[db]
optional = true
url = { }
`)

	timeout := fieldNamed(t, decls[0], "timeout")
	assert.True(t, timeout.Optional)
	assert.Equal(t, "*time.Duration", timeout.GoType())

	db := fieldNamed(t, decls[0], "db")
	assert.False(t, db.Optional)
}

func TestGenerateInvalidNames(t *testing.T) {
	tests := []struct {
		name   string
		schema string
	}{
		{"поле с цифры", `1port = { type = "int" }`},
		{"enum с дефисом", `level = { enum = "Log-Level", variants = ["a"] }`},
		{"вариант с дефисом", `level = { enum = "LogLevel", variants = ["very-high"] }`},
		{"внешний тип с пробелом", `
[tls]
type = "tls config"
`},
		{"одинаковые имена Go", `
a_b = { }
a-b = { }
`},
		{"enum с вариантами из другого пакета", `level = { enum = "log.Level", variants = ["a"] }`},
		{"короткий флаг не ASCII", `name = { short = "é" }`},
		{"короткий флаг списка не ASCII", `tags = { type = "[string]", short = "я" }`},
		{"короткий флаг enum не ASCII", `level = { enum = "Level", variants = ["a"], short = "ü" }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(resolveSchema(t, tt.schema), "Config")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestGenerateShortFlag(t *testing.T) {
	decls := generate(t, `name = { short = "n" }`)
	short, ok := fieldNamed(t, decls[0], "name").Attr(AttrShort)
	require.True(t, ok)
	assert.Equal(t, "n", short.Value)

	_, err := Generate(resolveSchema(t, `
[server]
host = { short = "é" }
`), "Config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.host")
}

func TestGenerateInvalidRootName(t *testing.T) {
	_, err := Generate(&model.Tree{}, "config")
	assert.ErrorIs(t, err, ErrInvalidName)

	decls, err := Generate(&model.Tree{}, "Args")
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Empty(t, decls[0].Fields)
}

func TestGenerateCharAndBool(t *testing.T) {
	decls := generate(t, `
sep = { type = "char", default = "|" }
verbose = { type = "bool", default = true }
`)

	sep := fieldNamed(t, decls[0], "sep")
	assert.Equal(t, "argbind.Char", sep.Type)
	def, _ := sep.Attr(AttrDefault)
	assert.Equal(t, "'|'", def.Literal)

	verbose := fieldNamed(t, decls[0], "verbose")
	def, _ = verbose.Attr(AttrDefault)
	assert.Equal(t, "true", def.Value)
}

func TestGenerateScalarMalformedDefault(t *testing.T) {
	_, err := Generate(resolveSchema(t, `port = { type = "u16", default = "http" }`), "Config")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedDefault)

	var fe *parser.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "port", fe.ID)
}

func TestGenerateDeterministic(t *testing.T) {
	src := `
[server]
host = { default = "0.0.0.0" }
[server.tls]
cert = { type = "path" }
level = { enum = "Level", variants = ["a", "b"] }
`
	first := generate(t, src)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, generate(t, src))
	}
}
