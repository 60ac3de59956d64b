package generator

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const renderSchema = `
host = { default = "localhost", env = "APP_HOST", short = "H", doc = "Адрес сервера" }
port = { type = "u16", default = "8080" }
timeout = { type = "duration", default = "5s", optional = true }
tags = { type = "[string]", default = ["a", "b"], env = "APP_TAGS" }
level = { enum = "LogLevel", variants = ["debug", "info"], default = "info", doc = "Уровень логов" }
sep = { type = "char", default = "," }

[database]
url = { env = "DATABASE_URL" }
pool = { type = "int", default = "10" }
`

func renderFile(t *testing.T, src string) (string, *ast.File) {
	t.Helper()
	decls := generate(t, src)
	out, err := RenderGo(RenderOptions{Package: "config", Source: "flaggen.toml"}, decls)
	require.NoError(t, err, string(out))

	file, err := parser.ParseFile(token.NewFileSet(), "flaggen_config.go", out, parser.ParseComments)
	require.NoError(t, err, string(out))
	return string(out), file
}

func TestRenderGoCompilesToValidSource(t *testing.T) {
	out, file := renderFile(t, renderSchema)

	assert.Equal(t, "config", file.Name.Name)
	assert.True(t, strings.HasPrefix(out, "// Code generated by flaggen from flaggen.toml. DO NOT EDIT."))

	var imports []string
	for _, imp := range file.Imports {
		path, _ := strconv.Unquote(imp.Path.Value)
		imports = append(imports, path)
	}
	assert.ElementsMatch(t, []string{"os", "slices", "time", ArgbindImport}, imports)
}

func TestRenderGoDeclarations(t *testing.T) {
	out, _ := renderFile(t, renderSchema)

	for _, want := range []string{
		"type Config struct",
		"type DatabaseConfig struct",
		"type LogLevel string",
		`LogLeveldebug LogLevel = "debug"`,
		"func DefaultConfig() Config",
		"func DefaultDatabaseConfig() DatabaseConfig",
		"func ParseConfig() *Config",
		"func TryParseConfig() (*Config, error)",
		"func ParseConfigFrom(args []string) (*Config, error)",
		"func (e *LogLevel) Set(s string) error",
		"// Адрес сервера",
	} {
		assert.Contains(t, out, want)
	}
	assert.Regexp(t, `Timeout\s+\*time\.Duration`, out)
	assert.Regexp(t, `Database\s+DatabaseConfig`, out)
	assert.Regexp(t, `Sep\s+argbind\.Char`, out)
	assert.NotContains(t, out, "func ParseDatabaseConfig")
}

func TestRenderGoDefaults(t *testing.T) {
	out, _ := renderFile(t, renderSchema)

	for _, want := range []string{
		`Host:\s+"localhost",`,
		`Port:\s+8080,`,
		`Timeout:\s+argbind\.Ptr\[time\.Duration\]\(5 \* time\.Second\),`,
		`Tags:\s+\[\]string\{"a", "b"\},`,
		`Level:\s+LogLevelinfo,`,
		`Sep:\s+',',`,
		`Database:\s+DefaultDatabaseConfig\(\),`,
		`Pool:\s+10,`,
	} {
		assert.Regexp(t, want, out)
	}
}

func TestRenderGoStructTags(t *testing.T) {
	_, file := renderFile(t, renderSchema)

	tags := map[string]reflect.StructTag{}
	ast.Inspect(file, func(n ast.Node) bool {
		ts, ok := n.(*ast.TypeSpec)
		if !ok || ts.Name.Name != "Config" {
			return true
		}
		for _, f := range ts.Type.(*ast.StructType).Fields.List {
			raw, err := strconv.Unquote(f.Tag.Value)
			require.NoError(t, err)
			tags[f.Names[0].Name] = reflect.StructTag(raw)
		}
		return false
	})

	host := tags["Host"]
	assert.Equal(t, "host", host.Get("id"))
	assert.Equal(t, "Адрес сервера", host.Get("help"))
	assert.Equal(t, "localhost", host.Get("default"))
	assert.Equal(t, "APP_HOST", host.Get("env"))
	assert.Equal(t, "H", host.Get("short"))

	tagsField := tags["Tags"]
	assert.Equal(t, "a,b", tagsField.Get("default"))
	assert.Equal(t, ",", tagsField.Get("sep"))

	_, ok := tags["Level"].Lookup("enum")
	assert.True(t, ok)
	_, ok = tags["Database"].Lookup("flatten")
	assert.True(t, ok)
}

func TestStructTagWithBacktick(t *testing.T) {
	tag := structTag([]Attr{{Key: AttrID, Value: "x"}, {Key: AttrHelp, Value: "use `x`"}})
	raw, err := strconv.Unquote(tag)
	require.NoError(t, err)
	assert.Equal(t, "use `x`", reflect.StructTag(raw).Get("help"))
}

func TestRenderGoInvalidPackage(t *testing.T) {
	_, err := RenderGo(RenderOptions{Package: "my-config"}, nil)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestFormatComment(t *testing.T) {
	assert.Equal(t, "", formatComment(""))
	assert.Equal(t, "// одна строка", formatComment("одна строка"))
	assert.Equal(t, "// первая\n//\n// третья", formatComment("первая\n\nтретья"))
}
