package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, content string) *Document {
	t.Helper()
	doc, err := Decode([]byte(content))
	require.NoError(t, err)
	return doc
}

func TestMerge(t *testing.T) {
	a := mustDecode(t, `
host = { default = "localhost" }
port = { type = "int", default = "80" }
`)
	b := mustDecode(t, `
port = { default = "8080", env = "PORT" }
debug = { type = "bool" }
`)

	merged := Merge(a, b)

	assert.Equal(t, []string{"host", "port", "debug"}, merged.Root.Keys())

	port, ok := merged.Root.Table("port")
	require.True(t, ok)
	assert.Equal(t, []string{"type", "default", "env"}, port.Keys())
	def, _ := port.String("default")
	assert.Equal(t, "8080", def)
}

func TestMergeLastWriteWinsForScalars(t *testing.T) {
	a := mustDecode(t, `[server]
port = { type = "int" }
`)
	b := mustDecode(t, `server = "disabled"`)

	merged := Merge(a, b)

	v, ok := merged.Root.Get("server")
	require.True(t, ok)
	assert.Equal(t, "disabled", v)
}

func TestMergeNested(t *testing.T) {
	a := mustDecode(t, `
[db.primary]
url = { env = "DB_URL" }
`)
	b := mustDecode(t, `
[db.replica]
url = { env = "DB_REPLICA_URL" }
`)

	merged := Merge(a, b)

	db, ok := merged.Root.Table("db")
	require.True(t, ok)
	assert.Equal(t, []string{"primary", "replica"}, db.Keys())
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	a := mustDecode(t, `port = { default = "80" }`)
	b := mustDecode(t, `port = { default = "8080" }`)

	Merge(a, b)

	port, _ := a.Root.Table("port")
	def, _ := port.String("default")
	assert.Equal(t, "80", def)
}

func TestMergeSingleAndEmpty(t *testing.T) {
	assert.Nil(t, Merge())

	a := mustDecode(t, `port = { default = "80" }`)
	assert.Same(t, a, Merge(a))
}

func TestMergeComments(t *testing.T) {
	a := mustDecode(t, "# старый\nport = { default = \"80\" }\n")
	b := mustDecode(t, "# новый\nport = { default = \"8080\" }\n")

	merged := Merge(a, b)
	assert.Equal(t, "новый", merged.Comments["port"])
}
