package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRenderManifest(t *testing.T) {
	decls := generate(t, `
port = { type = "int", default = "80", env = "PORT" }
level = { enum = "Level", variants = ["low", "high"] }
[db]
url = { }
`)

	out, err := RenderManifest(decls)
	require.NoError(t, err)

	var got struct {
		Version      int    `yaml:"version"`
		Root         string `yaml:"root"`
		Declarations []struct {
			Kind     string   `yaml:"kind"`
			Name     string   `yaml:"name"`
			Variants []string `yaml:"variants"`
			Fields   []struct {
				Name  string `yaml:"name"`
				Type  string `yaml:"type"`
				Attrs []Attr `yaml:"attrs"`
			} `yaml:"fields"`
		} `yaml:"declarations"`
	}
	require.NoError(t, yaml.Unmarshal(out, &got))

	assert.Equal(t, ManifestVersion, got.Version)
	assert.Equal(t, "Config", got.Root)
	require.Len(t, got.Declarations, 3)
	assert.Equal(t, "struct", got.Declarations[0].Kind)
	assert.Equal(t, "enum", got.Declarations[1].Kind)
	assert.Equal(t, []string{"low", "high"}, got.Declarations[1].Variants)
	assert.Equal(t, "DbConfig", got.Declarations[2].Name)

	port := got.Declarations[0].Fields[0]
	assert.Equal(t, "port", port.Name)
	assert.Equal(t, "int", port.Type)
	assert.Equal(t, Attr{Key: AttrDefault, Value: "80", Literal: "80"}, port.Attrs[1])
}
