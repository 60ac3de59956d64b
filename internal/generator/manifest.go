package generator

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ManifestVersion — версия формата манифеста
const ManifestVersion = 1

type manifest struct {
	Version      int           `yaml:"version"`
	Root         string        `yaml:"root,omitempty"`
	Declarations []Declaration `yaml:"declarations"`
}

// RenderManifest сериализует объявления в YAML для инструментов,
// которым нужны привязки без Go-кода
func RenderManifest(decls []Declaration) ([]byte, error) {
	m := manifest{Version: ManifestVersion, Declarations: decls}
	for _, d := range decls {
		if d.Root {
			m.Root = d.Name
			break
		}
	}

	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("кодирование манифеста: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("кодирование манифеста: %w", err)
	}
	return buf.Bytes(), nil
}
