package generator

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// GeneratedFile — файл, готовый к записи
type GeneratedFile struct {
	Filename string
	Content  []byte
}

// WriteFiles записывает файлы в директорию, создавая её при необходимости
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("создание директории: %w", err)
	}

	for _, file := range files {
		path := filepath.Join(outputDir, file.Filename)
		if err := os.WriteFile(path, file.Content, filePerm); err != nil {
			return fmt.Errorf("запись %s: %w", file.Filename, err)
		}
	}
	return nil
}
