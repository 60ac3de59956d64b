package generator

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovanwin/flaggen/internal/parser"
	"github.com/vovanwin/flaggen/pkg/types"
)

// expandSchemas раскрывает шаблоны вида configs/*.toml. Файлы из одного
// шаблона идут по алфавиту, порядок шаблонов сохраняется.
func expandSchemas(patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		if !strings.ContainsAny(p, "*?[") {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
			continue
		}

		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("шаблон %s: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("по шаблону %s не найдено ни одного файла", p)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("не указан ни один файл схемы")
	}
	return paths, nil
}

// loadTree читает схемы, объединяет их и разрешает дерево полей
func loadTree(paths []string, commentDocs bool) (*types.Tree, error) {
	doc, err := parser.ParseFiles(paths...)
	if err != nil {
		return nil, err
	}
	return parser.ResolveTree(doc, parser.ResolveOptions{CommentDocs: commentDocs})
}

func sourceNames(paths []string) string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return strings.Join(names, ", ")
}
