package parser

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// commentMap хранит комментарии для ключей (section.key -> comment)
type commentMap map[string]string

// ParseFile читает TOML файл схемы и возвращает документ
func ParseFile(path string) (*Document, error) {
	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение файла %s: %w", path, err)
	}

	doc, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("декодирование toml %s: %w", path, err)
	}
	return doc, nil
}

// ParseFiles читает несколько схем и объединяет их через Merge
func ParseFiles(paths ...string) (*Document, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("не указан ни один файл схемы")
	}

	docs := make([]*Document, 0, len(paths))
	for _, p := range paths {
		doc, err := ParseFile(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return Merge(docs...), nil
}

var (
	sectionRe = regexp.MustCompile(`^\s*\[\[?\s*([^\]]+?)\s*\]\]?\s*$`)
	keyRe     = regexp.MustCompile(`^\s*([a-zA-Z_][a-zA-Z0-9_-]*)\s*=`)
	commentRe = regexp.MustCompile(`^\s*#\s*(.*)$`)
)

// extractComments собирает комментарии, стоящие непосредственно перед ключом или секцией
func extractComments(content string) commentMap {
	comments := make(commentMap)
	scanner := bufio.NewScanner(strings.NewReader(content))

	var currentSection string
	var pendingComments []string

	for scanner.Scan() {
		line := scanner.Text()

		// Проверяем секцию [section]
		if match := sectionRe.FindStringSubmatch(line); match != nil {
			currentSection = match[1]
			if len(pendingComments) > 0 {
				comments[currentSection] = strings.Join(pendingComments, "\n")
				pendingComments = nil
			}
			continue
		}

		// Проверяем комментарий
		if match := commentRe.FindStringSubmatch(line); match != nil {
			comment := strings.TrimSpace(match[1])
			if comment != "" {
				pendingComments = append(pendingComments, comment)
			}
			continue
		}

		// Проверяем ключ
		if match := keyRe.FindStringSubmatch(line); match != nil {
			fullKey := joinKey(currentSection, match[1])
			if len(pendingComments) > 0 {
				comments[fullKey] = strings.Join(pendingComments, "\n")
				pendingComments = nil
			}
			continue
		}

		// Пустая строка сбрасывает накопленные комментарии
		if strings.TrimSpace(line) == "" {
			pendingComments = nil
		}
	}

	return comments
}

// ToGoName конвертирует snake_case в CamelCase
func ToGoName(s string) string {
	b := []rune(s)
	out := make([]rune, 0, len(b))
	capNext := true
	for _, r := range b {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			capNext = true
			continue
		}
		if capNext {
			if 'a' <= r && r <= 'z' {
				r = r - 'a' + 'A'
			}
			capNext = false
		}
		out = append(out, r)
	}
	return string(out)
}
