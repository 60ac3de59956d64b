package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Table — таблица документа с сохранённым порядком ключей
type Table struct {
	keys   []string
	values map[string]any
}

// NewTable создаёт пустую таблицу
func NewTable() *Table {
	return &Table{values: make(map[string]any)}
}

// Set добавляет или заменяет значение. Новый ключ попадает в конец.
func (t *Table) Set(key string, val any) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = val
}

// Keys возвращает ключи в порядке документа
func (t *Table) Keys() []string {
	return t.keys
}

// Len возвращает число ключей
func (t *Table) Len() int {
	return len(t.keys)
}

// Get возвращает значение по ключу
func (t *Table) Get(key string) (any, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Has сообщает, есть ли ключ в таблице
func (t *Table) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// String возвращает строковое значение ключа
func (t *Table) String(key string) (string, bool) {
	v, ok := t.values[key].(string)
	return v, ok
}

// Bool возвращает булево значение ключа
func (t *Table) Bool(key string) (bool, bool) {
	v, ok := t.values[key].(bool)
	return v, ok
}

// Table возвращает вложенную таблицу
func (t *Table) Table(key string) (*Table, bool) {
	v, ok := t.values[key].(*Table)
	return v, ok
}

// Document — разобранная схема: корневая таблица и комментарии к ключам
type Document struct {
	Root     *Table
	Comments map[string]string // полный ключ (section.key) -> комментарий
}

// Decode разбирает TOML и строит дерево таблиц в порядке документа
func Decode(data []byte) (*Document, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	order := keyOrder(md.Keys())
	return &Document{
		Root:     buildTable(raw, order, ""),
		Comments: extractComments(string(data)),
	}, nil
}

// orderSep разделяет части пути в ключах порядка; ключ в кавычках
// может содержать точку
const orderSep = "\x00"

// keyOrder раскладывает ключи из MetaData по родительским таблицам
func keyOrder(keys []toml.Key) map[string][]string {
	order := make(map[string][]string)
	seen := make(map[string]bool)
	for _, k := range keys {
		for i := range k {
			full := strings.Join(k[:i+1], orderSep)
			if seen[full] {
				continue
			}
			seen[full] = true
			parent := strings.Join(k[:i], orderSep)
			order[parent] = append(order[parent], k[i])
		}
	}
	return order
}

func orderPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + orderSep + key
}

func buildTable(raw map[string]any, order map[string][]string, prefix string) *Table {
	t := NewTable()

	for _, k := range order[prefix] {
		if v, ok := raw[k]; ok {
			t.Set(k, adaptValue(v, order, orderPath(prefix, k)))
		}
	}

	// Ключи, которых нет в MetaData, добавляем в алфавитном порядке
	var rest []string
	for k := range raw {
		if !t.Has(k) {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		t.Set(k, adaptValue(raw[k], order, orderPath(prefix, k)))
	}

	return t
}

func adaptValue(v any, order map[string][]string, path string) any {
	switch val := v.(type) {
	case map[string]any:
		return buildTable(val, order, path)
	case []map[string]any:
		out := make([]any, 0, len(val))
		for _, m := range val {
			out = append(out, buildTable(m, order, path))
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, adaptValue(item, order, path))
		}
		return out
	default:
		return val
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
