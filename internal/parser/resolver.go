package parser

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/vovanwin/flaggen/internal/model"
)

// ResolveOptions настройки разрешения схемы
type ResolveOptions struct {
	CommentDocs bool // Брать описание из комментария над ключом, если нет doc
}

type resolver struct {
	opts     ResolveOptions
	comments commentMap
	diags    []model.Diagnostic
}

// ResolveTree строит дерево спецификаций полей из документа.
// При фатальной ошибке частичное дерево не возвращается.
func ResolveTree(doc *Document, opts ResolveOptions) (*model.Tree, error) {
	if doc == nil || doc.Root == nil {
		return &model.Tree{}, nil
	}

	r := &resolver{opts: opts, comments: doc.Comments}
	tree := &model.Tree{}

	for _, key := range doc.Root.Keys() {
		val, _ := doc.Root.Get(key)
		table, ok := val.(*Table)
		if !ok {
			r.warn(model.DiagNonTableField, key, "значение верхнего уровня %T не является таблицей, поле пропущено", val)
			continue
		}

		spec, err := r.resolveTable(key, table, "")
		if err != nil {
			return nil, err
		}
		tree.Fields = append(tree.Fields, spec)
	}

	tree.Diagnostics = r.diags
	return tree, nil
}

func (r *resolver) resolveTable(name string, t *Table, parentID string) (model.FieldSpec, error) {
	id := joinKey(parentID, name)

	var subKeys []string
	for _, k := range t.Keys() {
		if IsReserved(k) {
			continue
		}
		if _, ok := t.Table(k); ok {
			subKeys = append(subKeys, k)
		}
	}

	for _, k := range []string{keyType, keyEnum} {
		if v, ok := t.Get(k); ok {
			if _, isStr := v.(string); !isStr {
				r.warn(model.DiagIgnoredKey, id, "ключ %q должен быть строкой, получен %T", k, v)
			}
		}
	}

	info, err := ResolveType(t, len(subKeys) > 0, name)
	if err != nil {
		return model.FieldSpec{}, &FieldError{ID: id, Err: err}
	}
	if info.Inferred {
		r.info(model.DiagInferredText, id, "тип не задан, используется string")
	}

	spec := model.FieldSpec{
		Name:     name,
		ID:       id,
		TypeName: info.Name,
		Doc:      r.doc(t, id),
	}

	optional := r.boolKey(t, keyOptional, id)
	binding := model.Binding{
		Env:   r.stringKey(t, keyEnv, id),
		Long:  r.stringKey(t, keyLong, id),
		Short: r.short(t, id),
	}

	switch info.Kind {
	case KindVector:
		spec.Optional = optional
		var def any
		if v, ok := t.Get(keyDefault); ok {
			def = v
		}
		spec.Variant = model.Vector{Binding: binding, Elem: info.Native, Default: def}

	case KindLeaf:
		spec.Optional = optional
		spec.Variant = model.Leaf{Binding: binding, Native: info.Native, Default: r.scalarDefault(t, id)}

	case KindEnum:
		spec.Optional = optional
		spec.Variant = model.Enum{
			Binding:  binding,
			Name:     info.Name,
			Variants: r.variants(t, id),
			Default:  r.scalarDefault(t, id),
		}

	case KindNested:
		children := make([]model.FieldSpec, 0, len(subKeys))
		for _, k := range subKeys {
			sub, _ := t.Table(k)
			child, err := r.resolveTable(k, sub, id)
			if err != nil {
				return model.FieldSpec{}, err
			}
			children = append(children, child)
		}
		spec.Variant = model.Nested{Fields: children}

	case KindExternal:
		spec.Variant = model.External{Long: binding.Long, Short: binding.Short}

	default:
		return model.FieldSpec{}, &FieldError{ID: id, Err: fmt.Errorf("неизвестный вид поля %v", info.Kind)}
	}

	return spec, nil
}

func (r *resolver) doc(t *Table, id string) string {
	if d := r.stringKey(t, keyDoc, id); d != "" {
		return d
	}
	if r.opts.CommentDocs {
		return r.comments[id]
	}
	return ""
}

// stringKey возвращает строковое значение; значение другого типа игнорируется
func (r *resolver) stringKey(t *Table, key, id string) string {
	v, ok := t.Get(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.warn(model.DiagIgnoredKey, id, "ключ %q должен быть строкой, получен %T", key, v)
		return ""
	}
	return s
}

func (r *resolver) boolKey(t *Table, key, id string) bool {
	v, ok := t.Get(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.warn(model.DiagIgnoredKey, id, "ключ %q должен быть bool, получен %T", key, v)
		return false
	}
	return b
}

// short принимает ровно один символ, иначе флаг считается не заданным
func (r *resolver) short(t *Table, id string) rune {
	s := r.stringKey(t, keyShort, id)
	if s == "" {
		if t.Has(keyShort) {
			r.warn(model.DiagInvalidShort, id, "пустой short проигнорирован")
		}
		return 0
	}
	if utf8.RuneCountInString(s) != 1 {
		r.warn(model.DiagInvalidShort, id, "short %q должен быть одним символом, проигнорирован", s)
		return 0
	}
	c, _ := utf8.DecodeRuneInString(s)
	return c
}

// scalarDefault приводит default к строке. Скаляры TOML других типов
// переводятся в текст, таблицы и массивы игнорируются.
func (r *resolver) scalarDefault(t *Table, id string) *string {
	v, ok := t.Get(keyDefault)
	if !ok {
		return nil
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case int64:
		s = strconv.FormatInt(val, 10)
	case float64:
		s = strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		s = strconv.FormatBool(val)
	case time.Time:
		s = val.Format(time.RFC3339Nano)
	case fmt.Stringer:
		s = val.String()
	default:
		r.warn(model.DiagIgnoredKey, id, "default типа %T не подходит для скалярного поля", v)
		return nil
	}
	return &s
}

func (r *resolver) variants(t *Table, id string) []string {
	v, ok := t.Get(keyVariants)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		r.warn(model.DiagIgnoredKey, id, "variants должен быть массивом строк, получен %T", v)
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			r.warn(model.DiagIgnoredKey, id, "вариант enum %v не строка, пропущен", item)
			continue
		}
		out = append(out, s)
	}
	return out
}

func (r *resolver) warn(code, path, format string, args ...any) {
	r.diags = append(r.diags, model.Diagnostic{
		Severity:  model.SeverityWarning,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		FieldPath: path,
	})
}

func (r *resolver) info(code, path, format string, args ...any) {
	r.diags = append(r.diags, model.Diagnostic{
		Severity:  model.SeverityInfo,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		FieldPath: path,
	})
}
