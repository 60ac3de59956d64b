package generator

import (
	"bytes"
	"embed"
	"fmt"
	"go/token"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// ArgbindImport — пакет рантайма, от которого зависит сгенерированный код
const ArgbindImport = "github.com/vovanwin/flaggen/pkg/argbind"

// RenderOptions настройки рендеринга Go-кода
type RenderOptions struct {
	Package string // Имя пакета
	Source  string // Файлы схемы для заголовка, пустое — без упоминания
}

type fileView struct {
	Package string
	Source  string
	Imports []string
	Decls   []declView
}

type declView struct {
	Struct *structView
	Enum   *enumView
}

type structView struct {
	Name    string
	Comment string
	Root    bool
	Fields  []fieldView
}

type fieldView struct {
	Comment string
	GoName  string
	Type    string
	Tag     string
	Default string
}

type enumView struct {
	Name    string
	Comment string
	Consts  []constView
	List    string
}

type constView struct {
	Name  string
	Value string
}

// RenderGo строит исходник Go для объявлений. Если форматирование не
// удалось, возвращает неотформатированный исходник вместе с ошибкой.
func RenderGo(opts RenderOptions, decls []Declaration) ([]byte, error) {
	if !token.IsIdentifier(opts.Package) {
		return nil, fmt.Errorf("%w: пакет %q", ErrInvalidName, opts.Package)
	}

	tmplB, err := templatesFS.ReadFile("templates/config.go.tmpl")
	if err != nil {
		return nil, fmt.Errorf("чтение шаблона: %w", err)
	}

	tmpl, err := template.New("cfg").Funcs(templateFuncs()).Parse(string(tmplB))
	if err != nil {
		return nil, fmt.Errorf("парсинг шаблона: %w", err)
	}

	buf := &bytes.Buffer{}
	if err := tmpl.Execute(buf, buildView(opts, decls)); err != nil {
		return nil, fmt.Errorf("выполнение шаблона: %w", err)
	}

	formatted, err := imports.Process("flaggen.go", buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return buf.Bytes(), fmt.Errorf("форматирование кода: %w", err)
	}
	return formatted, nil
}

// templateFuncs возвращает функции для использования в шаблонах
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatComment": formatComment,
		"fieldComment": func(comment string) string {
			return strings.ReplaceAll(formatComment(comment), "\n", "\n\t")
		},
	}
}

// formatComment форматирует комментарий для Go кода
func formatComment(comment string) string {
	if comment == "" {
		return ""
	}
	lines := strings.Split(comment, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		result = append(result, strings.TrimRight("// "+line, " "))
	}
	return strings.Join(result, "\n")
}

func buildView(opts RenderOptions, decls []Declaration) fileView {
	view := fileView{Package: opts.Package, Source: opts.Source}
	local := make(map[string]bool, len(decls))
	for _, d := range decls {
		if d.Kind == DeclStruct {
			local[d.Name] = true
		}
	}

	var hasRoot, hasEnum bool
	for _, d := range decls {
		switch d.Kind {
		case DeclEnum:
			hasEnum = true
			view.Decls = append(view.Decls, declView{Enum: buildEnum(d)})
		default:
			hasRoot = hasRoot || d.Root
			view.Decls = append(view.Decls, declView{Struct: buildStruct(d, local)})
		}
	}

	if hasRoot {
		view.Imports = append(view.Imports, "os")
	}
	if hasEnum {
		view.Imports = append(view.Imports, "slices")
	}
	if needsTime(decls) {
		view.Imports = append(view.Imports, "time")
	}
	if hasRoot || hasEnum || needsArgbind(decls) {
		view.Imports = append(view.Imports, ArgbindImport)
	}
	return view
}

func buildStruct(d Declaration, local map[string]bool) *structView {
	sv := &structView{Name: d.Name, Comment: d.Doc, Root: d.Root}
	for _, f := range d.Fields {
		fv := fieldView{
			Comment: f.Doc,
			GoName:  f.GoName,
			Type:    f.GoType(),
			Tag:     structTag(f.Attrs),
		}
		switch {
		case f.Flatten && local[f.Type]:
			fv.Default = "Default" + f.Type + "()"
		default:
			if a, ok := f.Attr(AttrDefault); ok {
				fv.Default = a.Literal
				if f.Optional {
					fv.Default = "argbind.Ptr[" + f.Type + "](" + a.Literal + ")"
				}
			}
		}
		sv.Fields = append(sv.Fields, fv)
	}
	return sv
}

func buildEnum(d Declaration) *enumView {
	ev := &enumView{Name: d.Name, Comment: d.Doc}
	quoted := make([]string, 0, len(d.Variants))
	for _, v := range d.Variants {
		ev.Consts = append(ev.Consts, constView{Name: d.Name + v, Value: strconv.Quote(v)})
		quoted = append(quoted, strconv.Quote(v))
	}
	ev.List = strings.Join(quoted, ", ")
	return ev
}

// structTag собирает тег из атрибутов в порядке их объявления
func structTag(attrs []Attr) string {
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, a.Key+":"+strconv.Quote(a.Value))
	}
	tag := strings.Join(parts, " ")
	if strings.Contains(tag, "`") {
		return strconv.Quote(tag)
	}
	return "`" + tag + "`"
}

// needsTime проверяет использует ли какое-либо поле time.Duration
func needsTime(decls []Declaration) bool {
	for _, d := range decls {
		for _, f := range d.Fields {
			if strings.Contains(f.Type, "time.Duration") {
				return true
			}
		}
	}
	return false
}

func needsArgbind(decls []Declaration) bool {
	for _, d := range decls {
		for _, f := range d.Fields {
			if strings.Contains(f.Type, "argbind.") {
				return true
			}
		}
	}
	return false
}
