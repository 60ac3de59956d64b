package generator

import (
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/vovanwin/flaggen/internal/model"
	"github.com/vovanwin/flaggen/internal/parser"
)

// generator накапливает объявления в порядке обнаружения
type generator struct {
	decls []Declaration
	// имя типа -> id поля, которое его объявило
	owners map[string]string
}

// Generate превращает дерево полей в список объявлений типов.
// Первой идёт корневая структура, за ней вложенные структуры и enum
// в прямом порядке обхода.
func Generate(tree *model.Tree, rootName string) ([]Declaration, error) {
	if tree == nil {
		return nil, fmt.Errorf("пустое дерево схемы")
	}
	if !token.IsIdentifier(rootName) || !token.IsExported(rootName) {
		return nil, fmt.Errorf("%w: корневой тип %q", ErrInvalidName, rootName)
	}

	g := &generator{owners: map[string]string{rootName: ""}}
	if err := g.structDecl(rootName, "", tree.Fields, true); err != nil {
		return nil, err
	}
	return g.decls, nil
}

// structDecl резервирует место под структуру до обхода её полей,
// поэтому структура всегда стоит раньше своих вложенных типов
func (g *generator) structDecl(name, doc string, fields []model.FieldSpec, root bool) error {
	slot := len(g.decls)
	g.decls = append(g.decls, Declaration{})

	decl := Declaration{Kind: DeclStruct, Name: name, Doc: doc, Root: root}
	goNames := make(map[string]string, len(fields))
	for _, f := range fields {
		fd, err := g.fieldDecl(f)
		if err != nil {
			return err
		}
		if prev, ok := goNames[fd.GoName]; ok {
			return &parser.FieldError{
				ID:  f.ID,
				Err: fmt.Errorf("%w: поля %q и %q дают одно имя Go %s", ErrInvalidName, prev, f.Name, fd.GoName),
			}
		}
		goNames[fd.GoName] = f.Name
		decl.Fields = append(decl.Fields, fd)
	}

	g.decls[slot] = decl
	return nil
}

func (g *generator) fieldDecl(f model.FieldSpec) (FieldDecl, error) {
	fd := FieldDecl{
		Name:     f.Name,
		ID:       f.ID,
		GoName:   parser.ToGoName(f.Name),
		Optional: f.Optional,
		Doc:      f.Doc,
	}
	if !token.IsIdentifier(fd.GoName) || !token.IsExported(fd.GoName) {
		return fd, &parser.FieldError{ID: f.ID, Err: fmt.Errorf("%w: поле %q", ErrInvalidName, f.Name)}
	}

	var err error
	switch v := f.Variant.(type) {
	case model.Leaf:
		fd.Type = goType(v.Native)
		fd.Attrs, err = leafAttrs(f, v)
	case model.Vector:
		fd.Type = "[]" + goType(v.Elem)
		fd.Attrs, err = vectorAttrs(f, v)
	case model.Enum:
		fd.Type = v.Name
		fd.Attrs, err = g.enumField(f, v)
	case model.Nested:
		fd.Type = f.TypeName
		fd.Optional = false
		fd.Flatten = true
		fd.Attrs = []Attr{{Key: AttrFlatten}}
		err = g.nestedField(f, v)
	case model.External:
		fd.Type = f.TypeName
		fd.Optional = false
		fd.Flatten = true
		fd.Attrs = []Attr{{Key: AttrFlatten}}
		if !isTypeRef(f.TypeName) {
			err = fmt.Errorf("%w: тип %q", ErrInvalidName, f.TypeName)
		}
	default:
		err = fmt.Errorf("неизвестный вид поля %T", f.Variant)
	}
	if err != nil {
		return fd, wrapField(f.ID, err)
	}
	return fd, nil
}

func leafAttrs(f model.FieldSpec, v model.Leaf) ([]Attr, error) {
	attrs := headAttrs(f)
	if v.Default != nil {
		lit, err := scalarLiteral(v.Native, *v.Default)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, Attr{Key: AttrDefault, Value: lit.Text, Literal: lit.Go})
	}
	if v.Env != "" {
		attrs = append(attrs, Attr{Key: AttrEnv, Value: v.Env})
	}
	flags, err := flagAttrs(f.ID, v.Binding)
	if err != nil {
		return nil, err
	}
	return append(attrs, flags...), nil
}

func vectorAttrs(f model.FieldSpec, v model.Vector) ([]Attr, error) {
	attrs := headAttrs(f)
	if v.Default != nil {
		lit, err := vectorLiteral(v.Elem, v.Default)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, Attr{Key: AttrDefault, Value: lit.Text, Literal: lit.Go})
	}
	if v.Env != "" {
		attrs = append(attrs,
			Attr{Key: AttrEnv, Value: v.Env},
			Attr{Key: AttrSep, Value: ","},
		)
	}
	flags, err := flagAttrs(f.ID, v.Binding)
	if err != nil {
		return nil, err
	}
	return append(attrs, flags...), nil
}

func (g *generator) enumField(f model.FieldSpec, v model.Enum) ([]Attr, error) {
	if !isTypeRef(v.Name) {
		return nil, fmt.Errorf("%w: enum %q", ErrInvalidName, v.Name)
	}

	attrs := append(headAttrs(f), Attr{Key: AttrEnum})
	if v.Default != nil {
		def := *v.Default
		// константы есть только у enum, объявленных в схеме
		lit := v.Name + "(" + strconv.Quote(def) + ")"
		if len(v.Variants) > 0 {
			if !slices.Contains(v.Variants, def) {
				return nil, fmt.Errorf("%w: %q не входит в варианты %s", ErrMalformedDefault, def, strings.Join(v.Variants, ", "))
			}
			lit = v.Name + def
		}
		attrs = append(attrs, Attr{Key: AttrDefault, Value: def, Literal: lit})
	}
	if v.Env != "" {
		attrs = append(attrs, Attr{Key: AttrEnv, Value: v.Env})
	}
	flags, err := flagAttrs(f.ID, v.Binding)
	if err != nil {
		return nil, err
	}
	attrs = append(attrs, flags...)

	// enum без вариантов объявлен вне схемы
	if len(v.Variants) == 0 {
		return attrs, nil
	}
	if strings.Contains(v.Name, ".") {
		return nil, fmt.Errorf("%w: enum %q с вариантами должен быть локальным типом", ErrInvalidName, v.Name)
	}
	for _, variant := range v.Variants {
		if variant == "" || !token.IsIdentifier(v.Name+variant) {
			return nil, fmt.Errorf("%w: вариант %q", ErrInvalidName, variant)
		}
	}

	decl := Declaration{
		Kind:      DeclEnum,
		Name:      v.Name,
		Doc:       f.Doc,
		Variants:  slices.Clone(v.Variants),
		RenameAll: RenameVerbatim,
	}
	if err := g.declareEnum(decl, f.ID); err != nil {
		return nil, err
	}
	return attrs, nil
}

func (g *generator) declareEnum(decl Declaration, id string) error {
	owner, seen := g.owners[decl.Name]
	if !seen {
		g.owners[decl.Name] = id
		g.decls = append(g.decls, decl)
		return nil
	}

	for _, d := range g.decls {
		if d.Name == decl.Name && d.Kind == DeclEnum && slices.Equal(d.Variants, decl.Variants) {
			return nil
		}
	}
	return conflict(decl.Name, owner)
}

func (g *generator) nestedField(f model.FieldSpec, v model.Nested) error {
	if !token.IsIdentifier(f.TypeName) || !token.IsExported(f.TypeName) {
		return fmt.Errorf("%w: тип %q", ErrInvalidName, f.TypeName)
	}
	if owner, seen := g.owners[f.TypeName]; seen {
		return conflict(f.TypeName, owner)
	}
	g.owners[f.TypeName] = f.ID
	return g.structDecl(f.TypeName, f.Doc, v.Fields, false)
}

func conflict(name, owner string) error {
	if owner == "" {
		return fmt.Errorf("%w: %s совпадает с корневым типом", ErrTypeConflict, name)
	}
	return fmt.Errorf("%w: %s уже объявлен полем %s", ErrTypeConflict, name, owner)
}

func headAttrs(f model.FieldSpec) []Attr {
	attrs := []Attr{{Key: AttrID, Value: f.ID}}
	if f.Doc != "" {
		attrs = append(attrs, Attr{Key: AttrHelp, Value: f.Doc})
	}
	return attrs
}

// flagAttrs собирает long и short. pflag принимает короткий флаг только
// из одного ASCII-символа.
func flagAttrs(id string, b model.Binding) ([]Attr, error) {
	long := b.Long
	if long == "" {
		long = id
	}
	attrs := []Attr{{Key: AttrLong, Value: long}}
	if b.Short != 0 {
		if b.Short > unicode.MaxASCII {
			return nil, fmt.Errorf("%w: короткий флаг %q должен быть ASCII-символом", ErrInvalidName, b.Short)
		}
		attrs = append(attrs, Attr{Key: AttrShort, Value: string(b.Short)})
	}
	return attrs, nil
}

// isTypeRef проверяет имя типа, допуская квалификатор пакета
func isTypeRef(name string) bool {
	pkg, typ, qualified := strings.Cut(name, ".")
	if !qualified {
		return token.IsIdentifier(name)
	}
	return token.IsIdentifier(pkg) && token.IsIdentifier(typ) && token.IsExported(typ)
}

// wrapField не оборачивает ошибку повторно, если id уже есть
func wrapField(id string, err error) error {
	var fe *parser.FieldError
	if errors.As(err, &fe) {
		return err
	}
	return &parser.FieldError{ID: id, Err: err}
}
