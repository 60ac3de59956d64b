// Package types открывает типы дерева схемы и объявлений для внешних
// пользователей генератора.
package types

import (
	gen "github.com/vovanwin/flaggen/internal/generator"
	"github.com/vovanwin/flaggen/internal/model"
)

type (
	Tree       = model.Tree
	FieldSpec  = model.FieldSpec
	Variant    = model.Variant
	Binding    = model.Binding
	Leaf       = model.Leaf
	Vector     = model.Vector
	Enum       = model.Enum
	Nested     = model.Nested
	External   = model.External
	Native     = model.Native
	Diagnostic = model.Diagnostic
	Severity   = model.Severity
)

type (
	Declaration   = gen.Declaration
	DeclKind      = gen.DeclKind
	FieldDecl     = gen.FieldDecl
	Attr          = gen.Attr
	GeneratedFile = gen.GeneratedFile
)

const (
	SeverityInfo    = model.SeverityInfo
	SeverityWarning = model.SeverityWarning
)

const (
	DeclStruct = gen.DeclStruct
	DeclEnum   = gen.DeclEnum
)

// KindName возвращает короткое имя вида поля: leaf, vector, enum, nested, external
func KindName(v Variant) string {
	return model.KindName(v)
}
