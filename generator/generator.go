package generator

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	gen "github.com/vovanwin/flaggen/internal/generator"
	"github.com/vovanwin/flaggen/pkg/types"
)

// Options настройки генерации
type Options struct {
	Schemas     []string  // Файлы схем или шаблоны (default: ./configs/flaggen.toml)
	OutputDir   string    // Директория для генерации (default: ./internal/config)
	Package     string    // Имя пакета (default: config)
	TypeName    string    // Имя корневой структуры (default: Config)
	Manifest    bool      // Писать YAML-манифест рядом с кодом
	CommentDocs bool      // Брать описание полей из комментариев схемы
	Out         io.Writer // Куда печатать прогресс, nil — молча
}

// Result — итог проверки или генерации
type Result struct {
	Tree         *types.Tree
	Declarations []types.Declaration
	Files        []types.GeneratedFile
}

// DefaultOptions настройки по умолчанию
func DefaultOptions() Options {
	return Options{
		Schemas:     []string{"./configs/flaggen.toml"},
		OutputDir:   "./internal/config",
		Package:     "config",
		TypeName:    "Config",
		CommentDocs: true,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if len(o.Schemas) == 0 {
		o.Schemas = def.Schemas
	}
	if o.OutputDir == "" {
		o.OutputDir = def.OutputDir
	}
	if o.Package == "" {
		o.Package = def.Package
	}
	if o.TypeName == "" {
		o.TypeName = def.TypeName
	}
	return o
}

// Resolve читает схемы и возвращает дерево полей с диагностикой
func Resolve(opts Options) (*types.Tree, error) {
	opts = opts.withDefaults()
	paths, err := expandSchemas(opts.Schemas)
	if err != nil {
		return nil, err
	}
	return loadTree(paths, opts.CommentDocs)
}

// Check проходит весь конвейер, но ничего не пишет на диск
func Check(opts Options) (*Result, error) {
	opts = opts.withDefaults()
	res, _, err := build(opts)
	return res, err
}

// Generate генерирует Go код и, если нужно, манифест
func Generate(opts Options) (*Result, error) {
	opts = opts.withDefaults()
	res, raw, err := build(opts)
	if err != nil {
		if raw != nil {
			return nil, writeRaw(opts, raw, err)
		}
		return nil, err
	}

	if err := gen.WriteFiles(res.Files, opts.OutputDir); err != nil {
		return nil, err
	}
	for _, f := range res.Files {
		progress(opts.Out, "  ✓ %s\n", filepath.Join(opts.OutputDir, f.Filename))
	}
	return res, nil
}

// writeRaw сохраняет неотформатированный код: он помогает найти ошибку
// в шаблоне. Ошибка записи добавляется к исходной.
func writeRaw(opts Options, raw []byte, cause error) error {
	path := filepath.Join(opts.OutputDir, goFilename(opts.TypeName))
	if err := gen.WriteFiles([]gen.GeneratedFile{{Filename: goFilename(opts.TypeName), Content: raw}}, opts.OutputDir); err != nil {
		return errors.Join(cause, fmt.Errorf("запись неотформатированного кода: %w", err))
	}
	progress(opts.Out, "  ✗ %s (не отформатирован)\n", path)
	return cause
}

// build возвращает результат либо ошибку и сырой код, если упало форматирование
func build(opts Options) (*Result, []byte, error) {
	paths, err := expandSchemas(opts.Schemas)
	if err != nil {
		return nil, nil, err
	}

	tree, err := loadTree(paths, opts.CommentDocs)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range paths {
		progress(opts.Out, "  ✓ %s\n", filepath.Base(p))
	}

	decls, err := gen.Generate(tree, opts.TypeName)
	if err != nil {
		return nil, nil, fmt.Errorf("генерация: %w", err)
	}

	src, err := gen.RenderGo(gen.RenderOptions{Package: opts.Package, Source: sourceNames(paths)}, decls)
	if err != nil {
		return nil, src, err
	}

	res := &Result{
		Tree:         tree,
		Declarations: decls,
		Files:        []types.GeneratedFile{{Filename: goFilename(opts.TypeName), Content: src}},
	}

	if opts.Manifest {
		m, err := gen.RenderManifest(decls)
		if err != nil {
			return nil, nil, err
		}
		res.Files = append(res.Files, types.GeneratedFile{Filename: manifestFilename(opts.TypeName), Content: m})
	}
	return res, nil, nil
}

func goFilename(typeName string) string {
	return "flaggen_" + strings.ToLower(typeName) + ".go"
}

func manifestFilename(typeName string) string {
	return "flaggen_" + strings.ToLower(typeName) + ".yaml"
}

func progress(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, format, args...)
}

// Init создаёт пример схемы в директории и печатает ход работы в out
func Init(dir string, out io.Writer) ([]string, error) {
	if out == nil {
		out = io.Discard
	}
	return gen.Init(dir, out)
}
