package argbind

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Ключи struct-тегов, которые пишет генератор
const (
	tagID      = "id"
	tagHelp    = "help"
	tagDefault = "default"
	tagEnv     = "env"
	tagSep     = "sep"
	tagLong    = "long"
	tagShort   = "short"
	tagEnum    = "enum"
	tagFlatten = "flatten"
)

// binding — одно поле, привязанное к флагу
type binding struct {
	id       string
	key      string
	env      string
	sep      string
	def      string
	hasDef   bool
	value    *fieldValue
	flag     *pflag.Flag
	required bool
}

// Binder связывает поля сгенерированной структуры с флагами и окружением
type Binder struct {
	name     string
	out      io.Writer
	fs       *pflag.FlagSet
	env      *viper.Viper
	bindings []*binding
}

// Option настраивает Binder
type Option func(*Binder)

// WithName задаёт имя программы для справки
func WithName(name string) Option {
	return func(b *Binder) { b.name = name }
}

// WithOutput задаёт, куда печатается справка
func WithOutput(w io.Writer) Option {
	return func(b *Binder) { b.out = w }
}

// WithViper подменяет источник переменных окружения
func WithViper(v *viper.Viper) Option {
	return func(b *Binder) { b.env = v }
}

// New регистрирует флаги для всех полей target с тегом id.
// target — указатель на сгенерированную структуру.
func New(target any, opts ...Option) (*Binder, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrInvalidTarget, target)
	}

	b := &Binder{
		name: filepath.Base(os.Args[0]),
		out:  os.Stderr,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.env == nil {
		b.env = viper.New()
	}

	b.fs = pflag.NewFlagSet(b.name, pflag.ContinueOnError)
	b.fs.SortFlags = false
	b.fs.SetOutput(b.out)

	if err := b.bindStruct(rv.Elem()); err != nil {
		return nil, err
	}
	return b, nil
}

// FlagSet возвращает набор флагов, например для встраивания в cobra
func (b *Binder) FlagSet() *pflag.FlagSet {
	return b.fs
}

// Args возвращает позиционные аргументы после разбора
func (b *Binder) Args() []string {
	return b.fs.Args()
}

// Parse разбирает аргументы и применяет окружение
func (b *Binder) Parse(args []string) error {
	if err := b.fs.Parse(args); err != nil {
		return err
	}
	return b.Resolve()
}

// Resolve применяет приоритет: флаг, затем окружение, затем значение
// по умолчанию. Вызывается после разбора флагов.
func (b *Binder) Resolve() error {
	var missing []string
	for _, bd := range b.bindings {
		if bd.flag.Changed {
			continue
		}
		if bd.env != "" && b.env.IsSet(bd.key) {
			if err := bd.setEnv(b.env.GetString(bd.key)); err != nil {
				return fmt.Errorf("переменная %s: %w", bd.env, err)
			}
			continue
		}
		if bd.required && !bd.hasDef {
			missing = append(missing, bd.describe())
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}
	return nil
}

func (bd *binding) setEnv(raw string) error {
	bd.value.reset()
	if bd.sep == "" || !bd.value.isSlice() {
		return bd.value.Set(raw)
	}
	for _, part := range strings.Split(raw, bd.sep) {
		if err := bd.value.appendOne(part); err != nil {
			return err
		}
	}
	return nil
}

func (bd *binding) describe() string {
	s := "--" + bd.flag.Name
	if bd.env != "" {
		s += " (" + bd.env + ")"
	}
	return s
}

func (b *Binder) bindStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)

		if _, ok := sf.Tag.Lookup(tagFlatten); ok {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					fv.Set(reflect.New(fv.Type().Elem()))
				}
				fv = fv.Elem()
			}
			if fv.Kind() != reflect.Struct {
				return fmt.Errorf("поле %s: %w", sf.Name, ErrInvalidTarget)
			}
			if err := b.bindStruct(fv); err != nil {
				return err
			}
			continue
		}

		id, ok := sf.Tag.Lookup(tagID)
		if !ok {
			continue
		}
		if err := b.bindField(id, sf.Tag, fv); err != nil {
			return fmt.Errorf("поле %s: %w", id, err)
		}
	}
	return nil
}

func (b *Binder) bindField(id string, tag reflect.StructTag, field reflect.Value) error {
	value, err := newFieldValue(field)
	if err != nil {
		return err
	}

	long := tag.Get(tagLong)
	if long == "" {
		long = id
	}
	short := tag.Get(tagShort)
	if len(short) > 1 {
		return fmt.Errorf("короткий флаг %q должен быть одним ASCII-символом", short)
	}
	if b.fs.Lookup(long) != nil {
		return fmt.Errorf("%w: --%s", ErrDuplicateFlag, long)
	}
	if short != "" && b.fs.ShorthandLookup(short) != nil {
		return fmt.Errorf("%w: -%s", ErrDuplicateFlag, short)
	}

	bd := &binding{
		id:    id,
		key:   fmt.Sprintf("field%d", len(b.bindings)),
		env:   tag.Get(tagEnv),
		sep:   tag.Get(tagSep),
		value: value,
	}
	bd.def, bd.hasDef = tag.Lookup(tagDefault)
	bd.required = !value.isOptional() && !value.isBool() && !value.isSlice()

	bd.flag = b.fs.VarPF(value, long, short, usage(tag, value))
	if value.isBool() {
		bd.flag.NoOptDefVal = "true"
	}
	if bd.hasDef {
		if err := value.Set(bd.def); err != nil {
			return fmt.Errorf("значение по умолчанию %q: %w", bd.def, err)
		}
		value.reset()
		bd.flag.DefValue = bd.def
	}

	// viper приводит ключи к нижнему регистру, поэтому ключ — номер поля, а не id
	if bd.env != "" {
		if err := b.env.BindEnv(bd.key, bd.env); err != nil {
			return fmt.Errorf("привязка %s: %w", bd.env, err)
		}
	}

	b.bindings = append(b.bindings, bd)
	return nil
}

// usage собирает текст справки с подсказками про окружение и варианты
func usage(tag reflect.StructTag, value *fieldValue) string {
	parts := []string{}
	if help := tag.Get(tagHelp); help != "" {
		parts = append(parts, help)
	}
	if env := tag.Get(tagEnv); env != "" {
		parts = append(parts, "[env: "+env+"]")
	}
	if _, ok := tag.Lookup(tagEnum); ok {
		if vs, ok := reflect.New(value.valueType()).Interface().(interface{ Variants() []string }); ok {
			parts = append(parts, "[possible values: "+strings.Join(vs.Variants(), ", ")+"]")
		}
	}
	return strings.Join(parts, " ")
}

// Parse связывает target с флагами и разбирает args
func Parse(target any, args []string, opts ...Option) error {
	b, err := New(target, opts...)
	if err != nil {
		return err
	}
	return b.Parse(args)
}

// MustParse как Parse, но при --help завершает процесс с кодом 0,
// а при ошибке печатает её и завершает с кодом 2
func MustParse(target any, args []string, opts ...Option) {
	b, err := New(target, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flaggen: %v\n", err)
		os.Exit(2)
	}

	err = b.Parse(args)
	switch {
	case err == nil:
		return
	case errors.Is(err, pflag.ErrHelp):
		os.Exit(0)
	default:
		fmt.Fprintf(b.out, "%s: %v\n", b.name, err)
		fmt.Fprintf(b.out, "Запустите %s --help для справки\n", b.name)
		os.Exit(2)
	}
}
