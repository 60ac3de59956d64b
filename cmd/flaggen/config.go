package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovanwin/flaggen/generator"
)

const (
	envPrefix      = "FLAGGEN"
	configFileName = "flaggen.yaml"
)

// Ключи настроек. Совпадают с ключами flaggen.yaml.
const (
	keySchemas     = "schemas"
	keyOutput      = "output"
	keyPackage     = "package"
	keyType        = "type"
	keyManifest    = "manifest"
	keyCommentDocs = "comment-docs"
	keyVerbose     = "verbose"
)

func addOptionFlags(cmd *cobra.Command) {
	def := generator.DefaultOptions()
	pf := cmd.PersistentFlags()

	pf.String("config", "", "файл настроек (по умолчанию ./flaggen.yaml или $XDG_CONFIG_HOME/flaggen/flaggen.yaml)")
	pf.StringSliceP("schema", "s", def.Schemas, "файлы схем или шаблоны, объединяются по порядку")
	pf.StringP("output", "o", def.OutputDir, "директория для генерации")
	pf.StringP("package", "p", def.Package, "имя пакета")
	pf.StringP("type", "t", def.TypeName, "имя корневой структуры")
	pf.Bool("manifest", def.Manifest, "писать YAML-манифест объявлений")
	pf.Bool("comment-docs", def.CommentDocs, "брать описание полей из комментариев схемы")
	pf.BoolP("verbose", "v", false, "показывать информационную диагностику")
}

// loadOptions собирает настройки: флаг, затем FLAGGEN_*, затем файл настроек
func loadOptions(cmd *cobra.Command) (generator.Options, bool, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := cmd.Flags()
	bindings := map[string]string{
		keySchemas:     "schema",
		keyOutput:      "output",
		keyPackage:     "package",
		keyType:        "type",
		keyManifest:    "manifest",
		keyCommentDocs: "comment-docs",
		keyVerbose:     "verbose",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return generator.Options{}, false, fmt.Errorf("привязка флага %s: %w", flag, err)
		}
	}

	explicit, _ := flags.GetString("config")
	path, err := configPath(explicit)
	if err != nil {
		return generator.Options{}, false, err
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return generator.Options{}, false, fmt.Errorf("чтение настроек %s: %w", path, err)
		}
	}

	opts := generator.Options{
		Schemas:     v.GetStringSlice(keySchemas),
		OutputDir:   v.GetString(keyOutput),
		Package:     v.GetString(keyPackage),
		TypeName:    v.GetString(keyType),
		Manifest:    v.GetBool(keyManifest),
		CommentDocs: v.GetBool(keyCommentDocs),
	}
	return opts, v.GetBool(keyVerbose), nil
}

// configPath ищет файл настроек. Явно указанный файл обязан существовать.
func configPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("файл настроек: %w", err)
		}
		return explicit, nil
	}

	for _, p := range []string{
		configFileName,
		filepath.Join(xdg.ConfigHome, "flaggen", configFileName),
	} {
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("файл настроек %s: %w", p, err)
		}
	}
	return "", nil
}
