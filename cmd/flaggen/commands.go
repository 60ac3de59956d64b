package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/vovanwin/flaggen/generator"
	"github.com/vovanwin/flaggen/pkg/types"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Сгенерировать Go-код из схемы",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, verbose, err := loadOptions(cmd)
			if err != nil {
				return err
			}
			opts.Out = cmd.OutOrStdout()

			pterm.DefaultSection.Println("flaggen")
			pterm.Printfln("Схемы:  %v", opts.Schemas)
			pterm.Printfln("Вывод:  %s", opts.OutputDir)
			pterm.Printfln("Пакет:  %s", opts.Package)
			pterm.Println()

			res, err := generator.Generate(opts)
			if err != nil {
				return err
			}
			printDiagnostics(res.Tree, verbose)
			pterm.Success.Printfln("объявлений: %d", len(res.Declarations))
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Проверить схему без записи файлов",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, verbose, err := loadOptions(cmd)
			if err != nil {
				return err
			}
			opts.Out = cmd.OutOrStdout()

			res, err := generator.Check(opts)
			if err != nil {
				return err
			}
			printDiagnostics(res.Tree, verbose)

			if n := len(res.Tree.Warnings()); strict && n > 0 {
				return fmt.Errorf("схема содержит предупреждения: %d", n)
			}
			pterm.Success.Printfln("схема корректна, объявлений: %d", len(res.Declarations))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "считать предупреждения ошибкой")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var decls bool
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Показать разрешённое дерево полей",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, _, err := loadOptions(cmd)
			if err != nil {
				return err
			}

			dumper := spew.ConfigState{
				Indent:                  "  ",
				DisablePointerAddresses: true,
				DisableCapacities:       true,
				SortKeys:                true,
			}

			if decls {
				res, err := generator.Check(opts)
				if err != nil {
					return err
				}
				dumper.Fdump(cmd.OutOrStdout(), res.Declarations)
				return nil
			}

			tree, err := generator.Resolve(opts)
			if err != nil {
				return err
			}
			dumper.Fdump(cmd.OutOrStdout(), tree.Fields)
			printDiagnostics(tree, true)
			return nil
		},
	}
	cmd.Flags().BoolVar(&decls, "decls", false, "показать объявления типов вместо дерева")
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Создать пример схемы",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "./configs"
			if len(args) == 1 {
				dir = args[0]
			}
			if _, err := generator.Init(dir, cmd.OutOrStdout()); err != nil {
				return err
			}
			pterm.Success.Printfln("схема готова, запустите flaggen generate -s %s/flaggen.toml", dir)
			return nil
		},
	}
}

func printDiagnostics(tree *types.Tree, verbose bool) {
	for _, d := range tree.Diagnostics {
		switch d.Severity {
		case types.SeverityWarning:
			pterm.Warning.Println(d.String())
		default:
			if verbose {
				pterm.Info.Println(d.String())
			}
		}
	}
}
