// Command flaggen генерирует типобезопасные привязки флагов и переменных
// окружения из TOML-схемы.
package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Printfln("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flaggen",
		Short: "flaggen — генератор флагов командной строки из TOML-схемы",
		Long: `flaggen читает TOML-схему, разрешает типы полей и генерирует Go-структуры
с тегами привязки к флагам и переменным окружения.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addOptionFlags(cmd)

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newInitCmd())

	return cmd
}
