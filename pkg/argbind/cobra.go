package argbind

import (
	"github.com/spf13/cobra"
)

// Command строит cobra-команду, флаги которой привязаны к target.
// Окружение и обязательные поля проверяются перед вызовом run.
func Command(use string, target any, run func(cmd *cobra.Command, args []string) error, opts ...Option) (*cobra.Command, error) {
	b, err := New(target, append([]Option{WithName(use)}, opts...)...)
	if err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:           use,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := b.Resolve(); err != nil {
				return err
			}
			return run(cmd, args)
		},
	}
	cmd.Flags().SortFlags = false
	cmd.Flags().AddFlagSet(b.FlagSet())
	return cmd, nil
}
