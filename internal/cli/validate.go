package cli

import (
	"errors"
	"fmt"

	"github.com/decker502/blockmap/pkg/mapdata"
	"github.com/spf13/cobra"
)

// NewValidateCommand 创建 validate 命令，地图有问题时返回错误（非零退出码）
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a block map",
		Long: `Validate a block map file.

Reports empty or duplicate names, coordinates that are not on the
integer grid, and cells occupied by more than one block.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := mapdata.ReadFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			err = mapdata.Validate(records)
			var verr *mapdata.ValidationError
			if errors.As(err, &verr) {
				for _, p := range verr.Problems {
					fmt.Fprintf(out, "✗ %s\n", p)
				}
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ %s: %d blocks, valid\n", args[0], len(records))
			return nil
		},
	}
}
