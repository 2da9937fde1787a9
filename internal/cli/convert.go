package cli

import (
	"fmt"

	"github.com/decker502/blockmap/pkg/mapdata"
	"github.com/spf13/cobra"
)

// ConvertOptions convert 命令参数
type ConvertOptions struct {
	// Force 跳过校验
	Force bool
}

// NewConvertCommand 创建 convert 命令：按扩展名在 JSON 与 YAML 之间转换
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:          "convert <in> <out>",
		Short:        "Convert a block map between JSON and YAML",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			records, err := mapdata.ReadFile(in)
			if err != nil {
				return err
			}
			if !opts.Force {
				if err := mapdata.Validate(records); err != nil {
					return fmt.Errorf("%s: %w (use --force to convert anyway)", in, err)
				}
			}
			if err := mapdata.WriteFile(out, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "converted %d blocks: %s -> %s\n", len(records), in, out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "convert even if the map does not validate")
	return cmd
}
