package cli

import (
	"fmt"
	"log"

	"github.com/decker502/blockmap/pkg/mapdata"
	"github.com/spf13/cobra"
)

// NewInfoCommand 创建 info 命令：方块数量与包围盒
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "info <file>",
		Short:        "Show block count and bounding box",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := mapdata.ReadFile(args[0])
			if err != nil {
				return err
			}
			log.Printf("[CLI] Read %d records from %s", len(records), args[0])

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "blocks: %d\n", len(records))
			lo, hi, ok := mapdata.Bounds(records)
			if !ok {
				fmt.Fprintln(out, "bounds: empty")
				return nil
			}
			fmt.Fprintf(out, "bounds: (%g, %g, %g) .. (%g, %g, %g)\n", lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
			fmt.Fprintf(out, "size:   %g x %g x %g\n", hi[0]-lo[0]+1, hi[1]-lo[1]+1, hi[2]-lo[2]+1)
			return nil
		},
	}
}
