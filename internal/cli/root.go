// Package cli 实现 blockmap 命令行工具：查看、校验、转换地图文件
package cli

import (
	"io"
	"log"

	"github.com/spf13/cobra"
)

// RootOptions 全局参数
type RootOptions struct {
	Verbose bool
}

// NewRootCommand 创建根命令
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "blockmap",
		Short: "Block map file tool",
		Long:  "Inspect, validate and convert block map files (.json / .yaml).",
		// main 负责输出错误
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !opts.Verbose {
				log.SetOutput(io.Discard)
				log.SetFlags(0)
				return
			}
			log.SetOutput(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))

	return cmd
}
