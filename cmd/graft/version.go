package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/go-graft/graft/cmd/graft/ui"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s/%s)\n",
				ui.Bold("graft"), Version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
