package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tasnim.dev/iam-graph/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "iam-graph",
		Short: "Export and visualize AWS IAM principals and their policies",
	}

	rootCmd.AddCommand(cmd.NewExportCmd())
	rootCmd.AddCommand(cmd.NewRenderCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
