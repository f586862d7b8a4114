package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasnim.dev/iam-graph/internal/config"
	"tasnim.dev/iam-graph/internal/render"
)

func NewRenderCmd() *cobra.Command {
	var (
		dotFile    string
		graphImage string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an existing DOT file to an image with Graphviz",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			_, dotFile, graphImage = cfg.MergePaths("", dotFile, graphImage)

			if err := render.Render(dotFile, graphImage); err != nil {
				return err
			}
			fmt.Printf("Graph image generated: %s\n", graphImage)
			return nil
		},
	}

	cmd.Flags().StringVar(&dotFile, "dot-file", "", "input DOT file (default "+config.DefaultDOTFile+")")
	cmd.Flags().StringVar(&graphImage, "graph-image", "", "output graph image (default "+config.DefaultGraphImage+")")

	return cmd
}
