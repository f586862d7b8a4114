package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/spf13/cobra"

	awsclient "tasnim.dev/iam-graph/internal/aws"
	iamclient "tasnim.dev/iam-graph/internal/aws/iam"
	"tasnim.dev/iam-graph/internal/config"
	"tasnim.dev/iam-graph/internal/export"
	"tasnim.dev/iam-graph/internal/inventory"
	"tasnim.dev/iam-graph/internal/render"
)

func NewExportCmd() *cobra.Command {
	var (
		profile       string
		region        string
		entities      string
		name          string
		yamlFile      string
		dotFile       string
		graphImage    string
		toStdout      bool
		generateGraph bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Collect IAM entities and write YAML and DOT descriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := inventory.ParseKinds(entities)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			profile, region = cfg.Merge(profile, region)
			yamlFile, dotFile, graphImage = cfg.MergePaths(yamlFile, dotFile, graphImage)

			ctx := context.Background()
			awsCfg, err := awsclient.LoadConfig(ctx, profile, region)
			if err != nil {
				return fmt.Errorf("loading AWS config: %w", err)
			}

			if accountID := awsclient.GetAccountID(ctx, awsCfg); accountID != "" {
				fmt.Printf("Retrieving IAM data for account %s...\n", accountID)
			} else {
				fmt.Println("Retrieving IAM data...")
			}

			client := iamclient.NewClient(awsiam.NewFromConfig(awsCfg))
			inv, err := inventory.NewCollector(client).Collect(ctx, kinds, name)
			if err != nil {
				return err
			}

			if toStdout {
				if err := export.WriteYAML(inv, os.Stdout); err != nil {
					return err
				}
			} else {
				fmt.Printf("Writing IAM data to YAML file: %s\n", yamlFile)
				if err := writeToFile(yamlFile, func(w io.Writer) error {
					return export.WriteYAML(inv, w)
				}); err != nil {
					return err
				}
			}

			fmt.Printf("Writing IAM data to DOT file: %s\n", dotFile)
			if err := writeToFile(dotFile, func(w io.Writer) error {
				return export.WriteDOT(inv, w)
			}); err != nil {
				return err
			}

			if generateGraph {
				fmt.Println("Generating graph visualization...")
				if err := render.Render(dotFile, graphImage); err != nil {
					return err
				}
				fmt.Printf("Graph image generated: %s\n", graphImage)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&entities, "entities", "e", "all", "entity kinds to collect: all or a comma-separated subset of users,roles,policies")
	cmd.Flags().StringVarP(&name, "name", "n", "", "collect only the entity with this name")
	cmd.Flags().StringVar(&yamlFile, "yaml-file", "", "output YAML file (default "+config.DefaultYAMLFile+")")
	cmd.Flags().StringVar(&dotFile, "dot-file", "", "output DOT file (default "+config.DefaultDOTFile+")")
	cmd.Flags().StringVar(&graphImage, "graph-image", "", "output graph image (default "+config.DefaultGraphImage+")")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print YAML to stdout instead of writing the YAML file")
	cmd.Flags().BoolVarP(&generateGraph, "generate-graph", "g", false, "render the DOT file to an image with Graphviz")
	cmd.Flags().StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region to use")

	return cmd
}

func writeToFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
