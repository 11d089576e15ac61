package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chroma-excellence/chromaqa/internal/interfaces/cli/migrate"
	"github.com/chroma-excellence/chromaqa/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chromaqa",
		Short: "ChromaQA - school quality assurance inspection service",
		Long:  `ChromaQA runs multi-site school inspection workflows: checklist-driven reports, review lifecycle, and the parent portal.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
