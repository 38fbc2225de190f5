/*
Copyright © 2025 phamtrung99
*/
package cmd

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/phamtrung99/ragdex/types"
	"github.com/spf13/cobra"
)

// reindexCmd represents the reindex command
var reindexCmd = &cobra.Command{
	Use:   "reindex <file>",
	Short: "Rebuild the index of one document",
	Long: `Rebuilds the index artifact pair of a single PDF. Chunking
parameters default to the values recorded for the document, so a plain
reindex reproduces the previous run; pass --chunk-size or --overlap to
change them, the new values are recorded for later runs.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			log.Fatal("failed to initialize", "error", err)
		}
		defer a.Close()

		file := args[0]
		if filepath.Ext(file) == "" {
			file += ".pdf"
		}

		recorded, err := a.stats.Get(file)
		if err != nil {
			log.Fatal("failed to read chunk stats", "error", err)
		}
		cfg := types.ChunkingConfig{
			ChunkSize:    recorded.Chunk,
			ChunkOverlap: recorded.Overlap,
		}
		if cmd.Flags().Changed("chunk-size") {
			cfg.ChunkSize, _ = cmd.Flags().GetInt("chunk-size")
		}
		if cmd.Flags().Changed("overlap") {
			cfg.ChunkOverlap, _ = cmd.Flags().GetInt("overlap")
		}

		chunks, err := a.indexer.IndexOne(ctx, filepath.Join(a.cfg.PDFDir, file), cfg)
		if err != nil {
			log.Fatal("reindex failed", "file", file, "error", err)
		}
		log.Info("reindex finished", "file", file, "chunks", chunks,
			"chunk_size", cfg.ChunkSize, "overlap", cfg.ChunkOverlap)
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
	reindexCmd.Flags().Int("chunk-size", 0, "chunk size in characters (defaults to the recorded value)")
	reindexCmd.Flags().Int("overlap", 0, "chunk overlap in characters (defaults to the recorded value)")
}
