/*
Copyright © 2025 phamtrung99
*/
package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/phamtrung99/ragdex/service"
	"github.com/phamtrung99/ragdex/types"
	"github.com/spf13/cobra"
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index every PDF in a folder",
	Long: `Walks a folder, chunks and embeds each PDF and writes one index
artifact pair per document. Files that fail to parse or embed are logged
and skipped so one bad document never aborts the run.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			log.Fatal("failed to initialize", "error", err)
		}
		defer a.Close()

		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = a.cfg.PDFDir
		}
		chunkSize, _ := cmd.Flags().GetInt("chunk-size")
		overlap, _ := cmd.Flags().GetInt("overlap")

		indexed, err := a.indexer.IndexFolder(ctx, dir, types.ChunkingConfig{
			ChunkSize:    chunkSize,
			ChunkOverlap: overlap,
		})
		if err != nil {
			log.Fatal("indexing failed", "error", err)
		}
		log.Info("indexing finished", "dir", dir, "documents", indexed)
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringP("dir", "d", "", "folder of PDF files (defaults to pdf_dir from config)")
	indexCmd.Flags().Int("chunk-size", service.DefaultChunkSize, "chunk size in characters")
	indexCmd.Flags().Int("overlap", service.DefaultChunkOverlap, "chunk overlap in characters")
}
