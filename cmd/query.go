/*
Copyright © 2025 phamtrung99
*/
package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <file> <question>",
	Short: "Retrieve the best matching passages from one document",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			log.Fatal("failed to initialize", "error", err)
		}
		defer a.Close()

		topK, _ := cmd.Flags().GetInt("top-k")
		if topK <= 0 {
			topK = a.cfg.TopK
		}

		results := a.retriever.Query(ctx, args[0], args[1], topK)
		if len(results) == 0 {
			fmt.Println("no results")
			return
		}
		for i, r := range results {
			fmt.Printf("%d. [page %s, score %.4f] %s\n", i+1, r.PageNumber, r.Score, r.ID)
			fmt.Println(r.Text)
			fmt.Println()
		}
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().IntP("top-k", "k", 0, "number of passages to return (defaults to top_k from config)")
}
