/*
Copyright © 2025 phamtrung99
*/
package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <file> <question>",
	Short: "Ask a question against one indexed document",
	Long: `Retrieves the best matching passages from a document's index,
filters them for relevance with the language model and prints a short
synthesized answer with its supporting passages.`,
	Args: cobra.ExactArgs(2),
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
		resp := a.answer.Answer(ctx, args[1], results)

		if resp.Summary != "" {
			fmt.Println(resp.Summary)
		}
		if len(resp.Supporting) > 0 {
			fmt.Println()
			fmt.Println("Supporting passages:")
			for _, s := range resp.Supporting {
				fmt.Printf("- [page %s, score %.4f, %s] %s\n", s.Page, s.Score, s.ID, s.Text)
			}
		}
		if resp.Error != "" {
			fmt.Println()
			fmt.Println("Problems:", resp.Error)
		}
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().IntP("top-k", "k", 0, "number of passages to retrieve (defaults to top_k from config)")
}
