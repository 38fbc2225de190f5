/*
Copyright © 2025 phamtrung99
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ragdex",
	Short: "Index and question personal PDF collections",
	Long: `ragdex chunks local PDF files, embeds the chunks with a hosted
embedding model and keeps one flat inner-product index per document on
disk. Indexed documents can be queried for ranked passages or asked a
question end to end, from the command line or over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.yaml", "config file")
}
