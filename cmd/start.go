/*
Copyright © 2025 phamtrung99
*/
package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/phamtrung99/ragdex/handler"
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Long:  `Starts a server that exposes indexing, retrieval and question answering over HTTP and websocket.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			log.Fatal("failed to initialize", "error", err)
		}
		defer a.Close()

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		queryHandler := handler.NewQueryHandler(a.retriever, a.answer, a.cfg.TopK)
		indexHandler := handler.NewIndexHandler(a.indexer, a.stats, a.store, a.cfg.PDFDir)
		wsHandler := handler.NewWebsocketHandler(a.retriever, a.answer, a.cfg.TopK)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.GET("/documents", indexHandler.HandleDocuments)
			apiV1.GET("/stats", indexHandler.HandleStats)
			apiV1.POST("/reindex", indexHandler.HandleReindex)
			apiV1.POST("/query", queryHandler.HandleQuery)
			apiV1.POST("/ask", queryHandler.HandleAsk)
		}
		router.GET("/ws/ask", func(c *gin.Context) {
			wsHandler.HandleAsk(c.Writer, c.Request)
		})

		log.Info("starting server", "port", a.cfg.Port)
		if err := router.Run(":" + a.cfg.Port); err != nil {
			log.Fatal("server error", "error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
