package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phamtrung99/ragdex/types"
)

const (
	MinChunkSize = 128
	MaxChunkSize = 1024
	MinOverlap   = 0
	MaxOverlap   = 100
	MinTopK      = 1
	MaxTopK      = 20
)

func sendError(c *gin.Context, code int, err error) {
	c.JSON(code, types.DataResponse{
		Status:  "error",
		Message: err.Error(),
	})
}

func sendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   data,
	})
}
