package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse writes the success envelope used by every REST endpoint
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError writes the error envelope. The message is what clients show;
// the error string carries the wrapped detail.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}
