package response

import "github.com/gin-gonic/gin"

// Success writes the success envelope: {"data": <payload>}.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{"data": data})
}

// Error writes the failure envelope: {"error": {"code", "message"}}.
// The message is the only client-facing detail; anything richer belongs
// in the server log.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// Paginated wraps a list page in the success envelope.
func Paginated(c *gin.Context, statusCode int, items interface{}, total int64, page, pageSize int) {
	c.JSON(statusCode, gin.H{
		"data": gin.H{
			"items":     items,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		},
	})
}
