package response

import "github.com/gin-gonic/gin"

// Every error in the API, and most successes, is a JSON object with a
// human-readable message. Handlers that need richer bodies pass gin.H
// through JSON.

// Message writes {message} with the given status.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// JSON writes an arbitrary payload with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// AbortMessage writes {message} and stops the handler chain. Used by
// middleware rejections.
func AbortMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
