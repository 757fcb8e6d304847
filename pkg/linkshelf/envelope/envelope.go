package envelope

import (
	"github.com/gin-gonic/gin"
)

// Error scopes
const (
	ScopeBookmarks  = "bookmarks"
	ScopeBackend    = "backend"
	ScopeValidation = "validation"
)

// BackendMessage is the only detail clients see for persistence failures
const BackendMessage = "Something went wrong"

// Errors builds the error envelope {errors: {scope: value}}
func Errors(scope string, value interface{}) gin.H {
	return gin.H{"errors": gin.H{scope: value}}
}

// Error writes an error envelope with the given status
func Error(c *gin.Context, status int, scope string, value interface{}) {
	c.JSON(status, Errors(scope, value))
}

// Data writes {data: value} with the given status
func Data(c *gin.Context, status int, value interface{}) {
	c.JSON(status, gin.H{"data": value})
}
