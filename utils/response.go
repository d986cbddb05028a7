package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
    c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
    c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONFieldErrors returns per-field validation messages the booking form can map
// back onto its inputs.
func JSONFieldErrors(c *gin.Context, code int, fields map[string]string) {
    c.JSON(code, gin.H{"success": false, "field_errors": fields})
}
