package crud

import "github.com/gin-gonic/gin"

// ConfirmField is the form field a delete dialog posts to confirm.
const ConfirmField = "confirm"

// Confirmed reports whether the user confirmed a destructive action.
func Confirmed(c *gin.Context) bool {
	return c.PostForm(ConfirmField) == "yes"
}
