package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// All success bodies share the {"success": true, ...} envelope.

func OK(c *gin.Context, payload gin.H) {
	c.JSON(http.StatusOK, merge(payload))
}

func Created(c *gin.Context, payload gin.H) {
	c.JSON(http.StatusCreated, merge(payload))
}

func merge(payload gin.H) gin.H {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return body
}
