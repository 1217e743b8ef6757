package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	// swagger:route GET /health health
	//
	// Health check
	//
	// responses:
	//   200:
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}
