package handlers

import (
	"net/http"
	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Root liveness response, kept byte-identical to what the deployed
// clients already expect.
func Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello from Server..")
}
