package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const actorHeader = "X-User-Id"

// actor returns the acting user id from the request header. Callers without
// one are recorded as anonymous; identity verification belongs to the
// session layer in front of this service.
func actor(c *gin.Context) string {
	if id := c.GetHeader(actorHeader); id != "" {
		return id
	}
	return "anonymous"
}

// requestLogger logs method, path, status and latency for every request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logrus.WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"actor":   actor(c),
		}).Infof("%s %s", c.Request.Method, c.Request.URL.Path)
	}
}
