package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutrilens/backend/internal/slogx"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler recovers from panics in later handlers and answers with a
// JSON 500. Errors attached with c.Error on a response that has not been
// written yet are rendered the same way.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slogx.FromContext(c.Request.Context()).Error("panic recovered",
					"panic", rec,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: c.Errors.Last().Error()})
		}
	}
}
