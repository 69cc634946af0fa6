package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockdata/internal/domain/dto"
	"github.com/guttosm/stockdata/internal/logger"
)

// ErrorHandler renders errors attached with c.Error as a 500 dto.ErrorResponse,
// unless the handler already wrote a response.
//
// Usage:
//
//	router.Use(middleware.ErrorHandler)
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}
	last := c.Errors.Last()
	logger.FromContext(c.Request.Context()).Error().Err(last.Err).Str("path", c.Request.URL.Path).Msg("request failed")

	if c.Writer.Written() {
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last.Err))
}

// AbortWithError stops the chain and writes a dto.ErrorResponse with the given status.
func AbortWithError(c *gin.Context, status int, msg string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(msg, err))
}
