package api

import (
	"fmt"
	"net/http"

	"blog-backend/pkg/apperror"
	"blog-backend/pkg/config"
	"blog-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorHandler is the normalization boundary: every failure attached with
// c.Error, from any layer, is translated to the uniform envelope here and
// nowhere else. 5xx details stay in the server log; production responses
// carry only the generic message.
func ErrorHandler(log *logrus.Logger, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperror.Normalize(err)

		fields := logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": appErr.Status,
			"code":   appErr.Code,
		}
		if appErr.Status >= http.StatusInternalServerError {
			// appErr.Error() keeps the internal cause; the client message
			// does not.
			log.WithFields(fields).Error(appErr.Error())
		} else {
			log.WithFields(fields).Info(appErr.Error())
		}

		env := response.Envelope{
			Success: false,
			Message: appErr.Message,
			Error:   appErr.Code,
		}
		if len(appErr.Details) > 0 {
			env.Details = appErr.Details
		}
		if appErr.Status >= http.StatusInternalServerError && !cfg.IsProduction() {
			// Go errors carry no origin stack; by the time this middleware
			// runs, the failing frames are gone. The wrapped error chain is
			// the diagnostic, so that is what the development response gets.
			env.Message = appErr.Error()
			env.Stack = fmt.Sprintf("%+v", err)
		}

		c.JSON(appErr.Status, env)
	}
}

// NoRouteHandler answers unknown endpoints with the same envelope shape.
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.Envelope{
			Success: false,
			Message: "The requested endpoint does not exist.",
			Error:   apperror.CodeRouteNotFound,
		})
	}
}
