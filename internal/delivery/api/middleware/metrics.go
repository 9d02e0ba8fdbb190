package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// RequestRecorder receives one observation per finished request.
type RequestRecorder interface {
	RecordRequest(method, route string, statusCode int, elapsed time.Duration)
}

// Metrics observes every request once its response status is final. It must
// sit outside the logger middleware, which is where errors get rendered.
func Metrics(recorder RequestRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			recorder.RecordRequest(c.Request().Method, route, c.Response().Status, time.Since(start))

			return nil
		}
	}
}
