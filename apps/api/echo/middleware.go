package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/tundavala/escola/core"
	"github.com/tundavala/escola/core/visit"
)

const (
	translatorKey = "translator"
	objectKey     = "object"
)

// languageMiddleware stores the translator matching the Accept-Language header in the context.
func languageMiddleware(translators *core.Translators) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(translatorKey, translators.Find(ctx.Request().Header.Get("Accept-Language")))
			return next(ctx)
		}
	}
}

func requestLoggerMiddleware(logger core.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info(
				fmt.Sprintf("%s %s", v.Method, v.URI),
				map[string]interface{}{"status": v.Status, "latency": v.Latency.String(), "request_id": v.RequestID},
			)
			return nil
		},
	})
}

// appointmentCtxMiddleware loads the appointment named by the `id` path param into the context.
func appointmentCtxMiddleware(svc *visit.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			appt, err := svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == visit.ErrNotFound {
					return echo.NewHTTPError(http.StatusNotFound, visit.ErrNotFound.Error())
				}
				return errors.Wrap(err, "finding appointment by ID")
			}
			ctx.Set(objectKey, appt)
			return next(ctx)
		}
	}
}

func getContextAppointment(ctx echo.Context) (visit.Appointment, error) {
	if appt, ok := ctx.Get(objectKey).(visit.Appointment); ok {
		return appt, nil
	}
	return visit.Appointment{}, errors.New("appointment not found in echo.Context")
}
