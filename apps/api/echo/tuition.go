package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tundavala/escola/core/tuition"
)

type tuitionApi struct {
	svc      *tuition.Service
	validate *validator.Validate
	metrics  *metrics
}

func registerTuitionAPI(g *echo.Group, svc *tuition.Service, validate *validator.Validate, m *metrics) {
	api := tuitionApi{
		svc:      svc,
		validate: validate,
		metrics:  m,
	}

	g.POST("/calculate-tuition", api.calculate)
	g.GET("/tuition-calculations", api.query)
}

// Handlers

func (api *tuitionApi) calculate(ctx echo.Context) error {
	var data tuition.Request
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to tuition.Request")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	quote, err := api.svc.Calculate(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "calculating tuition")
	}
	api.metrics.tuitionCalculated(ctx.Request().Context(), data.EducationLevel, data.PaymentMode)

	return ctx.JSON(http.StatusOK, quote)
}

func (api *tuitionApi) query(ctx echo.Context) error {
	calcs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying tuition calculations")
	}
	return ctx.JSON(http.StatusOK, calcs)
}
