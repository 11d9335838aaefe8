package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tundavala/escola/core/visit"
)

type visitApi struct {
	svc      *visit.Service
	validate *validator.Validate
	metrics  *metrics
}

func registerVisitAPI(g *echo.Group, svc *visit.Service, validate *validator.Validate, m *metrics) {
	api := visitApi{
		svc:      svc,
		validate: validate,
		metrics:  m,
	}

	vg := g.Group("/visit-appointments")
	vg.POST("", api.create)
	vg.GET("", api.query)

	// detail endpoints
	dg := vg.Group("/:id", appointmentCtxMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PATCH("/status", api.updateStatus)
}

// Handlers

func (api *visitApi) create(ctx echo.Context) error {
	var data visit.NewAppointment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAppointment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	appt, err := api.svc.Schedule(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "scheduling visit")
	}
	api.metrics.visitScheduled(ctx.Request().Context(), string(appt.VisitType))

	return ctx.JSON(http.StatusOK, appointmentResponse{Success: true, Appointment: appt})
}

func (api *visitApi) query(ctx echo.Context) error {
	appts, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying appointments")
	}
	return ctx.JSON(http.StatusOK, appts)
}

func (api *visitApi) retrieve(ctx echo.Context) error {
	appt, err := getContextAppointment(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context appointment")
	}
	return ctx.JSON(http.StatusOK, appt)
}

func (api *visitApi) updateStatus(ctx echo.Context) error {
	appt, err := getContextAppointment(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context appointment")
	}

	var data visit.StatusUpdate
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusUpdate")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	updated, err := api.svc.UpdateStatus(ctx.Request().Context(), appt.ID, visit.Status(data.Status))
	if err != nil {
		if errors.Cause(err) == visit.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, visit.ErrNotFound.Error())
		}
		return errors.Wrap(err, "updating appointment status")
	}
	if updated.Status != appt.Status {
		api.metrics.statusChanged(ctx.Request().Context(), string(updated.Status))
	}

	return ctx.JSON(http.StatusOK, appointmentResponse{Success: true, Appointment: updated})
}

type appointmentResponse struct {
	Success     bool              `json:"success"`
	Appointment visit.Appointment `json:"appointment"`
}
