package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tundavala/escola/core/contact"
)

type contactApi struct {
	svc      *contact.Service
	validate *validator.Validate
	metrics  *metrics
}

func registerContactAPI(g *echo.Group, svc *contact.Service, validate *validator.Validate, m *metrics) {
	api := contactApi{
		svc:      svc,
		validate: validate,
		metrics:  m,
	}

	g.POST("/contact", api.create)
	g.GET("/contacts", api.query)
}

// Handlers

func (api *contactApi) create(ctx echo.Context) error {
	var data contact.NewContact
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewContact")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating contact")
	}
	api.metrics.contactReceived(ctx.Request().Context())

	return ctx.JSON(http.StatusOK, contactResponse{Success: true, Contact: c})
}

func (api *contactApi) query(ctx echo.Context) error {
	contacts, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying contacts")
	}
	return ctx.JSON(http.StatusOK, contacts)
}

type contactResponse struct {
	Success bool            `json:"success"`
	Contact contact.Contact `json:"contact"`
}
