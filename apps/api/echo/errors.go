package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tundavala/escola/core"
)

const invalidDataMsg = "invalid data"

var invalidTypeTexts = core.Texts{
	"en": "this field has an invalid type",
	"pt": "este campo tem um tipo inválido",
	"zh": "此字段类型无效",
}

// errorResponse is the body of every error reply. Details lists field errors of invalid input.
type errorResponse struct {
	Error   string            `json:"error"`
	Details []core.FieldError `json:"details,omitempty"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger, translators *core.Translators) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var (
			code int
			resp errorResponse
		)

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			// a JSON value of the wrong type is reported like any other invalid field
			var typeErr *json.UnmarshalTypeError
			if errors.As(origErr.Internal, &typeErr) && typeErr.Field != "" {
				translator := contextTranslator(ctx, translators)
				resp.Error = invalidDataMsg
				resp.Details = []core.FieldError{{Field: typeErr.Field, Error: invalidTypeTexts.Get(translator.Locale())}}
				break
			}
			if msg, ok := origErr.Message.(string); ok {
				resp.Error = msg
			} else {
				resp.Error = fmt.Sprint(origErr.Message)
			}
		case validator.ValidationErrors:
			translator := contextTranslator(ctx, translators)
			resp.Error = invalidDataMsg
			resp.Details = make([]core.FieldError, 0, len(origErr))
			for _, vErr := range origErr {
				resp.Details = append(resp.Details, core.FieldError{Field: vErr.Field(), Error: vErr.Translate(translator)})
			}
			code = http.StatusBadRequest
		case *core.ValidationError:
			resp.Error = origErr.Error()
			if origErr.Fields != nil {
				resp.Details = origErr.Fields
				if resp.Error == "" {
					resp.Error = invalidDataMsg
				}
			}
			code = http.StatusBadRequest
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			resp.Error = msg
			logger.Error(msg, errors.Wrap(err, msg), ctx.Request())

			if ctx.Echo().Debug {
				resp.Error = err.Error()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, resp)
			}
			if err != nil {
				logger.Error("sending error response", err)
			}
		}
	}
}

func contextTranslator(ctx echo.Context, translators *core.Translators) ut.Translator {
	if t, ok := ctx.Get(translatorKey).(ut.Translator); ok {
		return t
	}
	return translators.Default()
}
