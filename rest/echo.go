package rest

import (
	"fmt"
	"net/http"

	goerrors "github.com/go-errors/errors"
	"github.com/karagenc/fj4echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/xompass/gradebook-api/http_errors"
)

func NewEchoApp() *echo.Echo {
	app := echo.New()
	app.Use(middleware.Recover())
	app.Use(middleware.CORS())
	app.Use(middleware.Secure())

	app.JSONSerializer = fj4echo.New()

	app.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		responseError := &http_errors.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal Server Error",
		}

		switch e := err.(type) {
		case *http_errors.ErrorResponse:
			responseError = e
		case *echo.HTTPError:
			responseError = http_errors.NewErrorResponse(e.Code, fmt.Sprint(e.Message))
		case *goerrors.Error:
			// Unexpected internal failure; the stack stays in the logs, the
			// client gets a generic 500.
			c.Logger().Error(e.ErrorStack())
		default:
			if err.Error() != "" {
				responseError.Message = err.Error()
			}
		}

		if encodeErr := c.JSON(responseError.Code, responseError); encodeErr != nil {
			c.Logger().Error(encodeErr)
		}
	}

	return app
}
