package http

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the web server: contract validation, struct validation,
// error mapping and swagger UI around server's routes.
func NewEcho(ctx context.Context, server *Server) (*echo.Echo, error) {
	doc, err := LoadContract(ctx)
	if err != nil {
		return nil, err
	}
	contract, err := ContractValidator(doc)
	if err != nil {
		return nil, err
	}
	if err := RegisterDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewCustomValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health"
		},
	}))
	e.Use(skipFor("/swagger/", contract))

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	server.RegisterHandlers(e)

	return e, nil
}

func skipFor(prefix string, mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		wrapped := mw(next)
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Request().URL.Path, prefix) {
				return next(c)
			}
			return wrapped(c)
		}
	}
}
