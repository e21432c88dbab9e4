package guidebook

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
// The component is rendered into memory first so a failing view still
// produces a clean error page.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	body, err := renderToString(c.Request().Context(), cmp)
	if err != nil {
		return err
	}
	return c.HTML(code, body)
}
