package web

import (
	"net/http"

	"github.com/rohanthewiz/rweb"
)

// HealthCheck returns the health status of the application
func HealthCheck(c rweb.Context) error {
	return c.WriteJSON(map[string]interface{}{
		"status":  "healthy",
		"service": "goflix",
	})
}

// notFound answers with a bare 404; HTMX leaves the target alone on errors.
func notFound(c rweb.Context, msg string) error {
	c.SetStatus(http.StatusNotFound)
	return c.WriteHTML("<p class=\"error\">" + msg + "</p>")
}

func badRequest(c rweb.Context, msg string) error {
	c.SetStatus(http.StatusBadRequest)
	return c.WriteHTML("<p class=\"error\">" + msg + "</p>")
}
