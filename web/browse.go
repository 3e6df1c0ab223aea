package web

import (
	"context"
	"errors"
	"strconv"

	"goflix/models"
	"goflix/views"
	"goflix/web/pages"
	"goflix/web/pages/auth"
	"goflix/web/pages/browse"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// HomePage mounts a fresh home screen for the session and renders it.
// Mounting waits for every component so the page arrives complete.
func (app *App) HomePage(c rweb.Context) error {
	home := app.Registry.MountHome(context.Background(), sessionID(c))

	c.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return c.WriteHTML(pages.NewHome(home.Snapshot(), app.Config.ImageBaseURL).Render())
}

// RowClick toggles the trailer slot of a row and returns the row fragment.
func (app *App) RowClick(c rweb.Context) error {
	rowIdx, row, err := app.sessionRow(c)
	if err != nil {
		return notFound(c, "Row not found")
	}

	index, err := strconv.Atoi(c.Request().Param("index"))
	if err != nil {
		return notFound(c, "Item not found")
	}

	if err = row.Click(context.Background(), index); err != nil {
		if errors.Is(err, views.ErrNoSuchItem) {
			return notFound(c, "Item not found")
		}
		logger.LogErr(err, "Row click failed", "row", rowIdx, "index", index)
		return notFound(c, "Item not found")
	}

	return c.WriteHTML(app.renderRow(rowIdx, row.Snapshot()))
}

// RowEndpoint moves a row to another catalog endpoint and returns the row fragment.
func (app *App) RowEndpoint(c rweb.Context) error {
	rowIdx, row, err := app.sessionRow(c)
	if err != nil {
		return notFound(c, "Row not found")
	}

	endpoint := c.Request().FormValue("endpoint")
	if !models.IsCatalogEndpoint(endpoint) {
		return badRequest(c, "Unknown endpoint")
	}

	row.SetFetchURL(context.Background(), endpoint)
	return c.WriteHTML(app.renderRow(rowIdx, row.Snapshot()))
}

// sessionRow finds the row named by the :row path parameter in the session's home.
func (app *App) sessionRow(c rweb.Context) (int, *views.Row, error) {
	home, ok := app.Registry.Home(sessionID(c))
	if !ok {
		return 0, nil, views.ErrNoSuchRow
	}

	rowIdx, err := strconv.Atoi(c.Request().Param("row"))
	if err != nil {
		return 0, nil, views.ErrNoSuchRow
	}

	row, err := home.Row(rowIdx)
	if err != nil {
		return 0, nil, err
	}
	return rowIdx, row, nil
}

func (app *App) renderRow(rowIdx int, state views.RowState) string {
	return browse.RenderRow(browse.Row{
		Index:       rowIdx,
		State:       state,
		ImageBase:   app.Config.ImageBaseURL,
		GenrePicker: pages.IsGenreRow(state),
	})
}

// LoginPage mounts a fresh form (back to SignIn) and renders the page.
func (app *App) LoginPage(c rweb.Context) error {
	login := app.Registry.MountLogin(sessionID(c))

	c.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return c.WriteHTML(auth.NewLoginPage(login.State()).Render())
}

// LoginMode switches the form between SignIn and SignUp and returns the
// form fragment, keeping what the user had typed.
func (app *App) LoginMode(c rweb.Context) error {
	mode, ok := views.ParseSignMode(c.Request().FormValue("mode"))
	if !ok {
		return badRequest(c, "Unknown mode")
	}

	login, found := app.Registry.Login(sessionID(c))
	if !found {
		// The form outlived its session; start a new one in place
		login = app.Registry.MountLogin(sessionID(c))
	}

	login.Remember(c.Request().FormValue("name"), c.Request().FormValue("email"))
	login.Switch(mode)

	return c.WriteHTML(auth.RenderLoginForm(login.State()))
}
