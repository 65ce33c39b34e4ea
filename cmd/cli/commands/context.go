package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jakechorley/worship-roster/internal/config"
	"github.com/jakechorley/worship-roster/pkg/core/model"
	"github.com/jakechorley/worship-roster/pkg/core/services"
	"github.com/jakechorley/worship-roster/pkg/db"
	"github.com/jakechorley/worship-roster/pkg/errs"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context

	// Credentials from the --phone and --pin flags
	Phone string
	PIN   string

	// Session is set after the first successful login and reused by later commands
	Session *model.Session
}

// RequireSession logs in with the configured credentials unless a session already exists
func (app *AppContext) RequireSession() (model.Session, error) {
	if app.Session != nil {
		return *app.Session, nil
	}
	if app.Phone == "" || app.PIN == "" {
		return model.Session{}, errs.Forbidden("login", "log in with --phone and --pin")
	}

	session, err := services.Login(app.Ctx, app.Database, app.Logger, app.Cfg.PhoneNumberLength, app.Phone, app.PIN)
	if err != nil {
		return model.Session{}, err
	}
	app.Session = session
	return *session, nil
}

// OptionalSession returns the logged in session when credentials were given, otherwise an anonymous one
func (app *AppContext) OptionalSession() (model.Session, error) {
	if app.Session == nil && app.Phone == "" {
		return model.Session{}, nil
	}
	return app.RequireSession()
}

// targetMember is the member a command acts on: the --member flag if given, otherwise the session's own
func targetMember(session model.Session, member string) string {
	if member != "" {
		return member
	}
	return session.PhoneNumber
}

// DisplayError turns an error into the line shown to the user.
// Classified errors get their friendly message; anything else (flag or argument errors) is shown as is.
func DisplayError(err error) string {
	var e *errs.Error
	if errors.As(err, &e) {
		return errs.UserMessage(err)
	}
	return err.Error()
}
