package commands

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mwhitfield/safari-backoffice/internal/config"
	"github.com/mwhitfield/safari-backoffice/pkg/clients/apiclient"
	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
	"github.com/mwhitfield/safari-backoffice/pkg/session"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg     *config.Config
	API     *apiclient.Client
	Session *session.Store
	Logger  *zap.Logger
	Ctx     context.Context
}

// Authed returns an API client carrying the current session token plus the
// identity it belongs to. Commands that talk to anything other than the
// token endpoint go through here.
func (app *AppContext) Authed() (*apiclient.Client, *model.Identity, error) {
	identity := app.Session.Current()
	if identity == nil {
		return nil, nil, fmt.Errorf("not logged in (run 'login <email>' first)")
	}
	client := apiclient.NewClientWithToken(app.Ctx, app.Cfg.APIBaseURL, app.Cfg.RequestTimeout(), identity.Token)
	return client, identity, nil
}

// HandleAPIError translates a session-expired response into a logout plus a
// re-login prompt. Every command funnels API errors through this so expiry
// is handled once.
func (app *AppContext) HandleAPIError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apiclient.ErrSessionExpired) {
		app.Logger.Info("Session expired, clearing stored identity")
		app.Session.Logout()
		return fmt.Errorf("your session has expired; please log in again")
	}
	return err
}
