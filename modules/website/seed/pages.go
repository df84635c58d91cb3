package seed

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/sitecms/modules/website/services"
	"github.com/iota-uz/sitecms/pkg/application"
)

// PagesSeedFunc creates the empty default pages so the public site never
// links to a missing one.
func PagesSeedFunc(ctx context.Context, app application.Application) error {
	pageService := app.Service(services.PageService{}).(*services.PageService)
	created, err := pageService.EnsureDefaults(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to seed pages")
	}
	app.Logger().Infof("Default pages: %d created", created)
	return nil
}
