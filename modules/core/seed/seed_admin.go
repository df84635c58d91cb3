package seed

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/sitecms/modules/core/services"
	"github.com/iota-uz/sitecms/pkg/application"
)

// AdminSeedFunc makes sure an editor account with email exists. It is a no-op
// when email is empty.
func AdminSeedFunc(email, password string) application.SeedFunc {
	return func(ctx context.Context, app application.Application) error {
		if email == "" {
			app.Logger().Info("ADMIN_EMAIL not set, skipping admin seed")
			return nil
		}
		userService := app.Service(services.UserService{}).(*services.UserService)
		u, created, err := userService.EnsureUser(ctx, email, password)
		if err != nil {
			return errors.Wrap(err, "failed to seed admin user")
		}
		if created {
			app.Logger().Infof("Admin user %s created", u.Email())
		} else {
			app.Logger().Infof("Admin user %s already exists", u.Email())
		}
		return nil
	}
}
