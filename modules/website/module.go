package website

import (
	"context"
	"embed"
	"io/fs"
	"strings"

	"github.com/go-faster/errors"
	"github.com/prometheus/client_golang/prometheus"

	coreservices "github.com/iota-uz/sitecms/modules/core/services"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/inquiry"
	"github.com/iota-uz/sitecms/modules/website/domain/entities/page"
	"github.com/iota-uz/sitecms/modules/website/infrastructure/persistence"
	"github.com/iota-uz/sitecms/modules/website/presentation/controllers"
	"github.com/iota-uz/sitecms/modules/website/seed"
	"github.com/iota-uz/sitecms/modules/website/services"
	"github.com/iota-uz/sitecms/pkg/application"
	"github.com/iota-uz/sitecms/pkg/configuration"
	"github.com/iota-uz/sitecms/pkg/mailer"
	"github.com/iota-uz/sitecms/pkg/mailer/ses"
	"github.com/iota-uz/sitecms/pkg/metrics"
	"github.com/iota-uz/sitecms/pkg/ordering"
)

//go:embed infrastructure/persistence/migrations/*.sql
var migrationFiles embed.FS

// ModuleOptions overrides what is otherwise picked from configuration.
type ModuleOptions struct {
	Stores    *persistence.Stores
	Pages     page.Repository
	Inquiries inquiry.Repository
	Mailer    mailer.Mailer
	// Defaults to prometheus.DefaultRegisterer. Tests pass a fresh registry.
	Registerer prometheus.Registerer
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{
		options: opts,
	}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	migrations, err := fs.Sub(migrationFiles, "infrastructure/persistence/migrations")
	if err != nil {
		return err
	}
	app.Migrations().RegisterSchema(m.Name(), migrations)

	stores, pages, inquiries := m.repositories(conf)
	mail, err := m.mailer(app, conf)
	if err != nil {
		return err
	}
	registerer := m.options.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	collections := services.NewCollectionService(services.CollectionsConfig{
		Stores:      stores,
		Publisher:   app.EventPublisher(),
		Observer:    metrics.NewOrderingObserver(registerer),
		LockTimeout: conf.Store.LockTimeout,
	})
	uploads := app.Service(coreservices.UploadService{}).(*coreservices.UploadService)
	notifier := services.NewNotificationService(
		mail,
		recipients(conf.Mail.NotifyTo),
		conf.Origin,
		app.Logger().WithField("service", "notifications"),
	)
	app.RegisterServices(
		collections,
		services.NewPageService(pages, app.EventPublisher()),
		services.NewInquiryService(inquiries, collections.Jobs, uploads, app.EventPublisher()),
		notifier,
	)
	app.EventPublisher().SubscribeAsync(notifier.OnSubmitted)
	app.EventPublisher().Subscribe(func(e *ordering.ReorderedEvent) {
		app.Logger().WithField("scope", e.Scope.String()).Debug("collection reordered")
	})

	app.RegisterControllers(controllers.NewCollectionControllers(app)...)
	app.RegisterControllers(
		controllers.NewPageController(app),
		controllers.NewInquiryController(app),
	)
	app.Seeder().Register(seed.PagesSeedFunc)
	return nil
}

func (m *Module) repositories(conf *configuration.Configuration) (persistence.Stores, page.Repository, inquiry.Repository) {
	var stores persistence.Stores
	switch {
	case m.options.Stores != nil:
		stores = *m.options.Stores
	case conf.UsesMemoryStore():
		stores = persistence.NewMemoryStores()
	default:
		stores = persistence.NewPostgresStores()
	}

	pages, inquiries := m.options.Pages, m.options.Inquiries
	if pages == nil {
		if conf.UsesMemoryStore() {
			pages = persistence.NewInmemPageRepository()
		} else {
			pages = persistence.NewPageRepository()
		}
	}
	if inquiries == nil {
		if conf.UsesMemoryStore() {
			inquiries = persistence.NewInmemInquiryRepository()
		} else {
			inquiries = persistence.NewInquiryRepository()
		}
	}
	return stores, pages, inquiries
}

func (m *Module) mailer(app application.Application, conf *configuration.Configuration) (mailer.Mailer, error) {
	if m.options.Mailer != nil {
		return m.options.Mailer, nil
	}
	if conf.Mail.Driver != configuration.MailDriverSES {
		return mailer.NewLogMailer(app.Logger()), nil
	}
	sesMailer, err := ses.New(context.Background(), ses.Config{
		Region:          conf.AWS.Region,
		From:            conf.Mail.From,
		AccessKeyID:     conf.AWS.AccessKeyID,
		SecretAccessKey: conf.AWS.SecretAccessKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ses mailer")
	}
	return sesMailer, nil
}

func recipients(raw string) []string {
	var out []string
	for _, addr := range strings.Split(raw, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func (m *Module) Name() string {
	return "website"
}
