package core

import (
	"context"
	"embed"
	"io/fs"

	"github.com/go-faster/errors"

	"github.com/iota-uz/sitecms/modules/core/domain/aggregates/user"
	"github.com/iota-uz/sitecms/modules/core/domain/entities/session"
	"github.com/iota-uz/sitecms/modules/core/infrastructure/persistence"
	"github.com/iota-uz/sitecms/modules/core/presentation/controllers"
	"github.com/iota-uz/sitecms/modules/core/seed"
	"github.com/iota-uz/sitecms/modules/core/services"
	"github.com/iota-uz/sitecms/pkg/application"
	"github.com/iota-uz/sitecms/pkg/blob"
	"github.com/iota-uz/sitecms/pkg/blob/s3"
	"github.com/iota-uz/sitecms/pkg/configuration"
	"github.com/iota-uz/sitecms/pkg/middleware"
)

//go:embed infrastructure/persistence/migrations/*.sql
var migrationFiles embed.FS

// ModuleOptions overrides the stores picked from configuration. Tests use it
// to run against memory.
type ModuleOptions struct {
	Users    user.Repository
	Sessions session.Repository
	Blobs    blob.Store
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

	userRepo, sessionRepo, err := m.repositories(conf)
	if err != nil {
		return err
	}
	blobs := m.options.Blobs
	if blobs == nil {
		if blobs, err = NewBlobStore(context.Background(), conf.Storage); err != nil {
			return err
		}
	}

	userService := services.NewUserService(userRepo, app.EventPublisher())
	sessionService := services.NewSessionService(sessionRepo, app.EventPublisher())
	app.RegisterServices(
		userService,
		sessionService,
		services.NewAuthService(userService, sessionService, conf.SessionDuration),
		services.NewUploadService(blobs, app.EventPublisher(), conf.MaxUploadSize),
	)

	app.RegisterControllers(
		controllers.NewHealthController(app),
		controllers.NewLoginController(app),
		controllers.NewUploadController(app),
	)
	app.Seeder().Register(seed.AdminSeedFunc(conf.Admin.Email, conf.Admin.Password))
	return nil
}

func (m *Module) repositories(conf *configuration.Configuration) (user.Repository, session.Repository, error) {
	users, sessions := m.options.Users, m.options.Sessions
	if users == nil {
		if conf.UsesMemoryStore() {
			users = persistence.NewInmemUserRepository()
		} else {
			users = persistence.NewUserRepository()
		}
	}
	if sessions != nil {
		return users, sessions, nil
	}
	switch {
	case conf.UsesMemoryStore():
		sessions = persistence.NewInmemSessionRepository()
	case conf.Store.Sessions == configuration.SessionStoreRedis:
		client, err := middleware.NewRedisClient(conf.Store.RedisURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "session redis")
		}
		sessions = persistence.NewRedisSessionRepository(client)
	default:
		sessions = persistence.NewSessionRepository()
	}
	return users, sessions, nil
}

// NewBlobStore opens the upload store selected by BLOB_DRIVER.
func NewBlobStore(ctx context.Context, opts configuration.StorageOptions) (blob.Store, error) {
	switch opts.Driver {
	case configuration.BlobDriverMemory:
		return blob.NewMemoryStore(), nil
	case configuration.BlobDriverS3:
		aws := configuration.Use().AWS
		return s3.New(ctx, s3.Config{
			Region:          opts.S3Region,
			Bucket:          opts.S3Bucket,
			Prefix:          opts.S3Prefix,
			Endpoint:        opts.S3Endpoint,
			AccessKeyID:     aws.AccessKeyID,
			SecretAccessKey: aws.SecretAccessKey,
			PathStyle:       opts.S3Endpoint != "",
			PresignTTL:      opts.PresignTTL,
		})
	default:
		return blob.NewFSStore(opts.UploadsPath)
	}
}

func (m *Module) Name() string {
	return "core"
}
