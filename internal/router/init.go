package router

import (
	"github.com/oksasatya/go-mentorship-tracker/internal/application"
	"github.com/oksasatya/go-mentorship-tracker/internal/container"
	"github.com/oksasatya/go-mentorship-tracker/internal/infrastructure/search"
	"github.com/oksasatya/go-mentorship-tracker/internal/infrastructure/storage"
	handlers "github.com/oksasatya/go-mentorship-tracker/internal/interface/http"
	"github.com/oksasatya/go-mentorship-tracker/internal/router/modules"
	tpl "github.com/oksasatya/go-mentorship-tracker/pkg/mailer/templates"
)

// BuildService assembles the application service from the container.
// Optional integrations are only attached when their client is present.
func BuildService() *application.Service {
	cfg := container.GetConfig()
	opts := []application.Option{
		application.WithBrand(tpl.Brand{
			AppName:     cfg.AppName,
			CompanyName: cfg.CompanyName,
			AppURL:      cfg.AppURL,
			SupportURL:  cfg.SupportURL,
		}),
	}
	if pub := container.GetRabbitPub(); pub != nil {
		opts = append(opts, application.WithPublisher(pub))
	}
	if es := container.GetES(); es != nil {
		opts = append(opts, application.WithMentorIndex(search.NewMentorIndex(es, cfg.ESMentorsIndex)))
	}
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		opts = append(opts, application.WithAvatarStorage(storage.NewAvatarStorage(gcs, cfg.GCSBucket)))
	}
	return application.NewService(
		container.GetUserRepository(),
		container.GetJWT(),
		container.GetHasher(),
		container.GetLogger(),
		opts...,
	)
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := BuildService()
	debug := cfg.IsDevelopment()

	rdb := container.GetRedis()
	if !cfg.RateLimitEnabled {
		rdb = nil
	}

	sys := handlers.NewSystemHandler(cfg.AppName, cfg.Env)
	r.AddRoot(modules.NewSystemModule(sys))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc, logger, debug), svc, rdb))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc, logger, debug), svc, rdb))
	if debug {
		r.AddRoot(modules.NewDebugModule(rdb))
	}
	r.NoRoute(sys.NotFound)
}
