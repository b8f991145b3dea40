// Package web implements the portal web service: the fiber application,
// embedded templates and static assets, and route registration for every
// feature handler.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/iskcon-portal/iskcon-portal/internal/config"
	accesslog "github.com/iskcon-portal/iskcon-portal/internal/logger/adapter/fiber"
	"github.com/iskcon-portal/iskcon-portal/internal/notify"
	"github.com/iskcon-portal/iskcon-portal/internal/store"
	"github.com/iskcon-portal/iskcon-portal/internal/web/handler/dashboard"
	"github.com/iskcon-portal/iskcon-portal/internal/web/handler/devotee"
	"github.com/iskcon-portal/iskcon-portal/internal/web/handler/donation"
	"github.com/iskcon-portal/iskcon-portal/internal/web/handler/gitaquotes"
	"github.com/iskcon-portal/iskcon-portal/internal/web/handler/kitchen"
	"github.com/iskcon-portal/iskcon-portal/internal/web/handler/notifications"
	sessionhandler "github.com/iskcon-portal/iskcon-portal/internal/web/handler/session"
	"github.com/iskcon-portal/iskcon-portal/internal/web/handler/userpanel"
)

// CheckAlivePath is the liveness probe route.
const CheckAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App   *fiber.App
	cfg   *config.Config
	alive atomic.Bool
}

// Start starts the web service on the configured port.
func (s *Service) Start() error {
	var doneFiber = make(chan bool)

	s.alive.Store(true)

	go func() {
		addr := ":" + strconv.Itoa(s.cfg.Webserver.Port)

		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	s.WaitShutdown()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the portal.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	log.Info().Msgf(
		"graceful shutdown: return 503 while %d seconds to let LB remove this pod from active targets",
		s.cfg.Webserver.ShutDownTime,
	)

	s.alive.Store(false)
	time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration and wires
// every feature handler.
func New(cfg *config.Config, st *store.Store, center *notify.Center, fetcher notify.QuoteFetcher) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if st == nil {
		panic("store cannot be nil")
	}

	if center == nil {
		panic("notification center cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in dev mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	registerTemplateFuncs(templateEngine)

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "iskcon-portal",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access logging
	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	// init web service
	service := &Service{
		cfg: cfg,
		App: app,
	}

	// init handlers (they register their own routes)
	dashboard.Handler.Init(app, cfg, st, center)
	userpanel.Handler.Init(app, cfg, st, center, fetcher)
	devotee.Handler.Init(app, cfg, st, center)
	sessionhandler.Handler.Init(app, cfg, st, center)
	donation.Handler.Init(app, cfg, st, center)
	kitchen.Handler.Init(app, cfg, st, center)
	gitaquotes.Handler.Init(app, cfg, st, center, fetcher)
	notifications.Handler.Init(app, cfg, st, center)

	// liveness probe for reverse proxies
	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendStatus(fiber.StatusOK)
	})

	// prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// redirect root to dashboard
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	return service
}

// registerTemplateFuncs adds the helper functions shared by the templates.
func registerTemplateFuncs(engine *html.Engine) {
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("sub", func(a, b int) int {
		return a - b
	})
	engine.AddFunc("mul", func(a, b int) int {
		return a * b
	})
	engine.AddFunc("pct", func(part, whole float64) int {
		if whole <= 0 {
			return 0
		}

		p := int(part / whole * 100)
		if p > 100 {
			p = 100
		}

		return p
	})
}
