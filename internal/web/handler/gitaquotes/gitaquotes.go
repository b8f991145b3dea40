// Package gitaquotes provides the Gita insights page: one fresh quote per
// request, fetched from the external engine with no caching.
package gitaquotes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/iskcon-portal/iskcon-portal/internal/config"
	"github.com/iskcon-portal/iskcon-portal/internal/notify"
	"github.com/iskcon-portal/iskcon-portal/internal/store"
	"github.com/iskcon-portal/iskcon-portal/internal/store/models"
	"github.com/iskcon-portal/iskcon-portal/internal/web/handler"
	"github.com/iskcon-portal/iskcon-portal/internal/web/navigation"
)

const (
	// Path is the path to the Gita insights page.
	Path = handler.RootPath + "gita"

	// TemplateName is the name of the Gita insights template.
	TemplateName = "gitaquotes/insights"
)

// Service is the Gita insights handler service.
type Service struct {
	cfg     *config.Config
	center  *notify.Center
	fetcher notify.QuoteFetcher
}

// Handler is the Gita insights handler.
var Handler = Service{}

// Init initializes the Gita insights handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, _ *store.Store, center *notify.Center, fetcher notify.QuoteFetcher) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.center = center
	s.fetcher = fetcher

	app.Get(Path, s.Get)
}

// Get handles the Gita insights page rendering. A failed fetch renders the
// page without a quote; the failure is logged, never surfaced as an error.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Gita Insights", "gita").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Gita Quotes", Path, true).
		WithUnread(s.center.UnreadCount())

	var quote *models.GitaQuote

	if s.fetcher != nil {
		var err error
		if quote, err = s.fetcher.Fetch(c.Context()); err != nil {
			log.Warn().Err(err).Msg("no gita quote available")
		}
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Quote":      quote,
	}, handler.BaseLayout)
}
