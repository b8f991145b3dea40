// Package userpanel provides the personal sadhana panel. The portal has no
// accounts; the first registered devotee stands in as the current user.
package userpanel

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
	// Path is the path to the user panel page.
	Path = handler.RootPath + "user-panel"

	// TemplateName is the name of the user panel template.
	TemplateName = "userpanel/panel"
)

// SadhanaDay is one bar of the weekly chanting chart. The series is a
// fixed sample; per-day round logging is display only.
type SadhanaDay struct {
	Day    string
	Rounds int
}

// Service is the user panel handler service.
type Service struct {
	cfg     *config.Config
	store   *store.Store
	center  *notify.Center
	fetcher notify.QuoteFetcher
}

// Handler is the user panel handler.
var Handler = Service{}

// Init initializes the user panel handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store, center *notify.Center, fetcher notify.QuoteFetcher) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.store = st
	s.center = center
	s.fetcher = fetcher

	app.Get(Path, s.Get)
}

// Get handles the user panel page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("My Panel", "user-panel").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("My Panel", Path, true).
		WithUnread(s.center.UnreadCount())

	devotees, err := s.store.Devotees()
	if err != nil {
		log.Error().Err(err).Msg("failed to load devotees")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load devotees")
	}

	user := mockUser(devotees)

	sessions, err := s.store.Sessions()
	if err != nil {
		log.Error().Err(err).Msg("failed to load sessions")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load sessions")
	}

	// A failed fetch degrades to a panel without a quote.
	var quote *models.GitaQuote

	if s.fetcher != nil {
		if quote, err = s.fetcher.Fetch(c.Context()); err != nil {
			log.Warn().Err(err).Msg("no gita quote for user panel")
		}
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"User":       user,
		"Sessions":   sessions,
		"Quote":      quote,
		"Sadhana":    weeklySadhanaSample(),
	}, handler.BaseLayout)
}

// mockUser picks the first registered devotee, falling back to a sample
// profile while the registry is empty.
func mockUser(devotees []models.Devotee) models.Devotee {
	if len(devotees) > 0 {
		return devotees[0]
	}

	return models.Devotee{
		Name:          "Temple Admin",
		SpiritualName: "Sevak Das",
		Email:         "admin@iskcon.org",
		Status:        models.StatusAspirant,
		DailyMalas:    16,
	}
}

func weeklySadhanaSample() []SadhanaDay {
	return []SadhanaDay{
		{Day: "Mon", Rounds: 16},
		{Day: "Tue", Rounds: 16},
		{Day: "Wed", Rounds: 12},
		{Day: "Thu", Rounds: 16},
		{Day: "Fri", Rounds: 14},
		{Day: "Sat", Rounds: 16},
		{Day: "Sun", Rounds: 16},
	}
}
