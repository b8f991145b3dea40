// Package notifications provides the bell dropdown handlers: the list
// partial and mark-all-read. Reads are all or nothing; there is no
// per-notification toggle.
package notifications

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/iskcon-portal/iskcon-portal/internal/config"
	"github.com/iskcon-portal/iskcon-portal/internal/notify"
	"github.com/iskcon-portal/iskcon-portal/internal/store"
	"github.com/iskcon-portal/iskcon-portal/internal/web/handler"
)

const (
	// Path is the path to the notification list partial.
	Path = handler.RootPath + "notifications"

	// TemplateName is the name of the notification list template.
	TemplateName = "notifications/list"
)

// Service is the notifications handler service.
type Service struct {
	cfg    *config.Config
	center *notify.Center
}

// Handler is the notifications handler.
var Handler = Service{}

// Init initializes the notifications handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, _ *store.Store, center *notify.Center) {
	if app == nil || cfg == nil || center == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.center = center

	app.Get(Path, s.Get)
	app.Post(Path+"/read-all", s.PostReadAll)
}

// Get renders the bell dropdown partial without the base layout.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"Notifications": s.center.Notifications(),
		"UnreadCount":   s.center.UnreadCount(),
	})
}

// PostReadAll marks every notification read and returns to the referring
// page.
func (s *Service) PostReadAll(c *fiber.Ctx) error {
	if err := s.center.MarkAllRead(); err != nil {
		log.Error().Err(err).Msg("failed to mark notifications read")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to mark notifications read")
	}

	log.Debug().Msg("all notifications marked read")

	referer := c.Get(fiber.HeaderReferer)
	if referer == "" {
		referer = "/dashboard"
	}

	return c.Redirect(referer)
}
