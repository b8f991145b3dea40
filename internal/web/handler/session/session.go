// Package session provides the session schedule handlers: list and the
// new-session form. Attendee IDs reference devotee records loosely; no
// foreign-key validity is enforced.
package session

import (
	"errors"

	"github.com/go-playground/validator/v10"
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
	// Path is the path to the session list page.
	Path = handler.RootPath + "sessions"

	// TemplateName is the name of the session list template.
	TemplateName = "session/list"

	// FormTemplateName is the name of the new-session form template.
	FormTemplateName = "session/new"
)

// Form carries the "new session" submission.
type Form struct {
	Title       string   `form:"title" validate:"required"`
	Date        string   `form:"date" validate:"required"`
	Location    string   `form:"location" validate:"required"`
	Facilitator string   `form:"facilitator" validate:"required"`
	AttendeeIDs []string `form:"attendee_ids"`
}

// Service is the session handler service.
type Service struct {
	cfg       *config.Config
	store     *store.Store
	center    *notify.Center
	validator *validator.Validate
}

// Handler is the session handler.
var Handler = Service{}

// Init initializes the session handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store, center *notify.Center) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.store = st
	s.center = center
	s.validator = validator.New()

	app.Get(Path, s.Get)
	app.Get(Path+"/new", s.GetNew)
	app.Post(Path, s.Post)
}

func (s *Service) nav(title string) *navigation.Context {
	return navigation.NewContext(title, "sessions").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Sessions", Path, true).
		WithUnread(s.center.UnreadCount())
}

// Get handles the session list page.
func (s *Service) Get(c *fiber.Ctx) error {
	sessions, err := s.store.Sessions()
	if err != nil {
		log.Error().Err(err).Msg("failed to load sessions")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load sessions")
	}

	devotees, err := s.store.Devotees()
	if err != nil {
		log.Error().Err(err).Msg("failed to load devotees")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load devotees")
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": s.nav("Session Schedule"),
		"Sessions":   sessions,
		"Devotees":   devotees,
	}, handler.BaseLayout)
}

// GetNew renders the new-session form.
func (s *Service) GetNew(c *fiber.Ctx) error {
	devotees, err := s.store.Devotees()
	if err != nil {
		log.Error().Err(err).Msg("failed to load devotees")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load devotees")
	}

	return c.Render(FormTemplateName, fiber.Map{
		"Navigation": s.nav("New Session"),
		"Devotees":   devotees,
		"Form":       Form{},
	}, handler.BaseLayout)
}

// Post handles the new-session form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	var form Form
	if err := c.BodyParser(&form); err != nil {
		log.Error().Err(err).Msg("failed to parse session form")

		return c.Status(fiber.StatusBadRequest).Render(FormTemplateName, fiber.Map{
			"Navigation": s.nav("New Session"),
			"Form":       form,
			"Error":      "Invalid form data",
		}, handler.BaseLayout)
	}

	if err := s.validator.Struct(&form); err != nil {
		var validationErrors validator.ValidationErrors
		errors.As(err, &validationErrors)

		errorMessages := make([]string, len(validationErrors))
		for i, ve := range validationErrors {
			errorMessages[i] = "Field '" + ve.Field() + "' failed validation tag '" + ve.Tag() + "'"
		}

		log.Debug().Err(err).Msg("session form validation failed")

		return c.Status(fiber.StatusBadRequest).Render(FormTemplateName, fiber.Map{
			"Navigation": s.nav("New Session"),
			"Form":       form,
			"Error":      errorMessages,
		}, handler.BaseLayout)
	}

	added, err := s.store.AddSession(models.Session{
		Title:       form.Title,
		Date:        form.Date,
		Location:    form.Location,
		Facilitator: form.Facilitator,
		AttendeeIDs: form.AttendeeIDs,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to save session")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to save session")
	}

	log.Info().
		Str("id", added.ID).
		Str("title", added.Title).
		Int("attendees", len(added.AttendeeIDs)).
		Msg("session scheduled")

	return c.Redirect(Path)
}
