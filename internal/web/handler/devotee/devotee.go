// Package devotee provides the devotee registry handlers: list with
// substring search, the new-devotee form and record deletion. Editing is
// intentionally absent; profiles are view only once created.
package devotee

import (
	"errors"
	"strconv"
	"strings"

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
	// Path is the path to the devotee list page.
	Path = handler.RootPath + "devotees"

	// TemplateName is the name of the devotee list template.
	TemplateName = "devotee/list"

	// FormTemplateName is the name of the new-devotee form template.
	FormTemplateName = "devotee/new"
)

// Service is the devotee handler service.
type Service struct {
	cfg       *config.Config
	store     *store.Store
	center    *notify.Center
	validator *validator.Validate
}

// Handler is the devotee handler.
var Handler = Service{}

// Init initializes the devotee handler.
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
	app.Post(Path+"/:id/delete", s.Delete)
}

func (s *Service) nav(title string) *navigation.Context {
	return navigation.NewContext(title, "devotees").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Devotees", Path, true).
		WithUnread(s.center.UnreadCount())
}

// Get handles the devotee list page, optionally filtered by ?search=.
func (s *Service) Get(c *fiber.Ctx) error {
	devotees, err := s.store.Devotees()
	if err != nil {
		log.Error().Err(err).Msg("failed to load devotees")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load devotees")
	}

	search := c.Query("search", "")

	return c.Render(TemplateName, fiber.Map{
		"Navigation": s.nav("Devotee Community"),
		"Devotees":   Filter(devotees, search),
		"Total":      len(devotees),
		"Search":     search,
	}, handler.BaseLayout)
}

// GetNew renders the new-devotee form.
func (s *Service) GetNew(c *fiber.Ctx) error {
	return c.Render(FormTemplateName, fiber.Map{
		"Navigation": s.nav("New Devotee"),
		"Statuses":   models.InitiationStatuses(),
		"Form":       Form{DailyMalas: "16"},
	}, handler.BaseLayout)
}

// Post handles the new-devotee form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	var form Form
	if err := c.BodyParser(&form); err != nil {
		log.Error().Err(err).Msg("failed to parse devotee form")

		return c.Status(fiber.StatusBadRequest).Render(FormTemplateName, fiber.Map{
			"Navigation": s.nav("New Devotee"),
			"Statuses":   models.InitiationStatuses(),
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

		log.Debug().Err(err).Msg("devotee form validation failed")

		return c.Status(fiber.StatusBadRequest).Render(FormTemplateName, fiber.Map{
			"Navigation": s.nav("New Devotee"),
			"Statuses":   models.InitiationStatuses(),
			"Form":       form,
			"Error":      errorMessages,
		}, handler.BaseLayout)
	}

	// numeric coercion with fallback to zero
	malas, _ := strconv.Atoi(form.DailyMalas)

	added, err := s.store.AddDevotee(models.Devotee{
		Name:          form.Name,
		SpiritualName: form.SpiritualName,
		Email:         form.Email,
		Phone:         form.Phone,
		DOB:           form.DOB,
		Photo:         form.Photo,
		Status:        models.InitiationStatus(form.Status),
		Hobbies:       form.Hobbies,
		DailyMalas:    malas,
	})
	if err != nil {
		if errors.Is(err, store.ErrUnknownStatus) {
			return c.Status(fiber.StatusBadRequest).Render(FormTemplateName, fiber.Map{
				"Navigation": s.nav("New Devotee"),
				"Statuses":   models.InitiationStatuses(),
				"Form":       form,
				"Error":      "Unknown initiation status",
			}, handler.BaseLayout)
		}

		log.Error().Err(err).Msg("failed to save devotee")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to save devotee")
	}

	log.Info().
		Str("id", added.ID).
		Str("name", added.Name).
		Str("status", string(added.Status)).
		Msg("devotee registered")

	return c.Redirect(Path)
}

// Delete removes one devotee record by ID.
func (s *Service) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := s.store.DeleteDevotee(id); err != nil {
		if errors.Is(err, store.ErrDevoteeNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Devotee not found")
		}

		log.Error().Err(err).Str("id", id).Msg("failed to delete devotee")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to delete devotee")
	}

	log.Info().Str("id", id).Msg("devotee removed")

	return c.Redirect(Path)
}

// Filter returns the devotees whose name, spiritual name or email contains
// the search term, case-insensitively. An empty term matches everything.
func Filter(devotees []models.Devotee, search string) []models.Devotee {
	if search == "" {
		return devotees
	}

	term := strings.ToLower(search)
	filtered := make([]models.Devotee, 0)

	for _, d := range devotees {
		if strings.Contains(strings.ToLower(d.Name), term) ||
			strings.Contains(strings.ToLower(d.SpiritualName), term) ||
			strings.Contains(strings.ToLower(d.Email), term) {
			filtered = append(filtered, d)
		}
	}

	return filtered
}
