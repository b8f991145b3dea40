// Package donation provides the Laxmi Seva ledger handlers: list with
// donor search and purpose filter, per-purpose summaries and the donation
// entry form. Donations are immutable once recorded.
package donation

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
	// Path is the path to the donation list page.
	Path = handler.RootPath + "donations"

	// TemplateName is the name of the donation list template.
	TemplateName = "donation/list"
)

// Form carries the "record donation" submission.
type Form struct {
	DonorName string `form:"donor_name" validate:"required"`
	Amount    string `form:"amount" validate:"required"`
	Date      string `form:"date"`
	Purpose   string `form:"purpose" validate:"required"`
	Method    string `form:"method" validate:"required"`
}

// Summary aggregates the ledger for the header cards.
type Summary struct {
	Total          float64
	BuildingTotal  float64
	FeastDonors    int
	PurposeTotals  map[models.DonationPurpose]float64
	PurposeCounts  map[models.DonationPurpose]int
}

// Service is the donation handler service.
type Service struct {
	cfg       *config.Config
	store     *store.Store
	center    *notify.Center
	validator *validator.Validate
}

// Handler is the donation handler.
var Handler = Service{}

// Init initializes the donation handler.
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
	app.Post(Path, s.Post)
}

func (s *Service) nav() *navigation.Context {
	return navigation.NewContext("Laxmi Seva", "donations").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Donations", Path, true).
		WithUnread(s.center.UnreadCount())
}

// Get handles the donation list page, optionally filtered by ?search= and
// ?purpose=.
func (s *Service) Get(c *fiber.Ctx) error {
	donations, err := s.store.Donations()
	if err != nil {
		log.Error().Err(err).Msg("failed to load donations")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load donations")
	}

	var (
		search  = c.Query("search", "")
		purpose = c.Query("purpose", "")
	)

	return c.Render(TemplateName, fiber.Map{
		"Navigation": s.nav(),
		"Donations":  Filter(donations, search, models.DonationPurpose(purpose)),
		"Summary":    Summarize(donations),
		"Purposes":   models.DonationPurposes(),
		"Methods":    models.DonationMethods(),
		"Search":     search,
		"Purpose":    purpose,
	}, handler.BaseLayout)
}

// Post handles the donation entry form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	var form Form
	if err := c.BodyParser(&form); err != nil {
		log.Error().Err(err).Msg("failed to parse donation form")

		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	if err := s.validator.Struct(&form); err != nil {
		log.Debug().Err(err).Msg("donation form validation failed")

		return c.Status(fiber.StatusBadRequest).SendString("Donor name, amount, purpose and method are required")
	}

	// numeric coercion with fallback to zero
	amount, _ := strconv.ParseFloat(form.Amount, 64)

	added, err := s.store.AddDonation(models.Donation{
		DonorName: form.DonorName,
		Amount:    amount,
		Date:      form.Date,
		Purpose:   models.DonationPurpose(form.Purpose),
		Method:    models.DonationMethod(form.Method),
	})
	if err != nil {
		if errors.Is(err, store.ErrUnknownPurpose) || errors.Is(err, store.ErrUnknownMethod) {
			return c.Status(fiber.StatusBadRequest).SendString("Unknown donation purpose or method")
		}

		log.Error().Err(err).Msg("failed to save donation")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to save donation")
	}

	log.Info().
		Str("id", added.ID).
		Str("donor", added.DonorName).
		Float64("amount", added.Amount).
		Str("purpose", string(added.Purpose)).
		Msg("donation recorded")

	return c.Redirect(Path)
}

// Filter returns the donations whose donor name contains the search term,
// case-insensitively, and whose purpose matches when one is given.
func Filter(donations []models.Donation, search string, purpose models.DonationPurpose) []models.Donation {
	term := strings.ToLower(search)
	filtered := make([]models.Donation, 0)

	for _, d := range donations {
		if term != "" && !strings.Contains(strings.ToLower(d.DonorName), term) {
			continue
		}

		if purpose != "" && d.Purpose != purpose {
			continue
		}

		filtered = append(filtered, d)
	}

	return filtered
}

// Summarize derives the ledger totals by one linear scan.
func Summarize(donations []models.Donation) Summary {
	summary := Summary{
		PurposeTotals: make(map[models.DonationPurpose]float64),
		PurposeCounts: make(map[models.DonationPurpose]int),
	}

	for _, d := range donations {
		summary.Total += d.Amount
		summary.PurposeTotals[d.Purpose] += d.Amount
		summary.PurposeCounts[d.Purpose]++
	}

	summary.BuildingTotal = summary.PurposeTotals[models.PurposeBuilding]
	summary.FeastDonors = summary.PurposeCounts[models.PurposeFeast]

	return summary
}
