// Package dashboard provides the management console overview page.
package dashboard

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
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"
)

// AttendancePoint is one day of the weekly congregation flow chart. The
// series is a fixed sample; real attendance tracking is out of scope.
type AttendancePoint struct {
	Day   string
	Count int
}

// SadhanaBucket is one slice of the chanting round distribution.
type SadhanaBucket struct {
	Label string
	Count int
}

// Data represents the complete dashboard data.
type Data struct {
	TotalDevotees  int
	TotalDonations float64
	LowStockCount  int
	SessionCount   int
	Attendance     []AttendancePoint
	Sadhana        []SadhanaBucket
}

// Service is the dashboard handler service.
type Service struct {
	cfg    *config.Config
	store  *store.Store
	center *notify.Center
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store, center *notify.Center) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.store = st
	s.center = center

	app.Get(Path, s.Get)
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", "dashboard").
		AddBreadcrumb("Home", Path, false).
		AddBreadcrumb("Dashboard", Path, true).
		WithUnread(s.center.UnreadCount())

	devotees, err := s.store.Devotees()
	if err != nil {
		log.Error().Err(err).Msg("failed to load devotees")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load devotees")
	}

	sessions, err := s.store.Sessions()
	if err != nil {
		log.Error().Err(err).Msg("failed to load sessions")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load sessions")
	}

	donations, err := s.store.Donations()
	if err != nil {
		log.Error().Err(err).Msg("failed to load donations")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load donations")
	}

	inventory, err := s.store.Inventory()
	if err != nil {
		log.Error().Err(err).Msg("failed to load inventory")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load inventory")
	}

	data := buildData(devotees, sessions, donations, inventory)

	log.Debug().
		Int("devotees", data.TotalDevotees).
		Float64("donation_total", data.TotalDonations).
		Int("low_stock", data.LowStockCount).
		Msg("dashboard statistics computed")

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Data":       data,
		"Toast":      s.center.ActiveToast(),
	}, handler.BaseLayout)
}

// buildData derives every dashboard statistic by one linear scan per
// collection.
func buildData(
	devotees []models.Devotee,
	sessions []models.Session,
	donations []models.Donation,
	inventory []models.InventoryItem,
) Data {
	data := Data{
		TotalDevotees: len(devotees),
		SessionCount:  len(sessions),
		Attendance:    weeklyAttendanceSample(),
	}

	for i := range donations {
		data.TotalDonations += donations[i].Amount
	}

	for i := range inventory {
		if inventory[i].LowStock() {
			data.LowStockCount++
		}
	}

	data.Sadhana = sadhanaBuckets(devotees)

	return data
}

// sadhanaBuckets groups devotees by daily chanting rounds.
func sadhanaBuckets(devotees []models.Devotee) []SadhanaBucket {
	buckets := []SadhanaBucket{
		{Label: "16+ Rounds"},
		{Label: "8-15 Rounds"},
		{Label: "1-7 Rounds"},
	}

	for i := range devotees {
		switch malas := devotees[i].DailyMalas; {
		case malas >= 16:
			buckets[0].Count++
		case malas >= 8:
			buckets[1].Count++
		case malas >= 1:
			buckets[2].Count++
		}
	}

	return buckets
}

// weeklyAttendanceSample is the fixed congregation flow series shown on
// the dashboard chart.
func weeklyAttendanceSample() []AttendancePoint {
	return []AttendancePoint{
		{Day: "Mon", Count: 45},
		{Day: "Tue", Count: 52},
		{Day: "Wed", Count: 48},
		{Day: "Thu", Count: 61},
		{Day: "Fri", Count: 55},
		{Day: "Sat", Count: 85},
		{Day: "Sun", Count: 120},
	}
}
