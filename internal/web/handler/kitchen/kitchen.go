// Package kitchen provides the kitchen handlers: stock list with low-stock
// flags, item creation and bounded quantity adjustment, plus the static
// prasadam planner tab.
package kitchen

import (
	"errors"
	"strconv"

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
	// Path is the path to the kitchen page.
	Path = handler.RootPath + "kitchen"

	// TemplateName is the name of the kitchen template.
	TemplateName = "kitchen/kitchen"

	// TabInventory shows the stock list.
	TabInventory = "inventory"

	// TabPlanner shows the static prasadam planner.
	TabPlanner = "planner"
)

// Form carries the "add stock item" submission.
type Form struct {
	Name         string `form:"name" validate:"required"`
	Category     string `form:"category" validate:"required"`
	Quantity     string `form:"quantity"`
	Unit         string `form:"unit"`
	MinThreshold string `form:"min_threshold"`
}

// PlannerEntry is one row of the static prasadam planner display.
type PlannerEntry struct {
	Day   string
	Menu  string
	Notes string
}

// Service is the kitchen handler service.
type Service struct {
	cfg       *config.Config
	store     *store.Store
	center    *notify.Center
	validator *validator.Validate
}

// Handler is the kitchen handler.
var Handler = Service{}

// Init initializes the kitchen handler.
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
	app.Post(Path+"/items", s.PostItem)
	app.Post(Path+"/items/:id/adjust", s.PostAdjust)
}

func (s *Service) nav() *navigation.Context {
	return navigation.NewContext("Kitchen Seva", "kitchen").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Kitchen", Path, true).
		WithUnread(s.center.UnreadCount())
}

// Get handles the kitchen page with its inventory and planner tabs.
func (s *Service) Get(c *fiber.Ctx) error {
	activeTab := c.Query("tab", TabInventory)
	if activeTab != TabInventory && activeTab != TabPlanner {
		activeTab = TabInventory
	}

	items, err := s.store.Inventory()
	if err != nil {
		log.Error().Err(err).Msg("failed to load inventory")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load inventory")
	}

	lowStock := 0

	for i := range items {
		if items[i].LowStock() {
			lowStock++
		}
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": s.nav(),
		"ActiveTab":  activeTab,
		"Items":      items,
		"LowStock":   lowStock,
		"Categories": models.InventoryCategories(),
		"Planner":    plannerSample(),
	}, handler.BaseLayout)
}

// PostItem handles the add-stock-item form submission.
func (s *Service) PostItem(c *fiber.Ctx) error {
	var form Form
	if err := c.BodyParser(&form); err != nil {
		log.Error().Err(err).Msg("failed to parse inventory form")

		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	if err := s.validator.Struct(&form); err != nil {
		log.Debug().Err(err).Msg("inventory form validation failed")

		return c.Status(fiber.StatusBadRequest).SendString("Item name and category are required")
	}

	// numeric coercion with fallback to zero
	quantity, _ := strconv.ParseFloat(form.Quantity, 64)
	threshold, _ := strconv.ParseFloat(form.MinThreshold, 64)

	unit := form.Unit
	if unit == "" {
		unit = "kg"
	}

	added, err := s.store.AddInventoryItem(models.InventoryItem{
		Name:         form.Name,
		Category:     models.InventoryCategory(form.Category),
		Quantity:     quantity,
		Unit:         unit,
		MinThreshold: threshold,
	})
	if err != nil {
		if errors.Is(err, store.ErrUnknownCategory) {
			return c.Status(fiber.StatusBadRequest).SendString("Unknown inventory category")
		}

		log.Error().Err(err).Msg("failed to save inventory item")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to save inventory item")
	}

	log.Info().
		Str("id", added.ID).
		Str("name", added.Name).
		Float64("quantity", added.Quantity).
		Msg("inventory item added")

	return c.Redirect(Path)
}

// PostAdjust applies a delta to one item's quantity. The store floors the
// result at zero.
func (s *Service) PostAdjust(c *fiber.Ctx) error {
	id := c.Params("id")

	delta, err := strconv.ParseFloat(c.FormValue("delta"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid delta")
	}

	item, err := s.store.AdjustInventoryQuantity(id, delta)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Inventory item not found")
		}

		log.Error().Err(err).Str("id", id).Msg("failed to adjust inventory quantity")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to adjust quantity")
	}

	log.Info().
		Str("id", item.ID).
		Float64("delta", delta).
		Float64("quantity", item.Quantity).
		Bool("low_stock", item.LowStock()).
		Msg("inventory quantity adjusted")

	return c.Redirect(Path)
}

// plannerSample is the static prasadam planner display. Real menu planning
// against stock levels is out of scope.
func plannerSample() []PlannerEntry {
	return []PlannerEntry{
		{Day: "Monday", Menu: "Kitchari, salad", Notes: "Simple fare"},
		{Day: "Wednesday", Menu: "Rice, dal, sabji", Notes: "Standard offering"},
		{Day: "Saturday", Menu: "Rice, dal, sabji, halava", Notes: "Extended offering"},
		{Day: "Sunday", Menu: "Sunday Feast: full thali, kheer, laddu", Notes: "Feast day, expect 120+ plates"},
	}
}
