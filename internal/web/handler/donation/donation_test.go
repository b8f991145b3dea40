package donation

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iskcon-portal/iskcon-portal/internal/config"
	"github.com/iskcon-portal/iskcon-portal/internal/notify"
	"github.com/iskcon-portal/iskcon-portal/internal/store"
	"github.com/iskcon-portal/iskcon-portal/internal/store/models"
)

// noOpViews is a minimal Fiber Views engine used for tests.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, _ interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)

	return nil
}

func newTestService(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()

	st, err := store.New(memory.New())
	require.NoError(t, err)

	center, err := notify.NewCenter(st, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	var s Service
	s.Init(app, &config.Config{}, st, center)

	return app, st
}

func performPost(t *testing.T, app *fiber.App, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func TestPost_RecordsDonationNewestFirst(t *testing.T) {
	app, st := newTestService(t)

	for _, donor := range []string{"Older Donor", "Newer Donor"} {
		resp := performPost(t, app, url.Values{
			"donor_name": {donor},
			"amount":     {"501"},
			"purpose":    {"General"},
			"method":     {"Cash"},
		})
		require.Equal(t, http.StatusFound, resp.StatusCode)

		_ = resp.Body.Close()
	}

	donations, err := st.Donations()
	require.NoError(t, err)
	require.Len(t, donations, 2)

	// The ledger shows the latest entry first.
	assert.Equal(t, "Newer Donor", donations[0].DonorName)
	assert.Equal(t, "Older Donor", donations[1].DonorName)
	assert.Equal(t, float64(501), donations[0].Amount)
}

func TestPost_UnknownPurpose(t *testing.T) {
	app, st := newTestService(t)

	resp := performPost(t, app, url.Values{
		"donor_name": {"Someone"},
		"amount":     {"100"},
		"purpose":    {"Rocketry"},
		"method":     {"Cash"},
	})

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	donations, err := st.Donations()
	require.NoError(t, err)
	assert.Empty(t, donations)
}

func TestPost_NonNumericAmountFallsBackToZero(t *testing.T) {
	app, st := newTestService(t)

	resp := performPost(t, app, url.Values{
		"donor_name": {"Generous Soul"},
		"amount":     {"lots"},
		"purpose":    {"Feast"},
		"method":     {"Online"},
	})

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusFound, resp.StatusCode)

	donations, err := st.Donations()
	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Zero(t, donations[0].Amount)
}

func TestFilter(t *testing.T) {
	donations := []models.Donation{
		{DonorName: "Ramesh Kumar", Purpose: models.PurposeBuilding},
		{DonorName: "Sita Devi", Purpose: models.PurposeFeast},
		{DonorName: "Ramesh Patel", Purpose: models.PurposeFeast},
	}

	// No criteria returns everything.
	assert.Len(t, Filter(donations, "", ""), 3)

	// Donor search is case-insensitive.
	assert.Len(t, Filter(donations, "RAMESH", ""), 2)

	// Purpose narrows the list.
	assert.Len(t, Filter(donations, "", models.PurposeFeast), 2)

	// Both criteria combine.
	matched := Filter(donations, "ramesh", models.PurposeFeast)
	require.Len(t, matched, 1)
	assert.Equal(t, "Ramesh Patel", matched[0].DonorName)
}

func TestSummarize(t *testing.T) {
	donations := []models.Donation{
		{Amount: 100, Purpose: models.PurposeGeneral},
		{Amount: 250, Purpose: models.PurposeBuilding},
		{Amount: 150, Purpose: models.PurposeBuilding},
		{Amount: 75, Purpose: models.PurposeFeast},
	}

	summary := Summarize(donations)

	assert.Equal(t, float64(575), summary.Total)
	assert.Equal(t, float64(400), summary.BuildingTotal)
	assert.Equal(t, 1, summary.FeastDonors)

	// Per-purpose buckets partition the ledger without overlap.
	var (
		bucketTotal float64
		bucketCount int
	)

	for _, amount := range summary.PurposeTotals {
		bucketTotal += amount
	}

	for _, count := range summary.PurposeCounts {
		bucketCount += count
	}

	assert.Equal(t, summary.Total, bucketTotal)
	assert.Equal(t, len(donations), bucketCount)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.BuildingTotal)
	assert.Zero(t, summary.FeastDonors)
	assert.Empty(t, summary.PurposeTotals)
}
