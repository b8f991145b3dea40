package devotee

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

// recordingViews is a minimal Fiber Views engine that stashes the last
// rendered template name and data so tests can assert on handler output.
type recordingViews struct {
	name string
	data fiber.Map
}

func (*recordingViews) Load() error { return nil }

func (v *recordingViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	v.name = name
	if m, ok := data.(fiber.Map); ok {
		v.data = m
	}

	_, _ = io.WriteString(w, name)

	return nil
}

func newTestService(t *testing.T) (*Service, *fiber.App, *store.Store, *recordingViews) {
	t.Helper()

	st, err := store.New(memory.New())
	require.NoError(t, err)

	center, err := notify.NewCenter(st, nil)
	require.NoError(t, err)

	views := &recordingViews{}
	app := fiber.New(fiber.Config{Views: views})

	var s Service
	s.Init(app, &config.Config{}, st, center)

	return &s, app, st, views
}

func performPost(t *testing.T, app *fiber.App, target string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func TestPost_RegistersDevotee(t *testing.T) {
	_, app, st, _ := newTestService(t)

	form := url.Values{
		"name":        {"Ramesh Kumar"},
		"email":       {"ramesh@example.com"},
		"phone":       {"9876543210"},
		"daily_malas": {"16"},
	}
	resp := performPost(t, app, Path, form)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, Path, resp.Header.Get("Location"))

	devotees, err := st.Devotees()
	require.NoError(t, err)
	require.Len(t, devotees, 1)

	added := devotees[0]
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Ramesh Kumar", added.Name)
	assert.Equal(t, 16, added.DailyMalas)
	assert.Equal(t, models.StatusUninitiated, added.Status)
	assert.False(t, added.JoinedAt.IsZero())
}

func TestPost_MissingRequiredFields(t *testing.T) {
	_, app, st, views := newTestService(t)

	form := url.Values{
		"name": {"Incomplete"},
	}
	resp := performPost(t, app, Path, form)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, FormTemplateName, views.name)
	assert.NotNil(t, views.data["Error"])

	devotees, err := st.Devotees()
	require.NoError(t, err)
	assert.Empty(t, devotees)
}

func TestPost_NonNumericMalasFallsBackToZero(t *testing.T) {
	_, app, st, _ := newTestService(t)

	form := url.Values{
		"name":        {"Shyam Das"},
		"email":       {"shyam@example.com"},
		"phone":       {"1112223334"},
		"daily_malas": {"sixteen"},
	}
	resp := performPost(t, app, Path, form)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusFound, resp.StatusCode)

	devotees, err := st.Devotees()
	require.NoError(t, err)
	require.Len(t, devotees, 1)
	assert.Equal(t, 0, devotees[0].DailyMalas)
}

func TestGet_SearchMatchesCaseInsensitively(t *testing.T) {
	_, app, st, views := newTestService(t)

	_, err := st.AddDevotee(models.Devotee{Name: "Ramesh Kumar", Email: "ramesh@example.com", DailyMalas: 16})
	require.NoError(t, err)
	_, err = st.AddDevotee(models.Devotee{Name: "Sita Devi", Email: "sita@example.com", DailyMalas: 8})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, Path+"?search=ramesh", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, TemplateName, views.name)

	listed, ok := views.data["Devotees"].([]models.Devotee)
	require.True(t, ok)
	require.Len(t, listed, 1)
	assert.Equal(t, "Ramesh Kumar", listed[0].Name)
	// Total reflects the whole registry, not the filtered view.
	assert.Equal(t, 2, views.data["Total"])
}

func TestDelete(t *testing.T) {
	_, app, st, _ := newTestService(t)

	first, err := st.AddDevotee(models.Devotee{Name: "First", Email: "first@example.com"})
	require.NoError(t, err)
	second, err := st.AddDevotee(models.Devotee{Name: "Second", Email: "second@example.com"})
	require.NoError(t, err)

	resp := performPost(t, app, Path+"/"+first.ID+"/delete", url.Values{})

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusFound, resp.StatusCode)

	devotees, err := st.Devotees()
	require.NoError(t, err)
	require.Len(t, devotees, 1)
	assert.Equal(t, second.ID, devotees[0].ID)
}

func TestDelete_UnknownID(t *testing.T) {
	_, app, _, _ := newTestService(t)

	resp := performPost(t, app, Path+"/no-such-id/delete", url.Values{})

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFilter(t *testing.T) {
	devotees := []models.Devotee{
		{Name: "Ramesh Kumar", SpiritualName: "Raghava Das", Email: "ramesh@example.com"},
		{Name: "Sita Devi", Email: "sita@example.com"},
		{Name: "Arjun Patel", SpiritualName: "Arjuna Das", Email: "arjun@example.com"},
	}

	// Empty term matches everything.
	assert.Len(t, Filter(devotees, ""), 3)

	// Name match, case-insensitive.
	matched := Filter(devotees, "RAMESH")
	require.Len(t, matched, 1)
	assert.Equal(t, "Ramesh Kumar", matched[0].Name)

	// Spiritual name match.
	matched = Filter(devotees, "raghava")
	require.Len(t, matched, 1)
	assert.Equal(t, "Ramesh Kumar", matched[0].Name)

	// Email match.
	matched = Filter(devotees, "sita@")
	require.Len(t, matched, 1)
	assert.Equal(t, "Sita Devi", matched[0].Name)

	// "das" hits both spiritual names.
	assert.Len(t, Filter(devotees, "das"), 2)

	// No match.
	assert.Empty(t, Filter(devotees, "krishna"))
}
