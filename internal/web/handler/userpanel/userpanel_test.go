package userpanel

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iskcon-portal/iskcon-portal/internal/config"
	"github.com/iskcon-portal/iskcon-portal/internal/notify"
	"github.com/iskcon-portal/iskcon-portal/internal/store"
	"github.com/iskcon-portal/iskcon-portal/internal/store/models"
)

// recordingViews stashes the last rendered template data for assertions.
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

// stubFetcher returns a canned quote or error.
type stubFetcher struct {
	quote *models.GitaQuote
	err   error
}

func (f *stubFetcher) Fetch(context.Context) (*models.GitaQuote, error) {
	return f.quote, f.err
}

func newTestService(t *testing.T, fetcher notify.QuoteFetcher) (*fiber.App, *store.Store, *recordingViews) {
	t.Helper()

	st, err := store.New(memory.New())
	require.NoError(t, err)

	center, err := notify.NewCenter(st, fetcher)
	require.NoError(t, err)

	views := &recordingViews{}
	app := fiber.New(fiber.Config{Views: views})

	var s Service
	s.Init(app, &config.Config{}, st, center, fetcher)

	return app, st, views
}

func performGet(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, Path, nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func TestGet_FirstDevoteeActsAsUser(t *testing.T) {
	app, st, views := newTestService(t, &stubFetcher{err: errors.New("offline")})

	_, err := st.AddDevotee(models.Devotee{Name: "Ramesh Kumar", SpiritualName: "Raghava Das", Email: "ramesh@example.com", DailyMalas: 16})
	require.NoError(t, err)
	_, err = st.AddDevotee(models.Devotee{Name: "Sita Devi", Email: "sita@example.com"})
	require.NoError(t, err)

	resp := performGet(t, app)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, TemplateName, views.name)

	user, ok := views.data["User"].(models.Devotee)
	require.True(t, ok)
	assert.Equal(t, "Ramesh Kumar", user.Name)

	// The fetch failure degrades to a panel without a quote.
	quote, _ := views.data["Quote"].(*models.GitaQuote)
	assert.Nil(t, quote)
}

func TestGet_EmptyRegistryFallsBackToSampleProfile(t *testing.T) {
	app, _, views := newTestService(t, nil)

	resp := performGet(t, app)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	user, ok := views.data["User"].(models.Devotee)
	require.True(t, ok)
	assert.Equal(t, "Temple Admin", user.Name)
	assert.Equal(t, "Sevak Das", user.SpiritualName)
}

func TestGet_IncludesFetchedQuote(t *testing.T) {
	fetcher := &stubFetcher{quote: &models.GitaQuote{
		Verse:       "karmany evadhikaras te",
		Translation: "You have a right to perform your prescribed duty.",
		Chapter:     2,
		Text:        47,
	}}

	app, _, views := newTestService(t, fetcher)

	resp := performGet(t, app)

	defer func() {
		_ = resp.Body.Close()
	}()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	quote, ok := views.data["Quote"].(*models.GitaQuote)
	require.True(t, ok)
	require.NotNil(t, quote)
	assert.Equal(t, 2, quote.Chapter)
	assert.Equal(t, 47, quote.Text)
}
