// Package notify implements the shell notification center: an ordered,
// most-recent-first notification list mirrored to the record store, an
// unread counter, and the timed daily quote cycle that feeds it.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/iskcon-portal/iskcon-portal/internal/store"
	"github.com/iskcon-portal/iskcon-portal/internal/store/models"
)

const (
	// initialFetchDelay is how long after startup the first quote is requested.
	initialFetchDelay = 3 * time.Second

	// toastLifetime is how long a fresh quote stays up as a transient toast.
	toastLifetime = 8 * time.Second

	// quoteCronSpec repeats the quote cycle once per day while the server runs.
	quoteCronSpec = "@daily"
)

// QuoteFetcher produces a daily quote. A nil quote with an error means "no
// quote available this cycle"; the center never retries.
type QuoteFetcher interface {
	Fetch(ctx context.Context) (*models.GitaQuote, error)
}

// Center holds the in-memory notification list mirrored to the record
// store. It is safe for concurrent use by request handlers and the quote
// cycle goroutines.
type Center struct {
	mu            sync.Mutex
	store         *store.Store
	fetcher       QuoteFetcher
	notifications []models.Notification
	toast         *models.GitaQuote
	toastUntil    time.Time
	sched         *cron.Cron
	initialTimer  *time.Timer
}

// NewCenter creates a Center and loads the persisted notification list.
func NewCenter(st *store.Store, fetcher QuoteFetcher) (*Center, error) {
	notifications, err := st.Notifications()
	if err != nil {
		return nil, err
	}

	return &Center{
		store:         st,
		fetcher:       fetcher,
		notifications: notifications,
	}, nil
}

// Notifications returns a copy of the list, most recent first.
func (c *Center) Notifications() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Notification, len(c.notifications))
	copy(out, c.notifications)

	return out
}

// UnreadCount returns the number of notifications with the read flag unset.
func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0

	for i := range c.notifications {
		if !c.notifications[i].IsRead {
			count++
		}
	}

	return count
}

// Add prepends a new unread notification and persists the collection.
func (c *Center) Add(title, message string, typ models.NotificationType) (models.Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	notification := models.Notification{
		ID:        store.NewID(),
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UTC(),
		IsRead:    false,
		Type:      typ,
	}

	updated := append([]models.Notification{notification}, c.notifications...)

	if err := c.store.SaveNotifications(updated); err != nil {
		return models.Notification{}, err
	}

	c.notifications = updated

	return notification, nil
}

// MarkAllRead sets every notification's read flag and persists the
// collection. The total count is left unchanged.
func (c *Center) MarkAllRead() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	updated := make([]models.Notification, len(c.notifications))
	copy(updated, c.notifications)

	for i := range updated {
		updated[i].IsRead = true
	}

	if err := c.store.SaveNotifications(updated); err != nil {
		return err
	}

	c.notifications = updated

	return nil
}

// ActiveToast returns the quote currently shown as a transient toast, or
// nil once its lifetime has passed.
func (c *Center) ActiveToast() *models.GitaQuote {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.toast == nil || time.Now().After(c.toastUntil) {
		return nil
	}

	return c.toast
}

// Start arms the quote cycle: one fetch after the initial delay, then one
// per day while the server runs.
func (c *Center) Start() {
	if c.fetcher == nil {
		log.Warn().Msg("notification center started without a quote fetcher")
		return
	}

	c.initialTimer = time.AfterFunc(initialFetchDelay, func() {
		c.RunQuoteCycle(context.Background())
	})

	c.sched = cron.New()

	if _, err := c.sched.AddFunc(quoteCronSpec, func() {
		c.RunQuoteCycle(context.Background())
	}); err != nil {
		log.Error().Err(err).Msg("failed to schedule daily quote job")
		return
	}

	c.sched.Start()
}

// Stop cancels the pending initial fetch and the daily schedule.
func (c *Center) Stop() {
	if c.initialTimer != nil {
		c.initialTimer.Stop()
	}

	if c.sched != nil {
		c.sched.Stop()
	}
}

// RunQuoteCycle performs one quote fetch. On success the quote becomes an
// unread notification and the active toast; on failure nothing is added
// and the cycle ends silently.
func (c *Center) RunQuoteCycle(ctx context.Context) {
	quote, err := c.fetcher.Fetch(ctx)
	if err != nil || quote == nil {
		log.Warn().Err(err).Msg("no gita quote this cycle")
		return
	}

	title := fmt.Sprintf("Divine Instruction: Ch. %d Verse %d", quote.Chapter, quote.Text)

	if _, err := c.Add(title, quote.Translation, models.NotificationQuote); err != nil {
		log.Error().Err(err).Msg("failed to store quote notification")
		return
	}

	c.mu.Lock()
	c.toast = quote
	c.toastUntil = time.Now().Add(toastLifetime)
	c.mu.Unlock()

	log.Info().
		Int("chapter", quote.Chapter).
		Int("text", quote.Text).
		Msg("gita quote notification added")
}
