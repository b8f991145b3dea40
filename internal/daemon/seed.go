package daemon

import (
	"github.com/rs/zerolog/log"

	"github.com/iskcon-portal/iskcon-portal/internal/store"
)

// reportCollections logs the size of every collection at startup. The
// inventory seed never shows as zero because the store serves the sample
// pantry while no inventory was written.
func reportCollections(st *store.Store) {
	devotees, err := st.Devotees()
	if err != nil {
		log.Error().Err(err).Msg("failed to read devotee collection")
		return
	}

	sessions, _ := st.Sessions()
	donations, _ := st.Donations()
	inventory, _ := st.Inventory()
	notifications, _ := st.Notifications()

	log.Info().
		Int("devotees", len(devotees)).
		Int("sessions", len(sessions)).
		Int("donations", len(donations)).
		Int("inventory", len(inventory)).
		Int("notifications", len(notifications)).
		Msg("record store opened")
}
