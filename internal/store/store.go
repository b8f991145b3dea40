// Package store implements the key-value record store backing all portal
// collections. Each collection is one JSON-encoded array stored under a
// fixed namespaced key; a save overwrites the whole collection and the
// last writer wins. The enumerated fields (initiation status, donation
// purpose and method, inventory category) are closed sets enforced here at
// the storage boundary, not only at the form layer.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/storage"
	"github.com/google/uuid"

	"github.com/iskcon-portal/iskcon-portal/internal/store/models"
)

// Collection keys. The iskcon_ prefix namespaces the portal's records
// inside a shared storage backend.
const (
	KeyDevotees      = "iskcon_devotees"
	KeySessions      = "iskcon_sessions"
	KeyNotifications = "iskcon_notifications"
	KeyDonations     = "iskcon_donations"
	KeyInventory     = "iskcon_inventory"
)

// Store is the single source of truth for all persisted collections.
type Store struct {
	storage storage.Storage
}

// New creates a Store on top of the given storage backend.
func New(st storage.Storage) (*Store, error) {
	if st == nil {
		return nil, ErrStorageNil
	}

	return &Store{storage: st}, nil
}

// NewID returns a collision-resistant record identifier.
func NewID() string {
	return uuid.NewString()
}

// load reads one collection. A missing key is an empty collection, never
// an error.
func load[T any](s *Store, key string) ([]T, error) {
	raw, err := s.storage.Get(key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	if len(raw) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}

	return records, nil
}

// save overwrites one collection atomically from the caller's perspective.
func save[T any](s *Store, key string, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := s.storage.Set(key, raw, 0); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	return nil
}

// Devotees returns all devotee records in insertion order.
func (s *Store) Devotees() ([]models.Devotee, error) {
	return load[models.Devotee](s, KeyDevotees)
}

// SaveDevotees overwrites the devotee collection.
func (s *Store) SaveDevotees(devotees []models.Devotee) error {
	for i := range devotees {
		if !devotees[i].Status.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownStatus, devotees[i].Status)
		}
	}

	return save(s, KeyDevotees, devotees)
}

// AddDevotee assigns an ID and join timestamp, defaults the status to
// Uninitiated when unset, appends the record and persists the collection.
// The stored record is returned.
func (s *Store) AddDevotee(d models.Devotee) (models.Devotee, error) {
	devotees, err := s.Devotees()
	if err != nil {
		return models.Devotee{}, err
	}

	d.ID = NewID()
	d.JoinedAt = time.Now().UTC()

	if d.Status == "" {
		d.Status = models.StatusUninitiated
	}

	if d.DailyMalas < 0 {
		d.DailyMalas = 0
	}

	devotees = append(devotees, d)
	if err := s.SaveDevotees(devotees); err != nil {
		return models.Devotee{}, err
	}

	return d, nil
}

// DeleteDevotee removes exactly the record with the given ID, leaving the
// relative order of all other records unchanged.
func (s *Store) DeleteDevotee(id string) error {
	devotees, err := s.Devotees()
	if err != nil {
		return err
	}

	kept := devotees[:0]

	for _, d := range devotees {
		if d.ID != id {
			kept = append(kept, d)
		}
	}

	if len(kept) == len(devotees) {
		return ErrDevoteeNotFound
	}

	return s.SaveDevotees(kept)
}

// Sessions returns all scheduled sessions in insertion order.
func (s *Store) Sessions() ([]models.Session, error) {
	return load[models.Session](s, KeySessions)
}

// SaveSessions overwrites the session collection.
func (s *Store) SaveSessions(sessions []models.Session) error {
	return save(s, KeySessions, sessions)
}

// AddSession assigns an ID, appends the session and persists the
// collection. Attendee IDs are kept as given; no referential check is made
// against the devotee collection.
func (s *Store) AddSession(session models.Session) (models.Session, error) {
	sessions, err := s.Sessions()
	if err != nil {
		return models.Session{}, err
	}

	session.ID = NewID()

	sessions = append(sessions, session)
	if err := s.SaveSessions(sessions); err != nil {
		return models.Session{}, err
	}

	return session, nil
}

// Donations returns all donations, most recent first.
func (s *Store) Donations() ([]models.Donation, error) {
	return load[models.Donation](s, KeyDonations)
}

// SaveDonations overwrites the donation collection.
func (s *Store) SaveDonations(donations []models.Donation) error {
	for i := range donations {
		if !donations[i].Purpose.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownPurpose, donations[i].Purpose)
		}

		if !donations[i].Method.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownMethod, donations[i].Method)
		}
	}

	return save(s, KeyDonations, donations)
}

// AddDonation assigns an ID, prepends the donation and persists the
// collection. Donations are immutable once stored.
func (s *Store) AddDonation(d models.Donation) (models.Donation, error) {
	donations, err := s.Donations()
	if err != nil {
		return models.Donation{}, err
	}

	d.ID = NewID()

	if d.Amount < 0 {
		d.Amount = 0
	}

	donations = append([]models.Donation{d}, donations...)
	if err := s.SaveDonations(donations); err != nil {
		return models.Donation{}, err
	}

	return d, nil
}

// Inventory returns all kitchen stock items. When no inventory was ever
// written the hard-coded seed pantry is returned; it is not persisted
// until the first save.
func (s *Store) Inventory() ([]models.InventoryItem, error) {
	raw, err := s.storage.Get(KeyInventory)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyInventory, err)
	}

	if len(raw) == 0 {
		return SeedInventory(), nil
	}

	var items []models.InventoryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyInventory, err)
	}

	return items, nil
}

// SaveInventory overwrites the inventory collection.
func (s *Store) SaveInventory(items []models.InventoryItem) error {
	for i := range items {
		if !items[i].Category.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, items[i].Category)
		}
	}

	return save(s, KeyInventory, items)
}

// AddInventoryItem assigns an ID, appends the item and persists the
// collection.
func (s *Store) AddInventoryItem(item models.InventoryItem) (models.InventoryItem, error) {
	items, err := s.Inventory()
	if err != nil {
		return models.InventoryItem{}, err
	}

	item.ID = NewID()

	if item.Quantity < 0 {
		item.Quantity = 0
	}

	items = append(items, item)
	if err := s.SaveInventory(items); err != nil {
		return models.InventoryItem{}, err
	}

	return item, nil
}

// AdjustInventoryQuantity applies a delta to one item's quantity, floored
// at zero, and persists the collection. The updated item is returned.
func (s *Store) AdjustInventoryQuantity(id string, delta float64) (models.InventoryItem, error) {
	items, err := s.Inventory()
	if err != nil {
		return models.InventoryItem{}, err
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}

		items[i].Quantity += delta
		if items[i].Quantity < 0 {
			items[i].Quantity = 0
		}

		if err := s.SaveInventory(items); err != nil {
			return models.InventoryItem{}, err
		}

		return items[i], nil
	}

	return models.InventoryItem{}, ErrItemNotFound
}

// Notifications returns all notifications, most recent first.
func (s *Store) Notifications() ([]models.Notification, error) {
	return load[models.Notification](s, KeyNotifications)
}

// SaveNotifications overwrites the notification collection.
func (s *Store) SaveNotifications(notifications []models.Notification) error {
	return save(s, KeyNotifications, notifications)
}
