package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"propdesk/models"
	"propdesk/utils"
)

// Storage keys, one per WizardData section.
const (
	KeyTeams         = "serviceRequestTeams"
	KeyCategories    = "serviceRequestCategories"
	KeyServiceTypes  = "serviceRequestServiceTypes"
	KeyStatuses      = "serviceRequestStatuses"
	KeyFormFields    = "serviceRequestFormFields"
	KeyNotifications = "serviceRequestNotifications"
)

// SectionKeys lists the storage keys in persistence order.
var SectionKeys = []string{
	KeyTeams,
	KeyCategories,
	KeyServiceTypes,
	KeyStatuses,
	KeyFormFields,
	KeyNotifications,
}

// Store holds one tenant's configuration and mirrors it to storage after
// every change. All mutation goes through Update or Modify.
type Store struct {
	mu      sync.RWMutex
	storage fiber.Storage
	prefix  string
	data    models.WizardData
	log     *logrus.Entry
}

// Open creates the store for tenantID and loads its configuration.
func Open(storage fiber.Storage, tenantID string) *Store {
	s := &Store{
		storage: storage,
		prefix:  TenantPrefix(tenantID),
		log:     utils.Component("STORE").WithField("tenant_id", tenantID),
	}
	s.data = s.Load()
	return s
}

// TenantPrefix namespaces storage keys per tenant. An empty tenant uses the
// bare section keys.
func TenantPrefix(tenantID string) string {
	if tenantID == "" {
		return ""
	}
	return "tenant:" + tenantID + ":"
}

// Key returns the storage key of a section for this store's tenant.
func (s *Store) Key(section string) string {
	return s.prefix + section
}

// Load reads every section from storage. A missing, unreadable or corrupt
// section falls back to its default without affecting the others.
func (s *Store) Load() models.WizardData {
	return models.WizardData{
		Teams:         loadSection(s, KeyTeams, models.DefaultTeams),
		Categories:    loadSection(s, KeyCategories, models.DefaultCategories),
		ServiceTypes:  loadSection(s, KeyServiceTypes, models.DefaultServiceTypes),
		Statuses:      loadSection(s, KeyStatuses, models.DefaultStatuses),
		FormFields:    loadSection(s, KeyFormFields, models.DefaultFormFields),
		Notifications: loadSection(s, KeyNotifications, models.DefaultNotificationSettings),
	}
}

func loadSection[T any](s *Store, section string, fallback func() T) T {
	raw, err := s.storage.Get(s.Key(section))
	if err != nil {
		s.log.WithError(err).WithField("key", section).Warn("Failed to read section, using defaults")
		return fallback()
	}
	if len(raw) == 0 || string(raw) == "null" {
		return fallback()
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.WithError(err).WithField("key", section).Warn("Corrupt section, using defaults")
		return fallback()
	}
	return v
}

type encodedSection struct {
	key string
	raw []byte
}

func encodeSections(data models.WizardData) ([]encodedSection, error) {
	values := []interface{}{
		data.Teams,
		data.Categories,
		data.ServiceTypes,
		data.Statuses,
		data.FormFields,
		data.Notifications,
	}
	out := make([]encodedSection, len(SectionKeys))
	for i, key := range SectionKeys {
		raw, err := json.Marshal(values[i])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		out[i] = encodedSection{key: key, raw: raw}
	}
	return out, nil
}

// Persist writes each section of data to its own storage key.
func (s *Store) Persist(data models.WizardData) error {
	sections, err := encodeSections(data)
	if err != nil {
		return err
	}
	for _, sec := range sections {
		if err := s.storage.Set(s.Key(sec.key), sec.raw, 0); err != nil {
			return fmt.Errorf("persist %s: %w", sec.key, err)
		}
	}
	return nil
}

// Snapshot returns a deep copy of the current configuration.
func (s *Store) Snapshot() models.WizardData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Update replaces the sections present in patch and persists the result.
// Sections absent from patch are left exactly as they were.
func (s *Store) Update(patch models.Patch) error {
	return s.Modify(func(models.WizardData) (models.Patch, error) {
		return patch, nil
	})
}

// Modify runs fn against a copy of the current configuration and applies the
// patch it returns. fn runs under the store lock, so read-modify-write
// sequences from concurrent requests do not interleave.
func (s *Store) Modify(fn func(current models.WizardData) (models.Patch, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	patch, err := fn(s.data.Clone())
	if err != nil {
		return err
	}
	if patch.Empty() {
		return nil
	}

	s.data = s.data.Apply(patch)
	if err := s.Persist(s.data); err != nil {
		utils.LogError("config_persist_failed", err, map[string]interface{}{
			"prefix": s.prefix,
		})
		return err
	}
	return nil
}
