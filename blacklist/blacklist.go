// Package blacklist persists revoked refresh-token IDs. Entries are only
// ever inserted; refresh and logout consult the set, and a maintenance job
// drops rows whose token has expired anyway.
package blacklist

import (
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"healthcare-backend/models"
)

type Store interface {
	// Revoke marks a token id as blacklisted. Revoking an already-revoked
	// id is a no-op success.
	Revoke(jti string, expiresAt time.Time) error
	IsRevoked(jti string) (bool, error)
	// PurgeExpired removes entries whose token expired before now and
	// returns how many were dropped.
	PurgeExpired(now time.Time) (int64, error)
}

// GormStore keeps the blacklist in the revoked_tokens table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Revoke(jti string, expiresAt time.Time) error {
	entry := models.RevokedToken{JTI: jti, ExpiresAt: expiresAt}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

func (s *GormStore) IsRevoked(jti string) (bool, error) {
	var count int64
	err := s.db.Model(&models.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) PurgeExpired(now time.Time) (int64, error) {
	res := s.db.Where("expires_at < ?", now).Delete(&models.RevokedToken{})
	return res.RowsAffected, res.Error
}

// MemoryStore is an in-process Store used by tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time)}
}

func (s *MemoryStore) Revoke(jti string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[jti]; !ok {
		s.entries[jti] = expiresAt
	}
	return nil
}

func (s *MemoryStore) IsRevoked(jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[jti]
	return ok, nil
}

func (s *MemoryStore) PurgeExpired(now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for jti, exp := range s.entries {
		if exp.Before(now) {
			delete(s.entries, jti)
			purged++
		}
	}
	return purged, nil
}
