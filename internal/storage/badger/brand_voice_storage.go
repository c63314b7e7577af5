package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// BrandVoiceStorage implements the BrandVoiceStorage interface for Badger
type BrandVoiceStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewBrandVoiceStorage creates a new BrandVoiceStorage instance
func NewBrandVoiceStorage(db *BadgerDB, logger arbor.ILogger) interfaces.BrandVoiceStorage {
	return &BrandVoiceStorage{
		db:     db,
		logger: logger,
	}
}

func (s *BrandVoiceStorage) SaveProfile(profile *models.BrandVoiceProfile) error {
	if profile.ID == "" {
		profile.ID = common.NewVoiceProfileID()
	}
	if profile.BrandName == "" {
		return fmt.Errorf("brand name is required")
	}
	if profile.AnalyzedAt.IsZero() {
		profile.AnalyzedAt = time.Now()
	}

	if err := s.db.Store().Upsert(profile.ID, profile); err != nil {
		return fmt.Errorf("failed to save brand voice profile: %w", err)
	}
	return nil
}

// LatestProfile returns the most recently analyzed profile for the
// brand, or nil when no profile exists yet. Absence is valid.
func (s *BrandVoiceStorage) LatestProfile(brandName string) (*models.BrandVoiceProfile, error) {
	var profiles []models.BrandVoiceProfile
	if err := s.db.Store().Find(&profiles, badgerhold.Where("BrandName").Eq(brandName)); err != nil {
		return nil, fmt.Errorf("failed to query brand voice profiles: %w", err)
	}
	if len(profiles) == 0 {
		return nil, nil
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].AnalyzedAt.After(profiles[j].AnalyzedAt)
	})
	return &profiles[0], nil
}
