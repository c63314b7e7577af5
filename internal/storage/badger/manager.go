package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db         *BadgerDB
	content    interfaces.ContentStorage
	feedback   interfaces.FeedbackStorage
	brandVoice interfaces.BrandVoiceStorage
	scrapeJob  interfaces.ScrapeJobStorage
	session    interfaces.SessionStorage
	report     interfaces.ReportStorage
	logger     arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:         db,
		content:    NewContentStorage(db, logger),
		feedback:   NewFeedbackStorage(db, logger),
		brandVoice: NewBrandVoiceStorage(db, logger),
		scrapeJob:  NewScrapeJobStorage(db, logger),
		session:    NewSessionStorage(db, logger),
		report:     NewReportStorage(db, logger),
		logger:     logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// ContentStorage returns the Content storage interface
func (m *Manager) ContentStorage() interfaces.ContentStorage {
	return m.content
}

// FeedbackStorage returns the Feedback storage interface
func (m *Manager) FeedbackStorage() interfaces.FeedbackStorage {
	return m.feedback
}

// BrandVoiceStorage returns the BrandVoice storage interface
func (m *Manager) BrandVoiceStorage() interfaces.BrandVoiceStorage {
	return m.brandVoice
}

// ScrapeJobStorage returns the ScrapeJob storage interface
func (m *Manager) ScrapeJobStorage() interfaces.ScrapeJobStorage {
	return m.scrapeJob
}

// SessionStorage returns the Session storage interface
func (m *Manager) SessionStorage() interfaces.SessionStorage {
	return m.session
}

// ReportStorage returns the Report storage interface
func (m *Manager) ReportStorage() interfaces.ReportStorage {
	return m.report
}

// Close runs a value log GC pass and closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		m.db.RunValueLogGC()
		return m.db.Close()
	}
	return nil
}
