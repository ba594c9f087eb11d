package storage

import "mt5-bridge/src/models"

// -----------------------------------------------------------------------------
// NopJournal is used when the journal is disabled.
// -----------------------------------------------------------------------------

type NopJournal struct{}

func NewNopJournal() *NopJournal {
	return &NopJournal{}
}

func (j *NopJournal) Initialize() error { return nil }

func (j *NopJournal) Record(entry models.MJournalEntry) error { return nil }

func (j *NopJournal) Recent(limit int) ([]models.MJournalEntry, error) {
	return []models.MJournalEntry{}, nil
}

func (j *NopJournal) Close() error { return nil }
