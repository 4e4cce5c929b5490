package service

import (
	"context"
	"fmt"

	"github.com/emrgen/journal/internal/cache"
	"github.com/emrgen/journal/internal/model"
	"github.com/emrgen/journal/internal/store"
	"github.com/sirupsen/logrus"
)

// NewJournalService creates a new JournalService. The cache is optional,
// pass nil to disable read-through caching.
func NewJournalService(store store.Store, cache cache.JournalCache) *JournalService {
	return &JournalService{
		store: store,
		cache: cache,
	}
}

// JournalService owns the journal lifecycle.
type JournalService struct {
	store store.Store
	cache cache.JournalCache
}

// GetJournal resolves a handle to its journal. The handle is a name or
// a numeric id; anything else fails with ErrInvalidHandle.
func (j *JournalService) GetJournal(ctx context.Context, handle any) (*model.Journal, error) {
	if j.cache != nil {
		if journal := j.cachedJournal(ctx, handle); journal != nil {
			return journal, nil
		}
	}

	journal, err := resolveJournal(ctx, j.store, handle)
	if err != nil {
		return nil, err
	}

	if j.cache != nil {
		if err := j.cache.SetJournal(ctx, journal); err != nil {
			logrus.Errorf("error caching journal '%s': %v", journal.Name, err)
		}
	}

	return journal, nil
}

func (j *JournalService) cachedJournal(ctx context.Context, handle any) *model.Journal {
	var journal *model.Journal
	var err error

	switch h := handle.(type) {
	case string:
		journal, err = j.cache.GetJournalByName(ctx, h)
	default:
		if id, ok := intHandle(handle); ok {
			journal, err = j.cache.GetJournalByID(ctx, id)
		}
	}
	if err != nil {
		logrus.Errorf("journal cache read failed: %v", err)
		return nil
	}

	return journal
}

// SearchJournals returns all journals matching every supplied filter.
// The name filter is a case-insensitive substring match; no filters
// returns all journals.
func (j *JournalService) SearchJournals(ctx context.Context, filter store.JournalFilter) ([]*model.Journal, error) {
	journals, err := j.store.SearchJournals(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	return journals, nil
}

// CreateJournal creates a journal with the given name, if one does not
// exist. The name check and the insert run in one transaction, and the
// storage unique index stays the authority against racing creators.
func (j *JournalService) CreateJournal(ctx context.Context, name string, enabled, visible bool) (*model.Journal, error) {
	if name == "" {
		return nil, fmt.Errorf("journal name must not be empty: %w", ErrInvalidArgument)
	}

	journal := &model.Journal{
		Name:    name,
		Enabled: enabled,
		Visible: visible,
		Trash:   false,
	}

	err := j.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.GetJournalByName(ctx, name); err == nil {
			return fmt.Errorf("a journal with the name '%s': %w", name, ErrConflict)
		}

		return storeErr(tx.CreateJournal(ctx, journal))
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created the journal named '%s'", name)
	return journal, nil
}

// JournalUpdate carries the mutable journal attributes. Nil members are
// left untouched.
type JournalUpdate struct {
	Name    *string
	Enabled *bool
	Visible *bool
	Trash   *bool
}

// UpdateJournal updates the attributes of the given journal. A name
// change is rejected when another journal already holds that name.
// Trashing a journal does not flip the trash flag on its fields,
// records or content; the flags stay independent so that restoring the
// journal restores exactly the state it had.
func (j *JournalService) UpdateJournal(ctx context.Context, handle any, update JournalUpdate) (*model.Journal, error) {
	var journal *model.Journal

	err := j.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		journal, err = resolveJournal(ctx, tx, handle)
		if err != nil {
			return err
		}

		if update.Name != nil && *update.Name != journal.Name {
			if _, err := tx.GetJournalByName(ctx, *update.Name); err == nil {
				return fmt.Errorf("a journal with the name '%s': %w", *update.Name, ErrConflict)
			}
			j.evict(ctx, journal)
			journal.Name = *update.Name
		}
		if update.Enabled != nil {
			journal.Enabled = *update.Enabled
		}
		if update.Visible != nil {
			journal.Visible = *update.Visible
		}
		if update.Trash != nil {
			journal.Trash = *update.Trash
		}

		return storeErr(tx.UpdateJournal(ctx, journal))
	})
	if err != nil {
		return nil, err
	}

	j.evict(ctx, journal)
	logrus.Infof("updated the journal named '%s'", journal.Name)
	return journal, nil
}

// DeleteJournal deletes a journal. The storage schema cascades the
// delete to all fields, records, tags and content owned by the journal.
// THIS IS IRREVERSIBLE.
func (j *JournalService) DeleteJournal(ctx context.Context, handle any) error {
	journal, err := resolveJournal(ctx, j.store, handle)
	if err != nil {
		return err
	}

	if err := j.store.DeleteJournal(ctx, journal.ID); err != nil {
		return storeErr(err)
	}

	j.evict(ctx, journal)
	logrus.Infof("deleted the journal named '%s'", journal.Name)
	return nil
}

func (j *JournalService) evict(ctx context.Context, journal *model.Journal) {
	if j.cache == nil {
		return
	}
	if err := j.cache.DeleteJournal(ctx, journal); err != nil {
		logrus.Errorf("error evicting journal '%s' from cache: %v", journal.Name, err)
	}
}
