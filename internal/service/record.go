package service

import (
	"context"
	"fmt"

	"github.com/emrgen/journal/internal/model"
	"github.com/emrgen/journal/internal/store"
	"github.com/sirupsen/logrus"
)

// NewRecordService creates a new RecordService.
func NewRecordService(store store.Store) *RecordService {
	return &RecordService{
		store: store,
	}
}

// RecordService owns the record lifecycle.
type RecordService struct {
	store store.Store
}

// CreateRecord creates a record in the journal. The optional parent
// handle supports hierarchical records and must belong to the same
// journal.
func (r *RecordService) CreateRecord(ctx context.Context, journal any, parent any) (*model.Record, error) {
	var record *model.Record

	err := r.store.Transaction(ctx, func(tx store.Store) error {
		scope, err := resolveJournal(ctx, tx, journal)
		if err != nil {
			return err
		}

		var parentID *uint
		if parent != nil {
			p, err := resolveRecord(ctx, tx, parent)
			if err != nil {
				return err
			}
			if p.JournalID != scope.ID {
				return fmt.Errorf("parent record %d belongs to another journal: %w", p.ID, ErrInvalidArgument)
			}
			parentID = &p.ID
		}

		record = &model.Record{
			JournalID: scope.ID,
			ParentID:  parentID,
		}

		return storeErr(tx.CreateRecord(ctx, record))
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created record %d in journal %d", record.ID, record.JournalID)
	return record, nil
}

// GetRecord resolves a record handle.
func (r *RecordService) GetRecord(ctx context.Context, handle any) (*model.Record, error) {
	return resolveRecord(ctx, r.store, handle)
}

// RecordSearch carries the record search filters.
type RecordSearch struct {
	Parent any
	Trash  *bool
}

// SearchRecords returns the journal's records matching every supplied
// filter, in insertion order.
func (r *RecordService) SearchRecords(ctx context.Context, journal any, search RecordSearch) ([]*model.Record, error) {
	scope, err := resolveJournal(ctx, r.store, journal)
	if err != nil {
		return nil, err
	}

	filter := store.RecordFilter{
		JournalID: scope.ID,
		Trash:     search.Trash,
	}

	if search.Parent != nil {
		parent, err := resolveRecord(ctx, r.store, search.Parent)
		if err != nil {
			return nil, err
		}
		filter.ParentID = &parent.ID
	}

	records, err := r.store.SearchRecords(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	return records, nil
}

// RecordUpdate carries the mutable record attributes.
type RecordUpdate struct {
	Parent any
	Trash  *bool
}

// UpdateRecord updates a record: trash it, restore it, or move it under
// another parent of the same journal.
func (r *RecordService) UpdateRecord(ctx context.Context, handle any, update RecordUpdate) (*model.Record, error) {
	var record *model.Record

	err := r.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		record, err = resolveRecord(ctx, tx, handle)
		if err != nil {
			return err
		}

		if update.Parent != nil {
			parent, err := resolveRecord(ctx, tx, update.Parent)
			if err != nil {
				return err
			}
			if parent.JournalID != record.JournalID {
				return fmt.Errorf("parent record %d belongs to another journal: %w", parent.ID, ErrInvalidArgument)
			}
			if parent.ID == record.ID {
				return fmt.Errorf("record %d cannot be its own parent: %w", record.ID, ErrInvalidArgument)
			}
			record.ParentID = &parent.ID
		}
		if update.Trash != nil {
			record.Trash = *update.Trash
		}

		return storeErr(tx.UpdateRecord(ctx, record))
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}
