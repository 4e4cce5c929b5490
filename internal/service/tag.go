package service

import (
	"context"
	"fmt"

	"github.com/emrgen/journal/internal/model"
	"github.com/emrgen/journal/internal/store"
	"github.com/sirupsen/logrus"
)

// NewTagService creates a new TagService.
func NewTagService(store store.Store) *TagService {
	return &TagService{
		store: store,
	}
}

// TagService owns journal-scoped tags and their record associations.
type TagService struct {
	store store.Store
}

// CreateTag creates a tag in the journal. Tag names are unique per
// journal regardless of trash state.
func (t *TagService) CreateTag(ctx context.Context, journal any, name string) (*model.Tag, error) {
	if name == "" {
		return nil, fmt.Errorf("tag name must not be empty: %w", ErrInvalidArgument)
	}

	var tag *model.Tag
	err := t.store.Transaction(ctx, func(tx store.Store) error {
		scope, err := resolveJournal(ctx, tx, journal)
		if err != nil {
			return err
		}

		if _, err := tx.GetTagByName(ctx, scope.ID, name); err == nil {
			return fmt.Errorf("a tag named '%s' in journal '%s': %w", name, scope.Name, ErrConflict)
		}

		tag = &model.Tag{
			JournalID: scope.ID,
			Name:      name,
		}
		return storeErr(tx.CreateTag(ctx, tag))
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created tag '%s'", name)
	return tag, nil
}

// GetTag resolves a tag handle; a name requires the journal handle.
func (t *TagService) GetTag(ctx context.Context, handle any, journal any) (*model.Tag, error) {
	var scope *model.Journal
	if journal != nil {
		var err error
		scope, err = resolveJournal(ctx, t.store, journal)
		if err != nil {
			return nil, err
		}
	}

	return resolveTag(ctx, t.store, handle, scope)
}

// TagSearch carries the tag search filters.
type TagSearch struct {
	Name  *string
	Trash *bool
}

// SearchTags returns the journal's tags matching every supplied filter.
func (t *TagService) SearchTags(ctx context.Context, journal any, search TagSearch) ([]*model.Tag, error) {
	scope, err := resolveJournal(ctx, t.store, journal)
	if err != nil {
		return nil, err
	}

	tags, err := t.store.SearchTags(ctx, store.TagFilter{
		JournalID: scope.ID,
		Name:      search.Name,
		Trash:     search.Trash,
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return tags, nil
}

// TagUpdate carries the mutable tag attributes.
type TagUpdate struct {
	Name  *string
	Trash *bool
}

// UpdateTag updates a tag; renames check per-journal uniqueness.
func (t *TagService) UpdateTag(ctx context.Context, handle any, journal any, update TagUpdate) (*model.Tag, error) {
	var tag *model.Tag

	err := t.store.Transaction(ctx, func(tx store.Store) error {
		var scope *model.Journal
		var err error
		if journal != nil {
			scope, err = resolveJournal(ctx, tx, journal)
			if err != nil {
				return err
			}
		}

		tag, err = resolveTag(ctx, tx, handle, scope)
		if err != nil {
			return err
		}

		if update.Name != nil && *update.Name != tag.Name {
			if _, err := tx.GetTagByName(ctx, tag.JournalID, *update.Name); err == nil {
				return fmt.Errorf("a tag named '%s': %w", *update.Name, ErrConflict)
			}
			tag.Name = *update.Name
		}
		if update.Trash != nil {
			tag.Trash = *update.Trash
		}

		return storeErr(tx.UpdateTag(ctx, tag))
	})
	if err != nil {
		return nil, err
	}

	return tag, nil
}

// AttachTag links a tag to a record of the same journal. Re-attaching a
// trashed association restores it instead of inserting a second row.
func (t *TagService) AttachTag(ctx context.Context, record any, tag any, journal any) (*model.RecordTag, error) {
	var link *model.RecordTag

	err := t.store.Transaction(ctx, func(tx store.Store) error {
		var scope *model.Journal
		var err error
		if journal != nil {
			scope, err = resolveJournal(ctx, tx, journal)
			if err != nil {
				return err
			}
		}

		rec, err := resolveRecord(ctx, tx, record)
		if err != nil {
			return err
		}
		tg, err := resolveTag(ctx, tx, tag, scope)
		if err != nil {
			return err
		}
		if tg.JournalID != rec.JournalID {
			return fmt.Errorf("tag '%s' belongs to another journal than record %d: %w", tg.Name, rec.ID, ErrInvalidArgument)
		}

		link, err = tx.GetRecordTag(ctx, rec.ID, tg.ID)
		if err == nil {
			link.Trash = false
			return storeErr(tx.UpdateRecordTag(ctx, link))
		}

		link = &model.RecordTag{
			RecordID: rec.ID,
			TagID:    tg.ID,
		}
		return storeErr(tx.CreateRecordTag(ctx, link))
	})
	if err != nil {
		return nil, err
	}

	return link, nil
}

// DetachTag soft-deletes the association between a record and a tag.
// The tag and the record are untouched.
func (t *TagService) DetachTag(ctx context.Context, record any, tag any, journal any) error {
	return t.store.Transaction(ctx, func(tx store.Store) error {
		var scope *model.Journal
		var err error
		if journal != nil {
			scope, err = resolveJournal(ctx, tx, journal)
			if err != nil {
				return err
			}
		}

		rec, err := resolveRecord(ctx, tx, record)
		if err != nil {
			return err
		}
		tg, err := resolveTag(ctx, tx, tag, scope)
		if err != nil {
			return err
		}

		link, err := tx.GetRecordTag(ctx, rec.ID, tg.ID)
		if err != nil {
			return storeErr(err)
		}

		link.Trash = true
		return storeErr(tx.UpdateRecordTag(ctx, link))
	})
}
