package service

import (
	"context"
	"fmt"

	"github.com/emrgen/journal/internal/model"
	"github.com/emrgen/journal/internal/store"
)

// intHandle converts the integer forms a handle may take. Negative
// values convert through uint and simply miss.
func intHandle(handle any) (uint, bool) {
	switch h := handle.(type) {
	case int:
		return uint(h), true
	case int32:
		return uint(h), true
	case int64:
		return uint(h), true
	case uint:
		return h, true
	case uint32:
		return uint(h), true
	case uint64:
		return uint(h), true
	default:
		return 0, false
	}
}

// resolveJournal resolves a journal handle: a name, a numeric id, or an
// already resolved *model.Journal.
func resolveJournal(ctx context.Context, s store.Store, handle any) (*model.Journal, error) {
	switch h := handle.(type) {
	case *model.Journal:
		return h, nil
	case string:
		journal, err := s.GetJournalByName(ctx, h)
		if err != nil {
			return nil, fmt.Errorf("journal '%s': %w", h, storeErr(err))
		}
		return journal, nil
	default:
		if id, ok := intHandle(handle); ok {
			journal, err := s.GetJournalByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("journal %d: %w", id, storeErr(err))
			}
			return journal, nil
		}
		return nil, fmt.Errorf("journal handle %T: %w", handle, ErrInvalidHandle)
	}
}

// resolveField resolves a field handle. A numeric id stands alone; a
// fieldname needs the journal to scope it.
func resolveField(ctx context.Context, s store.Store, handle any, journal *model.Journal) (*model.Field, error) {
	switch h := handle.(type) {
	case *model.Field:
		return h, nil
	case string:
		if journal == nil {
			return nil, fmt.Errorf("field '%s' is accessed either by id or by fieldname and journal: %w", h, ErrInvalidArgument)
		}
		field, err := s.GetFieldByName(ctx, journal.ID, h)
		if err != nil {
			return nil, fmt.Errorf("field '%s' in journal '%s': %w", h, journal.Name, storeErr(err))
		}
		return field, nil
	default:
		if id, ok := intHandle(handle); ok {
			field, err := s.GetFieldByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("field %d: %w", id, storeErr(err))
			}
			return field, nil
		}
		return nil, fmt.Errorf("field handle %T: %w", handle, ErrInvalidHandle)
	}
}

// resolveRecord resolves a record handle: a numeric id or an already
// resolved *model.Record. Records have no name.
func resolveRecord(ctx context.Context, s store.Store, handle any) (*model.Record, error) {
	switch h := handle.(type) {
	case *model.Record:
		return h, nil
	default:
		if id, ok := intHandle(handle); ok {
			record, err := s.GetRecord(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", id, storeErr(err))
			}
			return record, nil
		}
		return nil, fmt.Errorf("record handle %T: %w", handle, ErrInvalidHandle)
	}
}

// resolveTag resolves a tag handle: a name within the journal, a numeric
// id, or an already resolved *model.Tag.
func resolveTag(ctx context.Context, s store.Store, handle any, journal *model.Journal) (*model.Tag, error) {
	switch h := handle.(type) {
	case *model.Tag:
		return h, nil
	case string:
		if journal == nil {
			return nil, fmt.Errorf("tag '%s' is accessed either by id or by name and journal: %w", h, ErrInvalidArgument)
		}
		tag, err := s.GetTagByName(ctx, journal.ID, h)
		if err != nil {
			return nil, fmt.Errorf("tag '%s' in journal '%s': %w", h, journal.Name, storeErr(err))
		}
		return tag, nil
	default:
		if id, ok := intHandle(handle); ok {
			tag, err := s.GetTagByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("tag %d: %w", id, storeErr(err))
			}
			return tag, nil
		}
		return nil, fmt.Errorf("tag handle %T: %w", handle, ErrInvalidHandle)
	}
}
