package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emrgen/journal/internal/fieldtype"
	"github.com/emrgen/journal/internal/model"
	"github.com/emrgen/journal/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewContentService creates a new ContentService.
func NewContentService(store store.Store) *ContentService {
	return &ContentService{
		store: store,
	}
}

// ContentService associates typed values with (journal, field, record)
// triples and enforces that a value's physical storage matches its
// field's declared type.
type ContentService struct {
	store store.Store
}

// CreateContent writes one value for a field on a record. The value
// must type-check against the field's kind; a second value on a field
// that does not allow multiples is rejected.
func (c *ContentService) CreateContent(ctx context.Context, journal, field, record any, value any) (*model.Content, error) {
	var content *model.Content

	err := c.store.Transaction(ctx, func(tx store.Store) error {
		scope, fld, rec, err := resolveTriple(ctx, tx, journal, field, record)
		if err != nil {
			return err
		}

		content = &model.Content{
			JournalID: scope.ID,
			FieldID:   fld.ID,
			RecordID:  rec.ID,
		}
		if err := setValue(fld, content, value); err != nil {
			return err
		}

		if !fld.MultipleAllowed {
			count, err := tx.CountFieldRecordContent(ctx, fld.ID, rec.ID)
			if err != nil {
				return storeErr(err)
			}
			if count > 0 {
				return fmt.Errorf("field '%s' does not allow multiple values per record: %w", fld.Fieldname, ErrConflict)
			}
		}

		return storeErr(tx.CreateContent(ctx, content))
	})
	if err != nil {
		return nil, err
	}

	return content, nil
}

// GetContent retrieves one content row by id.
func (c *ContentService) GetContent(ctx context.Context, id uint) (*model.Content, error) {
	content, err := c.store.GetContent(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return content, nil
}

// ListRecordContent returns all content rows of a record, in insertion
// order.
func (c *ContentService) ListRecordContent(ctx context.Context, journal, record any) ([]*model.Content, error) {
	scope, err := resolveJournal(ctx, c.store, journal)
	if err != nil {
		return nil, err
	}
	rec, err := resolveRecord(ctx, c.store, record)
	if err != nil {
		return nil, err
	}
	if rec.JournalID != scope.ID {
		return nil, fmt.Errorf("record %d belongs to another journal: %w", rec.ID, ErrInvalidArgument)
	}

	contents, err := c.store.ListRecordContent(ctx, rec.ID)
	if err != nil {
		return nil, storeErr(err)
	}
	return contents, nil
}

// UpdateContent replaces the value of one content row. The row, its
// field and its record must all belong to the same journal; a mismatch
// points at a dangling reference and is always rejected.
func (c *ContentService) UpdateContent(ctx context.Context, id uint, value any) (*model.Content, error) {
	var content *model.Content

	err := c.store.Transaction(ctx, func(tx store.Store) error {
		var err error
		content, err = tx.GetContent(ctx, id)
		if err != nil {
			return storeErr(err)
		}

		fld, err := checkContentIntegrity(ctx, tx, content)
		if err != nil {
			return err
		}

		fresh := &model.Content{}
		if err := setValue(fld, fresh, value); err != nil {
			return err
		}
		content.IntegerValue = fresh.IntegerValue
		content.FloatValue = fresh.FloatValue
		content.StringValue = fresh.StringValue
		content.TimestampValue = fresh.TimestampValue
		content.DurationValue = fresh.DurationValue

		return storeErr(tx.UpdateContent(ctx, content))
	})
	if err != nil {
		return nil, err
	}

	return content, nil
}

// TrashContent soft-deletes one content row. Reversible through
// RestoreContent.
func (c *ContentService) TrashContent(ctx context.Context, id uint) error {
	return c.setContentTrash(ctx, id, true)
}

// RestoreContent clears the trash flag of one content row.
func (c *ContentService) RestoreContent(ctx context.Context, id uint) error {
	return c.setContentTrash(ctx, id, false)
}

func (c *ContentService) setContentTrash(ctx context.Context, id uint, trash bool) error {
	return c.store.Transaction(ctx, func(tx store.Store) error {
		content, err := tx.GetContent(ctx, id)
		if err != nil {
			return storeErr(err)
		}

		if _, err := checkContentIntegrity(ctx, tx, content); err != nil {
			return err
		}

		content.Trash = trash
		return storeErr(tx.UpdateContent(ctx, content))
	})
}

// SessionValue is the composite value of a session field: up to three
// parts stored as sibling rows under one parent content unit.
type SessionValue struct {
	Start    *time.Time
	End      *time.Time
	Duration *time.Duration
}

// CreateSessionContent writes a session value. Each present part lands
// in its matching child field's row, nested under a parent row for the
// group field.
func (c *ContentService) CreateSessionContent(ctx context.Context, journal, field, record any, value SessionValue) (*model.Content, error) {
	var parent *model.Content

	err := c.store.Transaction(ctx, func(tx store.Store) error {
		scope, group, rec, err := resolveGroupTriple(ctx, tx, journal, field, record)
		if err != nil {
			return err
		}

		children, err := groupChildren(ctx, tx, group)
		if err != nil {
			return err
		}

		parent, err = c.createGroupParent(ctx, tx, scope, group, rec)
		if err != nil {
			return err
		}

		parts := map[string]any{}
		if value.Start != nil {
			parts["start"] = *value.Start
		}
		if value.End != nil {
			parts["end"] = *value.End
		}
		if value.Duration != nil {
			parts["duration"] = *value.Duration
		}

		for suffix, v := range parts {
			child, ok := children[suffix]
			if !ok {
				return fmt.Errorf("session field '%s' has no '%s' sub-field: %w", group.Fieldname, suffix, ErrInvalidArgument)
			}

			row := &model.Content{
				JournalID: scope.ID,
				FieldID:   child.ID,
				RecordID:  rec.ID,
				ParentID:  &parent.ID,
			}
			if err := setValue(child, row, v); err != nil {
				return err
			}
			if err := tx.CreateContent(ctx, row); err != nil {
				return storeErr(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created session content %d", parent.ID)
	return parent, nil
}

// SessionValue reads a session back from a record. When no duration is
// stored but both start and end are, the duration is derived as their
// difference; a stored duration always wins.
func (c *ContentService) SessionValue(ctx context.Context, journal, field, record any) (*SessionValue, error) {
	_, group, rec, err := resolveGroupTriple(ctx, c.store, journal, field, record)
	if err != nil {
		return nil, err
	}

	children, err := groupChildren(ctx, c.store, group)
	if err != nil {
		return nil, err
	}

	value := &SessionValue{}
	for suffix, child := range children {
		rows, err := c.store.ListFieldRecordContent(ctx, child.ID, rec.ID)
		if err != nil {
			return nil, storeErr(err)
		}
		row := firstLive(rows)
		if row == nil {
			continue
		}

		switch suffix {
		case "start":
			value.Start = row.TimestampValue
		case "end":
			value.End = row.TimestampValue
		case "duration":
			if row.DurationValue != nil {
				d := time.Duration(*row.DurationValue)
				value.Duration = &d
			}
		}
	}

	if value.Duration == nil && value.Start != nil && value.End != nil {
		d := value.End.Sub(*value.Start)
		value.Duration = &d
	}

	return value, nil
}

// AttachmentValue is the composite value of an attachment field.
type AttachmentValue struct {
	Filename string
	UUID     string
}

// CreateAttachmentContent writes an attachment value: the filename plus
// a generated uuid, as sibling rows under one parent content unit.
func (c *ContentService) CreateAttachmentContent(ctx context.Context, journal, field, record any, filename string) (*AttachmentValue, error) {
	value := &AttachmentValue{
		Filename: filename,
		UUID:     uuid.New().String(),
	}

	err := c.store.Transaction(ctx, func(tx store.Store) error {
		scope, group, rec, err := resolveGroupTriple(ctx, tx, journal, field, record)
		if err != nil {
			return err
		}

		children, err := groupChildren(ctx, tx, group)
		if err != nil {
			return err
		}
		for _, suffix := range []string{"filename", "uuid"} {
			if _, ok := children[suffix]; !ok {
				return fmt.Errorf("attachment field '%s' has no '%s' sub-field: %w", group.Fieldname, suffix, ErrInvalidArgument)
			}
		}

		parent, err := c.createGroupParent(ctx, tx, scope, group, rec)
		if err != nil {
			return err
		}

		for suffix, v := range map[string]string{"filename": value.Filename, "uuid": value.UUID} {
			child := children[suffix]
			row := &model.Content{
				JournalID: scope.ID,
				FieldID:   child.ID,
				RecordID:  rec.ID,
				ParentID:  &parent.ID,
			}
			if err := setValue(child, row, v); err != nil {
				return err
			}
			if err := tx.CreateContent(ctx, row); err != nil {
				return storeErr(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// AttachmentValues reads all live attachments of a field on a record.
func (c *ContentService) AttachmentValues(ctx context.Context, journal, field, record any) ([]*AttachmentValue, error) {
	_, group, rec, err := resolveGroupTriple(ctx, c.store, journal, field, record)
	if err != nil {
		return nil, err
	}

	children, err := groupChildren(ctx, c.store, group)
	if err != nil {
		return nil, err
	}

	parents, err := c.store.ListFieldRecordContent(ctx, group.ID, rec.ID)
	if err != nil {
		return nil, storeErr(err)
	}

	var values []*AttachmentValue
	for _, parent := range parents {
		if parent.Trash {
			continue
		}

		value := &AttachmentValue{}
		for suffix, child := range children {
			rows, err := c.store.ListFieldRecordContent(ctx, child.ID, rec.ID)
			if err != nil {
				return nil, storeErr(err)
			}
			for _, row := range rows {
				if row.Trash || row.ParentID == nil || *row.ParentID != parent.ID || row.StringValue == nil {
					continue
				}
				switch suffix {
				case "filename":
					value.Filename = *row.StringValue
				case "uuid":
					value.UUID = *row.StringValue
				}
			}
		}
		values = append(values, value)
	}

	return values, nil
}

// createGroupParent inserts the parent content unit for one compound
// value, honoring the group field's multiplicity.
func (c *ContentService) createGroupParent(ctx context.Context, tx store.Store, scope *model.Journal, group *model.Field, rec *model.Record) (*model.Content, error) {
	if !group.MultipleAllowed {
		count, err := tx.CountFieldRecordContent(ctx, group.ID, rec.ID)
		if err != nil {
			return nil, storeErr(err)
		}
		if count > 0 {
			return nil, fmt.Errorf("field '%s' does not allow multiple values per record: %w", group.Fieldname, ErrConflict)
		}
	}

	parent := &model.Content{
		JournalID: scope.ID,
		FieldID:   group.ID,
		RecordID:  rec.ID,
	}
	if err := tx.CreateContent(ctx, parent); err != nil {
		return nil, storeErr(err)
	}

	return parent, nil
}

// resolveTriple resolves a (journal, field, record) handle triple and
// rejects any cross-journal combination.
func resolveTriple(ctx context.Context, tx store.Store, journal, field, record any) (*model.Journal, *model.Field, *model.Record, error) {
	scope, err := resolveJournal(ctx, tx, journal)
	if err != nil {
		return nil, nil, nil, err
	}

	fld, err := resolveField(ctx, tx, field, scope)
	if err != nil {
		return nil, nil, nil, err
	}
	if fld.JournalID != scope.ID {
		return nil, nil, nil, fmt.Errorf("field '%s' belongs to another journal: %w", fld.Fieldname, ErrInvalidArgument)
	}

	rec, err := resolveRecord(ctx, tx, record)
	if err != nil {
		return nil, nil, nil, err
	}
	if rec.JournalID != scope.ID {
		return nil, nil, nil, fmt.Errorf("record %d belongs to another journal: %w", rec.ID, ErrInvalidArgument)
	}

	return scope, fld, rec, nil
}

// resolveGroupTriple is resolveTriple for compound writes: the field
// must be a group parent.
func resolveGroupTriple(ctx context.Context, tx store.Store, journal, field, record any) (*model.Journal, *model.Field, *model.Record, error) {
	scope, fld, rec, err := resolveTriple(ctx, tx, journal, field, record)
	if err != nil {
		return nil, nil, nil, err
	}
	if fld.Fieldtype != fieldtype.Group {
		return nil, nil, nil, fmt.Errorf("field '%s' of type '%s' holds no sub-fields: %w", fld.Fieldname, fld.Fieldtype, ErrInvalidArgument)
	}
	return scope, fld, rec, nil
}

// groupChildren maps a group's child fields by their fieldname suffix.
func groupChildren(ctx context.Context, tx store.Store, group *model.Field) (map[string]*model.Field, error) {
	fields, err := tx.SearchFields(ctx, store.FieldFilter{
		JournalID: group.JournalID,
		GroupID:   &group.ID,
	})
	if err != nil {
		return nil, storeErr(err)
	}

	children := make(map[string]*model.Field, len(fields))
	for _, field := range fields {
		if idx := strings.LastIndex(field.Fieldname, "_"); idx >= 0 {
			children[field.Fieldname[idx+1:]] = field
		}
	}
	return children, nil
}

// checkContentIntegrity loads the field and record of a content row and
// verifies all three share one journal. A mismatch means a dangling
// reference, for example after a partial migration.
func checkContentIntegrity(ctx context.Context, tx store.Store, content *model.Content) (*model.Field, error) {
	fld, err := tx.GetFieldByID(ctx, content.FieldID)
	if err != nil {
		return nil, storeErr(err)
	}
	rec, err := tx.GetRecord(ctx, content.RecordID)
	if err != nil {
		return nil, storeErr(err)
	}

	if fld.JournalID != content.JournalID || rec.JournalID != content.JournalID {
		return nil, fmt.Errorf("content %d references field or record of another journal: %w", content.ID, ErrInvalidArgument)
	}

	return fld, nil
}

func firstLive(rows []*model.Content) *model.Content {
	for _, row := range rows {
		if !row.Trash {
			return row
		}
	}
	return nil
}
