package service

import (
	"context"
	"fmt"

	"github.com/emrgen/journal/internal/fieldtype"
	"github.com/emrgen/journal/internal/model"
	"github.com/emrgen/journal/internal/store"
	"github.com/sirupsen/logrus"
)

// NewFieldService creates a new FieldService.
func NewFieldService(store store.Store) *FieldService {
	return &FieldService{
		store: store,
	}
}

// FieldService owns field definition: validation, uniqueness and the
// expansion of compound kinds into child fields.
type FieldService struct {
	store store.Store
}

// GetField resolves a field handle. A numeric id stands alone; a
// fieldname requires the journal handle to scope it.
func (f *FieldService) GetField(ctx context.Context, handle any, journal any) (*model.Field, error) {
	var scope *model.Journal
	if journal != nil {
		var err error
		scope, err = resolveJournal(ctx, f.store, journal)
		if err != nil {
			return nil, err
		}
	}

	return resolveField(ctx, f.store, handle, scope)
}

// FieldSearch carries the field search filters. Fieldname and
// Displayname match case-insensitively as substrings unless Exact is
// set. Group accepts a field handle.
type FieldSearch struct {
	Fieldname       *string
	Fieldtype       *string
	Group           any
	Displayname     *string
	Visible         *bool
	MultipleAllowed *bool
	Trash           *bool
	Exact           bool
}

// SearchFields returns the journal's fields matching every supplied
// filter, in insertion order.
func (f *FieldService) SearchFields(ctx context.Context, journal any, search FieldSearch) ([]*model.Field, error) {
	scope, err := resolveJournal(ctx, f.store, journal)
	if err != nil {
		return nil, err
	}

	filter := store.FieldFilter{
		JournalID:       scope.ID,
		Fieldname:       search.Fieldname,
		Displayname:     search.Displayname,
		Visible:         search.Visible,
		MultipleAllowed: search.MultipleAllowed,
		Trash:           search.Trash,
		Partial:         !search.Exact,
	}

	if search.Fieldtype != nil {
		kind, err := fieldtype.ParseKind(*search.Fieldtype)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", err, ErrInvalidArgument)
		}
		filter.Fieldtype = &kind
	}

	if search.Group != nil {
		group, err := resolveField(ctx, f.store, search.Group, scope)
		if err != nil {
			return nil, err
		}
		filter.GroupID = &group.ID
	}

	fields, err := f.store.SearchFields(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	return fields, nil
}

// PrimitiveFieldOptions carries the optional attributes of a primitive
// field. Length applies to string-like kinds (-1 means unlimited),
// Resolution to time-like kinds.
type PrimitiveFieldOptions struct {
	Group           any
	Visible         bool
	MultipleAllowed bool
	Length          *int
	Resolution      *fieldtype.Resolution
}

// DefaultPrimitiveFieldOptions returns the defaults: visible, single
// value, no group.
func DefaultPrimitiveFieldOptions() PrimitiveFieldOptions {
	return PrimitiveFieldOptions{Visible: true}
}

// CreatePrimitiveField creates one field of a primitive kind. Compound
// kinds, including 'group', are rejected here and must go through their
// own constructors.
func (f *FieldService) CreatePrimitiveField(ctx context.Context, journal any, fieldname string, kind fieldtype.Kind, displayname string, opts PrimitiveFieldOptions) (*model.Field, error) {
	var field *model.Field

	err := f.store.Transaction(ctx, func(tx store.Store) error {
		scope, err := resolveJournal(ctx, tx, journal)
		if err != nil {
			return err
		}

		if err := checkFieldNames(ctx, tx, scope, fieldname, displayname); err != nil {
			return err
		}

		if !fieldtype.Primitive(kind) {
			return fmt.Errorf("'%s' is not a primitive field type: %w", kind, ErrInvalidArgument)
		}

		var groupID *uint
		if opts.Group != nil {
			group, err := resolveField(ctx, tx, opts.Group, scope)
			if err != nil {
				return err
			}
			if err := checkGroup(scope, group); err != nil {
				return err
			}
			groupID = &group.ID
		}

		length := opts.Length
		if length != nil && !(*length == fieldtype.UnlimitedLength || *length > 0) {
			return fmt.Errorf("length must be equal to -1 (\"unlimited\") or greater than 0: %w", ErrInvalidArgument)
		}

		resolution := opts.Resolution
		if resolution != nil && !fieldtype.ValidResolution(*resolution) {
			return fmt.Errorf("'%s' is not an accepted time unit resolution: %w", *resolution, ErrInvalidArgument)
		}

		if fieldtype.TimeKind(kind) && resolution == nil {
			def := fieldtype.DefaultResolution
			resolution = &def
		}
		if fieldtype.StringKind(kind) && length == nil {
			unlimited := fieldtype.UnlimitedLength
			length = &unlimited
		}

		field = &model.Field{
			JournalID:       scope.ID,
			Fieldname:       fieldname,
			Fieldtype:       kind,
			Displayname:     displayname,
			GroupID:         groupID,
			Visible:         opts.Visible,
			MultipleAllowed: opts.MultipleAllowed,
			Length:          length,
			Resolution:      resolution,
		}

		return storeErr(tx.CreateField(ctx, field))
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created field '%s' of type '%s'", fieldname, kind)
	return field, nil
}

// SessionFieldOptions controls the session expansion. Start, End and
// Duration each toggle one child field; Resolution applies uniformly to
// every enabled child.
type SessionFieldOptions struct {
	Group           any
	Start           bool
	End             bool
	Duration        bool
	Resolution      fieldtype.Resolution
	Visible         bool
	MultipleAllowed bool
}

// DefaultSessionFieldOptions returns the full start/end/duration
// expansion at second resolution.
func DefaultSessionFieldOptions() SessionFieldOptions {
	return SessionFieldOptions{
		Start:      true,
		End:        true,
		Duration:   true,
		Resolution: fieldtype.DefaultResolution,
		Visible:    true,
	}
}

// CreateSessionField creates a group parent field plus up to three child
// fields (start and end timestamps, a duration), each wired to the
// parent through the group relation. Returns the parent; the children
// are reachable through SearchFields with the Group filter.
func (f *FieldService) CreateSessionField(ctx context.Context, journal any, fieldname, displayname string, opts SessionFieldOptions) (*model.Field, error) {
	if !fieldtype.ValidResolution(opts.Resolution) {
		return nil, fmt.Errorf("'%s' is not an accepted time unit resolution: %w", opts.Resolution, ErrInvalidArgument)
	}

	templates := fieldtype.SessionTemplates(fieldtype.SessionOptions{
		Start:      opts.Start,
		End:        opts.End,
		Duration:   opts.Duration,
		Resolution: opts.Resolution,
	})

	return f.createCompoundField(ctx, journal, fieldname, displayname, compoundSpec{
		group:           opts.Group,
		visible:         opts.Visible,
		multipleAllowed: opts.MultipleAllowed,
		templates:       templates,
	})
}

// AttachmentFieldOptions carries the optional attributes of an
// attachment field.
type AttachmentFieldOptions struct {
	Group           any
	Visible         bool
	MultipleAllowed bool
}

// DefaultAttachmentFieldOptions returns the defaults. MultipleAllowed
// is on: a record typically holds several attachments.
func DefaultAttachmentFieldOptions() AttachmentFieldOptions {
	return AttachmentFieldOptions{
		Visible:         true,
		MultipleAllowed: true,
	}
}

// CreateAttachmentField creates a group parent field plus a filename
// child (unlimited string) and a hidden uuid child.
func (f *FieldService) CreateAttachmentField(ctx context.Context, journal any, fieldname, displayname string, opts AttachmentFieldOptions) (*model.Field, error) {
	return f.createCompoundField(ctx, journal, fieldname, displayname, compoundSpec{
		group:           opts.Group,
		visible:         opts.Visible,
		multipleAllowed: opts.MultipleAllowed,
		templates:       fieldtype.AttachmentTemplates(),
	})
}

// CreateField routes to the primitive, session or attachment
// constructor based on the kind, with each constructor's defaults.
// 'group' is rejected as a direct target: a group parent only comes
// into being through a compound constructor.
func (f *FieldService) CreateField(ctx context.Context, journal any, fieldname, kindName, displayname string) (*model.Field, error) {
	kind, err := fieldtype.ParseKind(kindName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrInvalidArgument)
	}

	switch kind {
	case fieldtype.Group:
		return nil, fmt.Errorf("a 'group' field is created through a compound constructor, not directly: %w", ErrInvalidArgument)
	case fieldtype.Session:
		return f.CreateSessionField(ctx, journal, fieldname, displayname, DefaultSessionFieldOptions())
	case fieldtype.Attachment:
		return f.CreateAttachmentField(ctx, journal, fieldname, displayname, DefaultAttachmentFieldOptions())
	default:
		return f.CreatePrimitiveField(ctx, journal, fieldname, kind, displayname, DefaultPrimitiveFieldOptions())
	}
}

type compoundSpec struct {
	group           any
	visible         bool
	multipleAllowed bool
	templates       []fieldtype.Template
}

func (f *FieldService) createCompoundField(ctx context.Context, journal any, fieldname, displayname string, spec compoundSpec) (*model.Field, error) {
	var parent *model.Field

	err := f.store.Transaction(ctx, func(tx store.Store) error {
		scope, err := resolveJournal(ctx, tx, journal)
		if err != nil {
			return err
		}

		if err := checkFieldNames(ctx, tx, scope, fieldname, displayname); err != nil {
			return err
		}

		var groupID *uint
		if spec.group != nil {
			group, err := resolveField(ctx, tx, spec.group, scope)
			if err != nil {
				return err
			}
			if err := checkGroup(scope, group); err != nil {
				return err
			}
			groupID = &group.ID
		}

		parent = &model.Field{
			JournalID:       scope.ID,
			Fieldname:       fieldname,
			Fieldtype:       fieldtype.Group,
			Displayname:     displayname,
			GroupID:         groupID,
			Visible:         spec.visible,
			MultipleAllowed: spec.multipleAllowed,
		}
		if err := tx.CreateField(ctx, parent); err != nil {
			return storeErr(err)
		}

		children := make([]*model.Field, 0, len(spec.templates))
		for _, tmpl := range spec.templates {
			childName := fieldname + "_" + tmpl.Suffix
			childLabel := displayname + " " + tmpl.Label
			if err := checkFieldNames(ctx, tx, scope, childName, childLabel); err != nil {
				return err
			}

			child := &model.Field{
				JournalID:       scope.ID,
				Fieldname:       childName,
				Fieldtype:       tmpl.Kind,
				Displayname:     childLabel,
				GroupID:         &parent.ID,
				Visible:         tmpl.Visible,
				MultipleAllowed: spec.multipleAllowed,
			}
			if tmpl.Length != 0 {
				length := tmpl.Length
				child.Length = &length
			}
			if tmpl.Resolution != "" {
				resolution := tmpl.Resolution
				child.Resolution = &resolution
			}
			children = append(children, child)
		}

		if len(children) > 0 {
			if err := tx.CreateFields(ctx, children); err != nil {
				return storeErr(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created compound field '%s' with %d children", fieldname, len(spec.templates))
	return parent, nil
}

// FieldUpdate carries the mutable field attributes. Nil members are
// left untouched.
type FieldUpdate struct {
	Fieldname       *string
	Displayname     *string
	Visible         *bool
	MultipleAllowed *bool
	Trash           *bool
}

// UpdateField updates the attributes of a field. Renames are checked
// against both per-journal unique names.
func (f *FieldService) UpdateField(ctx context.Context, handle any, journal any, update FieldUpdate) (*model.Field, error) {
	var field *model.Field

	err := f.store.Transaction(ctx, func(tx store.Store) error {
		var scope *model.Journal
		var err error
		if journal != nil {
			scope, err = resolveJournal(ctx, tx, journal)
			if err != nil {
				return err
			}
		}

		field, err = resolveField(ctx, tx, handle, scope)
		if err != nil {
			return err
		}

		if update.Fieldname != nil && *update.Fieldname != field.Fieldname {
			if _, err := tx.GetFieldByName(ctx, field.JournalID, *update.Fieldname); err == nil {
				return fmt.Errorf("fieldname '%s': %w", *update.Fieldname, ErrConflict)
			}
			field.Fieldname = *update.Fieldname
		}
		if update.Displayname != nil && *update.Displayname != field.Displayname {
			taken, err := displaynameTaken(ctx, tx, field.JournalID, *update.Displayname)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("displayname '%s': %w", *update.Displayname, ErrConflict)
			}
			field.Displayname = *update.Displayname
		}
		if update.Visible != nil {
			field.Visible = *update.Visible
		}
		if update.MultipleAllowed != nil {
			field.MultipleAllowed = *update.MultipleAllowed
		}
		if update.Trash != nil {
			field.Trash = *update.Trash
		}

		return storeErr(tx.UpdateField(ctx, field))
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("updated field '%s'", field.Fieldname)
	return field, nil
}

// checkFieldNames enforces per-journal uniqueness of fieldname and
// displayname, independent of trash state.
func checkFieldNames(ctx context.Context, tx store.Store, journal *model.Journal, fieldname, displayname string) error {
	if fieldname == "" || displayname == "" {
		return fmt.Errorf("fieldname and displayname must not be empty: %w", ErrInvalidArgument)
	}

	if _, err := tx.GetFieldByName(ctx, journal.ID, fieldname); err == nil {
		return fmt.Errorf("fieldname '%s' in journal '%s': %w", fieldname, journal.Name, ErrConflict)
	}

	taken, err := displaynameTaken(ctx, tx, journal.ID, displayname)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("displayname '%s' in journal '%s': %w", displayname, journal.Name, ErrConflict)
	}

	return nil
}

func displaynameTaken(ctx context.Context, tx store.Store, journalID uint, displayname string) (bool, error) {
	matches, err := tx.SearchFields(ctx, store.FieldFilter{
		JournalID:   journalID,
		Displayname: &displayname,
		Partial:     false,
	})
	if err != nil {
		return false, storeErr(err)
	}
	return len(matches) > 0, nil
}

// checkGroup verifies that a group reference points at a group field of
// the same journal.
func checkGroup(journal *model.Journal, group *model.Field) error {
	if group.JournalID != journal.ID {
		return fmt.Errorf("group field '%s' belongs to another journal: %w", group.Fieldname, ErrInvalidArgument)
	}
	if group.Fieldtype != fieldtype.Group {
		return fmt.Errorf("field '%s' of type '%s' cannot act as a group: %w", group.Fieldname, group.Fieldtype, ErrInvalidArgument)
	}
	return nil
}
