package store

import (
	"context"
	"errors"

	"github.com/emrgen/journal/internal/fieldtype"
	"github.com/emrgen/journal/internal/model"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

// JournalFilter selects journals. Nil filters are skipped; Name is a
// case-insensitive substring match.
type JournalFilter struct {
	Name    *string
	Enabled *bool
	Visible *bool
	Trash   *bool
}

// FieldFilter selects fields within one journal. Fieldname and
// Displayname match case-insensitively, as substrings when Partial is
// set and exactly otherwise.
type FieldFilter struct {
	JournalID       uint
	Fieldname       *string
	Fieldtype       *fieldtype.Kind
	GroupID         *uint
	Displayname     *string
	Visible         *bool
	MultipleAllowed *bool
	Trash           *bool
	Partial         bool
}

// RecordFilter selects records within one journal.
type RecordFilter struct {
	JournalID uint
	ParentID  *uint
	Trash     *bool
}

// TagFilter selects tags within one journal.
type TagFilter struct {
	JournalID uint
	Name      *string
	Trash     *bool
}

type Store interface {
	JournalStore
	FieldStore
	RecordStore
	ContentStore
	TagStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type JournalStore interface {
	// CreateJournal inserts a new journal.
	CreateJournal(ctx context.Context, journal *model.Journal) error
	// GetJournalByID retrieves a journal by id.
	GetJournalByID(ctx context.Context, id uint) (*model.Journal, error)
	// GetJournalByName retrieves a journal by exact name.
	GetJournalByName(ctx context.Context, name string) (*model.Journal, error)
	// SearchJournals retrieves journals matching the filter in insertion order.
	SearchJournals(ctx context.Context, filter JournalFilter) ([]*model.Journal, error)
	// UpdateJournal saves a journal.
	UpdateJournal(ctx context.Context, journal *model.Journal) error
	// DeleteJournal removes a journal; the schema cascades to owned rows.
	DeleteJournal(ctx context.Context, id uint) error
}

type FieldStore interface {
	// CreateField inserts a new field.
	CreateField(ctx context.Context, field *model.Field) error
	// CreateFields inserts several fields at once, used by compound expansion.
	CreateFields(ctx context.Context, fields []*model.Field) error
	// GetFieldByID retrieves a field by id.
	GetFieldByID(ctx context.Context, id uint) (*model.Field, error)
	// GetFieldByName retrieves a field by fieldname within a journal.
	GetFieldByName(ctx context.Context, journalID uint, fieldname string) (*model.Field, error)
	// SearchFields retrieves fields matching the filter in insertion order.
	SearchFields(ctx context.Context, filter FieldFilter) ([]*model.Field, error)
	// UpdateField saves a field.
	UpdateField(ctx context.Context, field *model.Field) error
}

type RecordStore interface {
	// CreateRecord inserts a new record.
	CreateRecord(ctx context.Context, record *model.Record) error
	// GetRecord retrieves a record by id.
	GetRecord(ctx context.Context, id uint) (*model.Record, error)
	// SearchRecords retrieves records matching the filter in insertion order.
	SearchRecords(ctx context.Context, filter RecordFilter) ([]*model.Record, error)
	// UpdateRecord saves a record.
	UpdateRecord(ctx context.Context, record *model.Record) error
}

type ContentStore interface {
	// CreateContent inserts a new content row.
	CreateContent(ctx context.Context, content *model.Content) error
	// GetContent retrieves a content row by id.
	GetContent(ctx context.Context, id uint) (*model.Content, error)
	// ListRecordContent retrieves all content rows of a record.
	ListRecordContent(ctx context.Context, recordID uint) ([]*model.Content, error)
	// ListFieldRecordContent retrieves all content rows of one field on one record.
	ListFieldRecordContent(ctx context.Context, fieldID, recordID uint) ([]*model.Content, error)
	// CountFieldRecordContent counts non-trashed content rows of one field on one record.
	CountFieldRecordContent(ctx context.Context, fieldID, recordID uint) (int64, error)
	// UpdateContent saves a content row.
	UpdateContent(ctx context.Context, content *model.Content) error
}

type TagStore interface {
	// CreateTag inserts a new tag.
	CreateTag(ctx context.Context, tag *model.Tag) error
	// GetTagByID retrieves a tag by id.
	GetTagByID(ctx context.Context, id uint) (*model.Tag, error)
	// GetTagByName retrieves a tag by exact name within a journal.
	GetTagByName(ctx context.Context, journalID uint, name string) (*model.Tag, error)
	// SearchTags retrieves tags matching the filter in insertion order.
	SearchTags(ctx context.Context, filter TagFilter) ([]*model.Tag, error)
	// UpdateTag saves a tag.
	UpdateTag(ctx context.Context, tag *model.Tag) error
	// GetRecordTag retrieves the association between a record and a tag.
	GetRecordTag(ctx context.Context, recordID, tagID uint) (*model.RecordTag, error)
	// CreateRecordTag inserts a record-tag association.
	CreateRecordTag(ctx context.Context, link *model.RecordTag) error
	// UpdateRecordTag saves a record-tag association.
	UpdateRecordTag(ctx context.Context, link *model.RecordTag) error
	// ListRecordsByTag retrieves records linked to a tag, optionally
	// including trashed associations.
	ListRecordsByTag(ctx context.Context, tagID uint, includeTrashedLinks bool) ([]*model.Record, error)
}
