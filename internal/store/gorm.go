package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/emrgen/journal/internal/model"
	"gorm.io/gorm"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

// translate maps gorm errors onto the store sentinels. The database is
// opened with TranslateError so both sqlite and postgres constraint
// violations surface as gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", ErrDuplicate, err)
	default:
		return err
	}
}

func (g *GormStore) CreateJournal(ctx context.Context, journal *model.Journal) error {
	return translate(g.db.WithContext(ctx).Create(journal).Error)
}

func (g *GormStore) GetJournalByID(ctx context.Context, id uint) (*model.Journal, error) {
	var journal model.Journal
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&journal).Error
	if err != nil {
		return nil, translate(err)
	}
	return &journal, nil
}

func (g *GormStore) GetJournalByName(ctx context.Context, name string) (*model.Journal, error) {
	var journal model.Journal
	err := g.db.WithContext(ctx).Where("name = ?", name).First(&journal).Error
	if err != nil {
		return nil, translate(err)
	}
	return &journal, nil
}

func (g *GormStore) SearchJournals(ctx context.Context, filter JournalFilter) ([]*model.Journal, error) {
	tx := g.db.WithContext(ctx).Model(&model.Journal{})
	if filter.Name != nil {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+lower(*filter.Name)+"%")
	}
	if filter.Enabled != nil {
		tx = tx.Where("enabled = ?", *filter.Enabled)
	}
	if filter.Visible != nil {
		tx = tx.Where("visible = ?", *filter.Visible)
	}
	if filter.Trash != nil {
		tx = tx.Where("trash = ?", *filter.Trash)
	}

	var journals []*model.Journal
	err := tx.Order("id").Find(&journals).Error
	return journals, translate(err)
}

func (g *GormStore) UpdateJournal(ctx context.Context, journal *model.Journal) error {
	return translate(g.db.WithContext(ctx).Save(journal).Error)
}

func (g *GormStore) DeleteJournal(ctx context.Context, id uint) error {
	return translate(g.db.WithContext(ctx).Delete(&model.Journal{}, id).Error)
}

func (g *GormStore) CreateField(ctx context.Context, field *model.Field) error {
	return translate(g.db.WithContext(ctx).Create(field).Error)
}

func (g *GormStore) CreateFields(ctx context.Context, fields []*model.Field) error {
	return translate(g.db.WithContext(ctx).Create(fields).Error)
}

func (g *GormStore) GetFieldByID(ctx context.Context, id uint) (*model.Field, error) {
	var field model.Field
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&field).Error
	if err != nil {
		return nil, translate(err)
	}
	return &field, nil
}

func (g *GormStore) GetFieldByName(ctx context.Context, journalID uint, fieldname string) (*model.Field, error) {
	var field model.Field
	err := g.db.WithContext(ctx).
		Where("journal_id = ? AND fieldname = ?", journalID, fieldname).
		First(&field).Error
	if err != nil {
		return nil, translate(err)
	}
	return &field, nil
}

func (g *GormStore) SearchFields(ctx context.Context, filter FieldFilter) ([]*model.Field, error) {
	tx := g.db.WithContext(ctx).Model(&model.Field{}).Where("journal_id = ?", filter.JournalID)
	if filter.Fieldname != nil {
		tx = matchName(tx, "fieldname", *filter.Fieldname, filter.Partial)
	}
	if filter.Displayname != nil {
		tx = matchName(tx, "displayname", *filter.Displayname, filter.Partial)
	}
	if filter.Fieldtype != nil {
		tx = tx.Where("fieldtype = ?", *filter.Fieldtype)
	}
	if filter.GroupID != nil {
		tx = tx.Where("group_id = ?", *filter.GroupID)
	}
	if filter.Visible != nil {
		tx = tx.Where("visible = ?", *filter.Visible)
	}
	if filter.MultipleAllowed != nil {
		tx = tx.Where("multiple_allowed = ?", *filter.MultipleAllowed)
	}
	if filter.Trash != nil {
		tx = tx.Where("trash = ?", *filter.Trash)
	}

	var fields []*model.Field
	err := tx.Order("id").Find(&fields).Error
	return fields, translate(err)
}

func (g *GormStore) UpdateField(ctx context.Context, field *model.Field) error {
	return translate(g.db.WithContext(ctx).Save(field).Error)
}

func (g *GormStore) CreateRecord(ctx context.Context, record *model.Record) error {
	return translate(g.db.WithContext(ctx).Create(record).Error)
}

func (g *GormStore) GetRecord(ctx context.Context, id uint) (*model.Record, error) {
	var record model.Record
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (g *GormStore) SearchRecords(ctx context.Context, filter RecordFilter) ([]*model.Record, error) {
	tx := g.db.WithContext(ctx).Model(&model.Record{}).Where("journal_id = ?", filter.JournalID)
	if filter.ParentID != nil {
		tx = tx.Where("parent_id = ?", *filter.ParentID)
	}
	if filter.Trash != nil {
		tx = tx.Where("trash = ?", *filter.Trash)
	}

	var records []*model.Record
	err := tx.Order("id").Find(&records).Error
	return records, translate(err)
}

func (g *GormStore) UpdateRecord(ctx context.Context, record *model.Record) error {
	return translate(g.db.WithContext(ctx).Save(record).Error)
}

func (g *GormStore) CreateContent(ctx context.Context, content *model.Content) error {
	return translate(g.db.WithContext(ctx).Create(content).Error)
}

func (g *GormStore) GetContent(ctx context.Context, id uint) (*model.Content, error) {
	var content model.Content
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&content).Error
	if err != nil {
		return nil, translate(err)
	}
	return &content, nil
}

func (g *GormStore) ListRecordContent(ctx context.Context, recordID uint) ([]*model.Content, error) {
	var contents []*model.Content
	err := g.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("id").
		Find(&contents).Error
	return contents, translate(err)
}

func (g *GormStore) ListFieldRecordContent(ctx context.Context, fieldID, recordID uint) ([]*model.Content, error) {
	var contents []*model.Content
	err := g.db.WithContext(ctx).
		Where("field_id = ? AND record_id = ?", fieldID, recordID).
		Order("id").
		Find(&contents).Error
	return contents, translate(err)
}

func (g *GormStore) CountFieldRecordContent(ctx context.Context, fieldID, recordID uint) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Content{}).
		Where("field_id = ? AND record_id = ? AND trash = ?", fieldID, recordID, false).
		Count(&count).Error
	return count, translate(err)
}

func (g *GormStore) UpdateContent(ctx context.Context, content *model.Content) error {
	return translate(g.db.WithContext(ctx).Save(content).Error)
}

func (g *GormStore) CreateTag(ctx context.Context, tag *model.Tag) error {
	return translate(g.db.WithContext(ctx).Create(tag).Error)
}

func (g *GormStore) GetTagByID(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error
	if err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (g *GormStore) GetTagByName(ctx context.Context, journalID uint, name string) (*model.Tag, error) {
	var tag model.Tag
	err := g.db.WithContext(ctx).
		Where("journal_id = ? AND name = ?", journalID, name).
		First(&tag).Error
	if err != nil {
		return nil, translate(err)
	}
	return &tag, nil
}

func (g *GormStore) SearchTags(ctx context.Context, filter TagFilter) ([]*model.Tag, error) {
	tx := g.db.WithContext(ctx).Model(&model.Tag{}).Where("journal_id = ?", filter.JournalID)
	if filter.Name != nil {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+lower(*filter.Name)+"%")
	}
	if filter.Trash != nil {
		tx = tx.Where("trash = ?", *filter.Trash)
	}

	var tags []*model.Tag
	err := tx.Order("id").Find(&tags).Error
	return tags, translate(err)
}

func (g *GormStore) UpdateTag(ctx context.Context, tag *model.Tag) error {
	return translate(g.db.WithContext(ctx).Save(tag).Error)
}

func (g *GormStore) GetRecordTag(ctx context.Context, recordID, tagID uint) (*model.RecordTag, error) {
	var link model.RecordTag
	err := g.db.WithContext(ctx).
		Where("record_id = ? AND tag_id = ?", recordID, tagID).
		First(&link).Error
	if err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

func (g *GormStore) CreateRecordTag(ctx context.Context, link *model.RecordTag) error {
	return translate(g.db.WithContext(ctx).Create(link).Error)
}

func (g *GormStore) UpdateRecordTag(ctx context.Context, link *model.RecordTag) error {
	return translate(g.db.WithContext(ctx).Save(link).Error)
}

func (g *GormStore) ListRecordsByTag(ctx context.Context, tagID uint, includeTrashedLinks bool) ([]*model.Record, error) {
	tx := g.db.WithContext(ctx).Model(&model.Record{}).
		Joins("JOIN record_tags ON record_tags.record_id = records.id").
		Where("record_tags.tag_id = ?", tagID)
	if !includeTrashedLinks {
		tx = tx.Where("record_tags.trash = ?", false)
	}

	var records []*model.Record
	err := tx.Order("records.id").Find(&records).Error
	return records, translate(err)
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
