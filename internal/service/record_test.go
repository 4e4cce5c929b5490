package service

import (
	"context"
	"testing"

	"github.com/emrgen/journal/internal/store"
	"github.com/emrgen/journal/internal/tester"
	"github.com/stretchr/testify/assert"
)

func TestRecordService_CreateRecord(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	records := NewRecordService(gormStore)

	journal, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)

	parent, err := records.CreateRecord(context.TODO(), journal, nil)
	assert.NoError(t, err)
	assert.Nil(t, parent.ParentID)

	child, err := records.CreateRecord(context.TODO(), journal, parent)
	assert.NoError(t, err)
	assert.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)

	// the parent must belong to the same journal
	other, err := journals.CreateJournal(context.TODO(), "Workout", true, true)
	assert.NoError(t, err)
	_, err = records.CreateRecord(context.TODO(), other, parent)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = records.CreateRecord(context.TODO(), "missing journal", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordService_SearchRecords(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	records := NewRecordService(gormStore)

	journal, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)

	parent, err := records.CreateRecord(context.TODO(), journal, nil)
	assert.NoError(t, err)
	_, err = records.CreateRecord(context.TODO(), journal, parent)
	assert.NoError(t, err)
	loose, err := records.CreateRecord(context.TODO(), journal, nil)
	assert.NoError(t, err)

	found, err := records.SearchRecords(context.TODO(), journal, RecordSearch{})
	assert.NoError(t, err)
	assert.Len(t, found, 3)

	found, err = records.SearchRecords(context.TODO(), journal, RecordSearch{Parent: parent})
	assert.NoError(t, err)
	assert.Len(t, found, 1)

	// trash one record, then filter on trash state
	_, err = records.UpdateRecord(context.TODO(), loose.ID, RecordUpdate{Trash: boolPtr(true)})
	assert.NoError(t, err)

	found, err = records.SearchRecords(context.TODO(), journal, RecordSearch{Trash: boolPtr(false)})
	assert.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = records.SearchRecords(context.TODO(), journal, RecordSearch{Trash: boolPtr(true)})
	assert.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, loose.ID, found[0].ID)
}

func TestRecordService_UpdateRecord(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	records := NewRecordService(gormStore)

	journal, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)

	first, err := records.CreateRecord(context.TODO(), journal, nil)
	assert.NoError(t, err)
	second, err := records.CreateRecord(context.TODO(), journal, nil)
	assert.NoError(t, err)

	moved, err := records.UpdateRecord(context.TODO(), second.ID, RecordUpdate{Parent: first})
	assert.NoError(t, err)
	assert.Equal(t, first.ID, *moved.ParentID)

	// a record cannot parent itself
	_, err = records.UpdateRecord(context.TODO(), first.ID, RecordUpdate{Parent: first.ID})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	trashed, err := records.UpdateRecord(context.TODO(), first.ID, RecordUpdate{Trash: boolPtr(true)})
	assert.NoError(t, err)
	assert.True(t, trashed.Trash)

	restored, err := records.UpdateRecord(context.TODO(), first.ID, RecordUpdate{Trash: boolPtr(false)})
	assert.NoError(t, err)
	assert.False(t, restored.Trash)
}
