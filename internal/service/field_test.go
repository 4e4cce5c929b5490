package service

import (
	"context"
	"testing"

	"github.com/emrgen/journal/internal/fieldtype"
	"github.com/emrgen/journal/internal/store"
	"github.com/emrgen/journal/internal/tester"
	"github.com/stretchr/testify/assert"
)

func TestFieldService_CreatePrimitiveField(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	fields := NewFieldService(gormStore)

	journal, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)

	field, err := fields.CreatePrimitiveField(context.TODO(), journal, "mood", fieldtype.Integer, "Mood", DefaultPrimitiveFieldOptions())
	assert.NoError(t, err)
	assert.Equal(t, fieldtype.Integer, field.Fieldtype)
	assert.True(t, field.Visible)
	assert.False(t, field.MultipleAllowed)
	assert.Nil(t, field.Length)
	assert.Nil(t, field.Resolution)

	// string-like fields default to unlimited length
	note, err := fields.CreatePrimitiveField(context.TODO(), journal, "note", fieldtype.Text, "Note", DefaultPrimitiveFieldOptions())
	assert.NoError(t, err)
	assert.NotNil(t, note.Length)
	assert.Equal(t, fieldtype.UnlimitedLength, *note.Length)

	// time-like fields default to second resolution
	woke, err := fields.CreatePrimitiveField(context.TODO(), journal, "woke_at", fieldtype.Timestamp, "Woke At", DefaultPrimitiveFieldOptions())
	assert.NoError(t, err)
	assert.NotNil(t, woke.Resolution)
	assert.Equal(t, fieldtype.Second, *woke.Resolution)
}

func TestFieldService_CreatePrimitiveField_Validation(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	fields := NewFieldService(gormStore)

	journal, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)

	_, err = fields.CreatePrimitiveField(context.TODO(), journal, "mood", fieldtype.Integer, "Mood", DefaultPrimitiveFieldOptions())
	assert.NoError(t, err)

	tests := []struct {
		name        string
		fieldname   string
		kind        fieldtype.Kind
		displayname string
		opts        PrimitiveFieldOptions
		wantErr     error
	}{
		{
			name:        "duplicate fieldname",
			fieldname:   "mood",
			kind:        fieldtype.Integer,
			displayname: "Mood 2",
			opts:        DefaultPrimitiveFieldOptions(),
			wantErr:     ErrConflict,
		},
		{
			name:        "duplicate displayname",
			fieldname:   "mood2",
			kind:        fieldtype.Integer,
			displayname: "Mood",
			opts:        DefaultPrimitiveFieldOptions(),
			wantErr:     ErrConflict,
		},
		{
			name:        "compound kind through the primitive path",
			fieldname:   "sleep",
			kind:        fieldtype.Session,
			displayname: "Sleep",
			opts:        DefaultPrimitiveFieldOptions(),
			wantErr:     ErrInvalidArgument,
		},
		{
			name:        "group kind through the primitive path",
			fieldname:   "meta",
			kind:        fieldtype.Group,
			displayname: "Meta",
			opts:        DefaultPrimitiveFieldOptions(),
			wantErr:     ErrInvalidArgument,
		},
		{
			name:        "zero length",
			fieldname:   "code",
			kind:        fieldtype.String,
			displayname: "Code",
			opts:        PrimitiveFieldOptions{Visible: true, Length: intPtr(0)},
			wantErr:     ErrInvalidArgument,
		},
		{
			name:        "negative length other than -1",
			fieldname:   "code",
			kind:        fieldtype.String,
			displayname: "Code",
			opts:        PrimitiveFieldOptions{Visible: true, Length: intPtr(-5)},
			wantErr:     ErrInvalidArgument,
		},
		{
			name:        "unknown resolution",
			fieldname:   "woke_at",
			kind:        fieldtype.Timestamp,
			displayname: "Woke At",
			opts: PrimitiveFieldOptions{
				Visible:    true,
				Resolution: resolutionPtr(fieldtype.Resolution("fortnight")),
			},
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fields.CreatePrimitiveField(context.TODO(), journal, tt.fieldname, tt.kind, tt.displayname, tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFieldService_FieldnameScopedPerJournal(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	fields := NewFieldService(gormStore)

	sleep, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)
	workout, err := journals.CreateJournal(context.TODO(), "Workout", true, true)
	assert.NoError(t, err)

	_, err = fields.CreatePrimitiveField(context.TODO(), sleep, "mood", fieldtype.Integer, "Mood", DefaultPrimitiveFieldOptions())
	assert.NoError(t, err)

	// same fieldname in another journal does not conflict
	_, err = fields.CreatePrimitiveField(context.TODO(), workout, "mood", fieldtype.Integer, "Mood", DefaultPrimitiveFieldOptions())
	assert.NoError(t, err)
}

func TestFieldService_GetField(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	fields := NewFieldService(gormStore)

	journal, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)

	created, err := fields.CreatePrimitiveField(context.TODO(), journal, "mood", fieldtype.Integer, "Mood", DefaultPrimitiveFieldOptions())
	assert.NoError(t, err)

	byID, err := fields.GetField(context.TODO(), created.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, "mood", byID.Fieldname)

	byName, err := fields.GetField(context.TODO(), "mood", journal)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	// a fieldname without a journal cannot be resolved
	_, err = fields.GetField(context.TODO(), "mood", nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = fields.GetField(context.TODO(), "missing", journal)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFieldService_CreateSessionField(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	fields := NewFieldService(gormStore)

	journal, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)

	parent, err := fields.CreateSessionField(context.TODO(), journal, "sleep", "Sleep", DefaultSessionFieldOptions())
	assert.NoError(t, err)
	assert.Equal(t, fieldtype.Group, parent.Fieldtype)

	children, err := fields.SearchFields(context.TODO(), journal, FieldSearch{Group: parent})
	assert.NoError(t, err)
	assert.Len(t, children, 3)

	assert.Equal(t, "sleep_start", children[0].Fieldname)
	assert.Equal(t, fieldtype.Timestamp, children[0].Fieldtype)
	assert.Equal(t, "sleep_end", children[1].Fieldname)
	assert.Equal(t, fieldtype.Timestamp, children[1].Fieldtype)
	assert.Equal(t, "sleep_duration", children[2].Fieldname)
	assert.Equal(t, fieldtype.Duration, children[2].Fieldtype)

	for _, child := range children {
		assert.NotNil(t, child.GroupID)
		assert.Equal(t, parent.ID, *child.GroupID)
		assert.NotNil(t, child.Resolution)
		assert.Equal(t, fieldtype.Second, *child.Resolution)
	}
}

func TestFieldService_CreateSessionField_WithoutDuration(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	fields := NewFieldService(gormStore)

	journal, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)

	opts := DefaultSessionFieldOptions()
	opts.Duration = false

	parent, err := fields.CreateSessionField(context.TODO(), journal, "nap", "Nap", opts)
	assert.NoError(t, err)

	children, err := fields.SearchFields(context.TODO(), journal, FieldSearch{Group: parent})
	assert.NoError(t, err)
	assert.Len(t, children, 2)
	assert.Equal(t, "nap_start", children[0].Fieldname)
	assert.Equal(t, "nap_end", children[1].Fieldname)
}

func TestFieldService_CreateAttachmentField(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	fields := NewFieldService(gormStore)

	journal, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)

	parent, err := fields.CreateAttachmentField(context.TODO(), journal, "report", "Report", DefaultAttachmentFieldOptions())
	assert.NoError(t, err)
	assert.Equal(t, fieldtype.Group, parent.Fieldtype)
	assert.True(t, parent.MultipleAllowed)

	children, err := fields.SearchFields(context.TODO(), journal, FieldSearch{Group: parent})
	assert.NoError(t, err)
	assert.Len(t, children, 2)

	filename := children[0]
	assert.Equal(t, "report_filename", filename.Fieldname)
	assert.Equal(t, fieldtype.String, filename.Fieldtype)
	assert.True(t, filename.Visible)
	assert.NotNil(t, filename.Length)
	assert.Equal(t, fieldtype.UnlimitedLength, *filename.Length)

	uuidField := children[1]
	assert.Equal(t, "report_uuid", uuidField.Fieldname)
	assert.False(t, uuidField.Visible)
}

func TestFieldService_CreateField_Dispatch(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	fields := NewFieldService(gormStore)

	journal, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)

	mood, err := fields.CreateField(context.TODO(), journal, "mood", "integer", "Mood")
	assert.NoError(t, err)
	assert.Equal(t, fieldtype.Integer, mood.Fieldtype)

	sleep, err := fields.CreateField(context.TODO(), journal, "sleep", "session", "Sleep")
	assert.NoError(t, err)
	assert.Equal(t, fieldtype.Group, sleep.Fieldtype)

	report, err := fields.CreateField(context.TODO(), journal, "report", "attachment", "Report")
	assert.NoError(t, err)
	assert.Equal(t, fieldtype.Group, report.Fieldtype)

	// 'group' must go through a compound constructor
	_, err = fields.CreateField(context.TODO(), journal, "meta", "group", "Meta")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = fields.CreateField(context.TODO(), journal, "blob", "blob", "Blob")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFieldService_SearchFields(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	fields := NewFieldService(gormStore)

	journal, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)

	_, err = fields.CreatePrimitiveField(context.TODO(), journal, "mood", fieldtype.Integer, "Mood", DefaultPrimitiveFieldOptions())
	assert.NoError(t, err)
	_, err = fields.CreatePrimitiveField(context.TODO(), journal, "mood_note", fieldtype.Text, "Mood Note", DefaultPrimitiveFieldOptions())
	assert.NoError(t, err)
	hidden := DefaultPrimitiveFieldOptions()
	hidden.Visible = false
	_, err = fields.CreatePrimitiveField(context.TODO(), journal, "weight", fieldtype.Float, "Weight", hidden)
	assert.NoError(t, err)

	// partial fieldname match is the default
	found, err := fields.SearchFields(context.TODO(), journal, FieldSearch{Fieldname: strPtr("MOOD")})
	assert.NoError(t, err)
	assert.Len(t, found, 2)

	// exact match only finds the exact fieldname
	found, err = fields.SearchFields(context.TODO(), journal, FieldSearch{Fieldname: strPtr("mood"), Exact: true})
	assert.NoError(t, err)
	assert.Len(t, found, 1)

	// fieldtype filter must name a catalog kind
	_, err = fields.SearchFields(context.TODO(), journal, FieldSearch{Fieldtype: strPtr("blob")})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	found, err = fields.SearchFields(context.TODO(), journal, FieldSearch{Fieldtype: strPtr("float")})
	assert.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "weight", found[0].Fieldname)

	found, err = fields.SearchFields(context.TODO(), journal, FieldSearch{Visible: boolPtr(false)})
	assert.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "weight", found[0].Fieldname)
}

func TestFieldService_UpdateField(t *testing.T) {
	tester.Setup()

	gormStore := store.NewGormStore(tester.TestDB())
	journals := NewJournalService(gormStore, nil)
	fields := NewFieldService(gormStore)

	journal, err := journals.CreateJournal(context.TODO(), "Sleep Log", true, true)
	assert.NoError(t, err)

	field, err := fields.CreatePrimitiveField(context.TODO(), journal, "mood", fieldtype.Integer, "Mood", DefaultPrimitiveFieldOptions())
	assert.NoError(t, err)
	_, err = fields.CreatePrimitiveField(context.TODO(), journal, "note", fieldtype.Text, "Note", DefaultPrimitiveFieldOptions())
	assert.NoError(t, err)

	// rename onto an existing fieldname is a conflict
	_, err = fields.UpdateField(context.TODO(), field.ID, nil, FieldUpdate{Fieldname: strPtr("note")})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = fields.UpdateField(context.TODO(), field.ID, nil, FieldUpdate{Displayname: strPtr("Note")})
	assert.ErrorIs(t, err, ErrConflict)

	// trash and restore
	updated, err := fields.UpdateField(context.TODO(), field.ID, nil, FieldUpdate{Trash: boolPtr(true)})
	assert.NoError(t, err)
	assert.True(t, updated.Trash)

	updated, err = fields.UpdateField(context.TODO(), "mood", journal, FieldUpdate{Trash: boolPtr(false)})
	assert.NoError(t, err)
	assert.False(t, updated.Trash)
}

func resolutionPtr(r fieldtype.Resolution) *fieldtype.Resolution { return &r }
