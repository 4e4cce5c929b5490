package fieldtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name      string
		kind      string
		primitive bool
		compound  bool
		wantErr   bool
	}{
		{name: "integer", kind: "integer", primitive: true},
		{name: "float", kind: "float", primitive: true},
		{name: "string", kind: "string", primitive: true},
		{name: "text", kind: "text", primitive: true},
		{name: "tag", kind: "tag", primitive: true},
		{name: "timestamp", kind: "timestamp", primitive: true},
		{name: "duration", kind: "duration", primitive: true},
		{name: "group", kind: "group", compound: true},
		{name: "session", kind: "session", compound: true},
		{name: "attachment", kind: "attachment", compound: true},
		{name: "unknown", kind: "blob", wantErr: true},
		{name: "empty", kind: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ParseKind(tt.kind)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFieldType)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.primitive, Primitive(kind))
			assert.Equal(t, tt.compound, Compound(kind))
		})
	}
}

func TestParseResolution(t *testing.T) {
	for _, valid := range []string{"year", "month", "day", "hour", "minute", "second", "millisecond"} {
		r, err := ParseResolution(valid)
		assert.NoError(t, err)
		assert.True(t, ValidResolution(r))
	}

	_, err := ParseResolution("fortnight")
	assert.ErrorIs(t, err, ErrUnknownResolution)
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, StringKind(String))
	assert.True(t, StringKind(Text))
	assert.True(t, StringKind(Tag))
	assert.True(t, TimeKind(Timestamp))
	assert.True(t, TimeKind(Duration))
	assert.True(t, NumberKind(Integer))
	assert.True(t, NumberKind(Float))

	assert.False(t, StringKind(Integer))
	assert.False(t, TimeKind(String))
	assert.False(t, Primitive(Group))
	assert.False(t, Known(Kind("meta")))
}

func TestSessionTemplates(t *testing.T) {
	full := SessionTemplates(DefaultSessionOptions())
	assert.Len(t, full, 3)
	assert.Equal(t, Timestamp, full[0].Kind)
	assert.Equal(t, Timestamp, full[1].Kind)
	assert.Equal(t, Duration, full[2].Kind)
	for _, tmpl := range full {
		assert.Equal(t, Second, tmpl.Resolution)
		assert.True(t, tmpl.Visible)
	}

	noDuration := SessionTemplates(SessionOptions{Start: true, End: true, Resolution: Minute})
	assert.Len(t, noDuration, 2)
	assert.Equal(t, "start", noDuration[0].Suffix)
	assert.Equal(t, "end", noDuration[1].Suffix)
	assert.Equal(t, Minute, noDuration[0].Resolution)
}

func TestAttachmentTemplates(t *testing.T) {
	templates := AttachmentTemplates()
	assert.Len(t, templates, 2)

	assert.Equal(t, "filename", templates[0].Suffix)
	assert.Equal(t, String, templates[0].Kind)
	assert.True(t, templates[0].Visible)
	assert.Equal(t, UnlimitedLength, templates[0].Length)

	assert.Equal(t, "uuid", templates[1].Suffix)
	assert.Equal(t, String, templates[1].Kind)
	assert.False(t, templates[1].Visible)
}
