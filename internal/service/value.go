package service

import (
	"fmt"
	"math"
	"time"

	"github.com/emrgen/journal/internal/fieldtype"
	"github.com/emrgen/journal/internal/model"
)

// setValue type-checks value against the field's kind and writes it
// into the content row's matching typed column. The discriminant is the
// field's kind alone; nothing about the type is stored redundantly.
func setValue(field *model.Field, content *model.Content, value any) error {
	switch field.Fieldtype {
	case fieldtype.Integer:
		n, ok := asInt(value)
		if !ok {
			return fmt.Errorf("field '%s' expects an integral value, got %T (%v): %w", field.Fieldname, value, value, ErrInvalidArgument)
		}
		content.IntegerValue = &n

	case fieldtype.Float:
		x, ok := asFloat(value)
		if !ok {
			return fmt.Errorf("field '%s' expects a float value, got %T: %w", field.Fieldname, value, ErrInvalidArgument)
		}
		content.FloatValue = &x

	case fieldtype.String, fieldtype.Text, fieldtype.Tag:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field '%s' expects a string value, got %T: %w", field.Fieldname, value, ErrInvalidArgument)
		}
		if field.Length != nil && *field.Length != fieldtype.UnlimitedLength && len([]rune(s)) > *field.Length {
			return fmt.Errorf("field '%s' allows at most %d characters, got %d: %w", field.Fieldname, *field.Length, len([]rune(s)), ErrInvalidArgument)
		}
		content.StringValue = &s

	case fieldtype.Timestamp:
		t, ok := value.(time.Time)
		if !ok {
			return fmt.Errorf("field '%s' expects a timestamp value, got %T: %w", field.Fieldname, value, ErrInvalidArgument)
		}
		resolution := fieldtype.DefaultResolution
		if field.Resolution != nil {
			resolution = *field.Resolution
		}
		truncated := truncateTimestamp(t, resolution)
		content.TimestampValue = &truncated

	case fieldtype.Duration:
		d, ok := value.(time.Duration)
		if !ok {
			return fmt.Errorf("field '%s' expects a duration value, got %T: %w", field.Fieldname, value, ErrInvalidArgument)
		}
		if d < 0 {
			return fmt.Errorf("field '%s' expects a non-negative duration, got %v: %w", field.Fieldname, d, ErrInvalidArgument)
		}
		ns := int64(d)
		content.DurationValue = &ns

	case fieldtype.Group:
		return fmt.Errorf("field '%s' is a group and holds no content of its own: %w", field.Fieldname, ErrInvalidArgument)

	default:
		return fmt.Errorf("field '%s' has unsupported content type '%s': %w", field.Fieldname, field.Fieldtype, ErrInvalidArgument)
	}

	return nil
}

// Value reads a content row back as the Go value matching the field's
// kind. Group rows, which carry no value, return nil.
func Value(field *model.Field, content *model.Content) (any, error) {
	switch field.Fieldtype {
	case fieldtype.Integer:
		if content.IntegerValue == nil {
			return nil, fmt.Errorf("content %d of field '%s' holds no integer: %w", content.ID, field.Fieldname, ErrInvalidArgument)
		}
		return *content.IntegerValue, nil
	case fieldtype.Float:
		if content.FloatValue == nil {
			return nil, fmt.Errorf("content %d of field '%s' holds no float: %w", content.ID, field.Fieldname, ErrInvalidArgument)
		}
		return *content.FloatValue, nil
	case fieldtype.String, fieldtype.Text, fieldtype.Tag:
		if content.StringValue == nil {
			return nil, fmt.Errorf("content %d of field '%s' holds no string: %w", content.ID, field.Fieldname, ErrInvalidArgument)
		}
		return *content.StringValue, nil
	case fieldtype.Timestamp:
		if content.TimestampValue == nil {
			return nil, fmt.Errorf("content %d of field '%s' holds no timestamp: %w", content.ID, field.Fieldname, ErrInvalidArgument)
		}
		return *content.TimestampValue, nil
	case fieldtype.Duration:
		if content.DurationValue == nil {
			return nil, fmt.Errorf("content %d of field '%s' holds no duration: %w", content.ID, field.Fieldname, ErrInvalidArgument)
		}
		return time.Duration(*content.DurationValue), nil
	case fieldtype.Group:
		return nil, nil
	default:
		return nil, fmt.Errorf("field '%s' has unsupported content type '%s': %w", field.Fieldname, field.Fieldtype, ErrInvalidArgument)
	}
}

func asInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		// JSON numbers decode as float64; only integral ones qualify.
		if v == math.Trunc(v) {
			return int64(v), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// truncateTimestamp drops the parts of t below the field's resolution.
func truncateTimestamp(t time.Time, r fieldtype.Resolution) time.Time {
	switch r {
	case fieldtype.Year:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	case fieldtype.Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case fieldtype.Day:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case fieldtype.Hour:
		return t.Truncate(time.Hour)
	case fieldtype.Minute:
		return t.Truncate(time.Minute)
	case fieldtype.Second:
		return t.Truncate(time.Second)
	case fieldtype.Millisecond:
		return t.Truncate(time.Millisecond)
	default:
		return t
	}
}
