package fieldtype

import (
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Kind is the type of a journal field.
type Kind string

const (
	Integer   Kind = "integer"
	Float     Kind = "float"
	String    Kind = "string"
	Text      Kind = "text"
	Tag       Kind = "tag"
	Timestamp Kind = "timestamp"
	Duration  Kind = "duration"

	// compound kinds expand into child fields at creation time
	Group      Kind = "group"
	Session    Kind = "session"
	Attachment Kind = "attachment"
)

// Resolution is the smallest unit of time tracked for a time-like field.
type Resolution string

const (
	Year        Resolution = "year"
	Month       Resolution = "month"
	Day         Resolution = "day"
	Hour        Resolution = "hour"
	Minute      Resolution = "minute"
	Second      Resolution = "second"
	Millisecond Resolution = "millisecond"
)

const (
	// UnlimitedLength marks a string-like field without a length limit.
	UnlimitedLength = -1
	// DefaultResolution applies to time-like fields created without one.
	DefaultResolution = Second
)

var (
	ErrUnknownFieldType  = errors.New("unknown field type")
	ErrUnknownResolution = errors.New("unknown time resolution")
)

var (
	timeKinds   = mapset.NewSet(Timestamp, Duration)
	stringKinds = mapset.NewSet(String, Text, Tag)
	numberKinds = mapset.NewSet(Integer, Float)

	primitiveKinds = timeKinds.Union(stringKinds).Union(numberKinds)
	compoundKinds  = mapset.NewSet(Group, Session, Attachment)
	allKinds       = primitiveKinds.Union(compoundKinds)

	resolutions = mapset.NewSet(Year, Month, Day, Hour, Minute, Second, Millisecond)
)

// Known reports whether k belongs to the catalog.
func Known(k Kind) bool {
	return allKinds.Contains(k)
}

// Primitive reports whether k stores content directly.
func Primitive(k Kind) bool {
	return primitiveKinds.Contains(k)
}

// Compound reports whether k expands into child fields.
func Compound(k Kind) bool {
	return compoundKinds.Contains(k)
}

// StringKind reports whether k carries a length attribute.
func StringKind(k Kind) bool {
	return stringKinds.Contains(k)
}

// TimeKind reports whether k carries a resolution attribute.
func TimeKind(k Kind) bool {
	return timeKinds.Contains(k)
}

// NumberKind reports whether k stores numeric content.
func NumberKind(k Kind) bool {
	return numberKinds.Contains(k)
}

// ParseKind converts s into a catalog Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !Known(k) {
		return "", fmt.Errorf("'%s': %w", s, ErrUnknownFieldType)
	}
	return k, nil
}

// ParseResolution converts s into a catalog Resolution.
func ParseResolution(s string) (Resolution, error) {
	r := Resolution(s)
	if !resolutions.Contains(r) {
		return "", fmt.Errorf("'%s': %w", s, ErrUnknownResolution)
	}
	return r, nil
}

// ValidResolution reports whether r belongs to the catalog.
func ValidResolution(r Resolution) bool {
	return resolutions.Contains(r)
}
