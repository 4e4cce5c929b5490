package service

import (
	"context"

	"github.com/emrgen/journal/internal/model"
	"github.com/emrgen/journal/internal/store"
)

// NewSearchService creates a new SearchService.
func NewSearchService(store store.Store) *SearchService {
	return &SearchService{
		store: store,
	}
}

// SearchService composes the schema and content search primitives. It
// adds no invariants of its own: filters combine with logical AND and
// results come back in insertion order.
type SearchService struct {
	store store.Store
}

// Journals searches journals by attribute and partial name.
func (s *SearchService) Journals(ctx context.Context, filter store.JournalFilter) ([]*model.Journal, error) {
	journals, err := s.store.SearchJournals(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	return journals, nil
}

// Fields searches one journal's fields by attribute and partial name.
func (s *SearchService) Fields(ctx context.Context, journal any, search FieldSearch) ([]*model.Field, error) {
	return NewFieldService(s.store).SearchFields(ctx, journal, search)
}

// Records searches one journal's records.
func (s *SearchService) Records(ctx context.Context, journal any, search RecordSearch) ([]*model.Record, error) {
	return NewRecordService(s.store).SearchRecords(ctx, journal, search)
}

// RecordsByTag returns the records a tag is attached to, joined through
// the record-tag association. The association's trash state filters
// independently of the tag's own: a live tag may have trashed links and
// the other way around.
func (s *SearchService) RecordsByTag(ctx context.Context, journal any, tag any, includeTrashedLinks bool) ([]*model.Record, error) {
	scope, err := resolveJournal(ctx, s.store, journal)
	if err != nil {
		return nil, err
	}

	tg, err := resolveTag(ctx, s.store, tag, scope)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListRecordsByTag(ctx, tg.ID, includeTrashedLinks)
	if err != nil {
		return nil, storeErr(err)
	}
	return records, nil
}
