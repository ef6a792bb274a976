// Package session wires the mapping store, the selection resolver, the
// synthesizer, and the session record list into one service. All selection
// and synthesis state is process-local; only the override document and export
// artifacts outlive the process.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"clogen/internal/mapping"
	"clogen/internal/resolve"
	"clogen/internal/synth"
	"clogen/pkg/domain"
)

// Service owns one editing session: the merged mapping store, the selection
// cursor, and the generated record list.
type Service struct {
	mu        sync.Mutex
	loader    *mapping.Loader
	overrides domain.OverrideStore
	metrics   MetricsRecorder

	base       domain.MappingDocument
	baseLoaded bool
	store      *mapping.Store
	resolver   *resolve.Resolver
	synth      *synth.Synthesizer
	records    []domain.GeneratedRecord
	warnings   []string
}

// NewService constructs a session over the loader and override store. The
// store starts unavailable; call Reload to populate it. A nil metrics
// recorder disables observation.
func NewService(loader *mapping.Loader, overrides domain.OverrideStore, metrics MetricsRecorder) *Service {
	if metrics == nil {
		metrics = NoopMetricsRecorder{}
	}
	store := mapping.Unavailable()
	return &Service{
		loader:    loader,
		overrides: overrides,
		metrics:   metrics,
		store:     store,
		resolver:  resolve.New(store),
		synth:     synth.New(store),
	}
}

// Reload fetches the base document, merges the persisted override, and swaps
// the merged store in. A failed base fetch leaves the store unavailable. A
// malformed persisted override falls back to the base document and is
// surfaced as a warning rather than an error.
func (s *Service) Reload(ctx context.Context) (warnings []string, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe(ctx, "reload", err == nil, time.Since(start)) }()

	base, err := s.loader.Load(ctx)
	if err != nil {
		s.mu.Lock()
		s.baseLoaded = false
		s.swapStoreLocked(mapping.Unavailable())
		s.warnings = nil
		s.mu.Unlock()
		return nil, err
	}

	var warned []string
	var override *domain.OverrideDocument
	if s.overrides != nil {
		doc, present, loadErr := s.overrides.Load(ctx)
		switch {
		case loadErr == nil && present:
			override = &doc
		case loadErr != nil:
			var parseErr domain.OverrideParseError
			if errors.As(loadErr, &parseErr) {
				warned = append(warned, fmt.Sprintf("stored override ignored: %v", loadErr))
			} else {
				return nil, fmt.Errorf("load override: %w", loadErr)
			}
		}
	}

	merged := mapping.Merge(base, override)

	s.mu.Lock()
	s.base = base.Clone()
	s.baseLoaded = true
	s.swapStoreLocked(mapping.NewStore(merged))
	s.warnings = warned
	s.mu.Unlock()
	return append([]string(nil), warned...), nil
}

// SaveOverride persists a new override document and re-merges it against the
// already loaded base without refetching.
func (s *Service) SaveOverride(ctx context.Context, doc domain.OverrideDocument) (err error) {
	start := time.Now()
	defer func() { s.metrics.Observe(ctx, "save_override", err == nil, time.Since(start)) }()

	if s.overrides == nil {
		return fmt.Errorf("no override store configured")
	}
	if err := s.overrides.Save(ctx, doc); err != nil {
		return fmt.Errorf("save override: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.baseLoaded {
		return nil
	}
	merged := mapping.Merge(s.base, &doc)
	s.swapStoreLocked(mapping.NewStore(merged))
	s.warnings = nil
	return nil
}

func (s *Service) swapStoreLocked(store *mapping.Store) {
	s.store = store
	s.resolver.ReplaceStore(store)
	s.synth = synth.New(store)
}

// Available reports whether a mapping document is loaded.
func (s *Service) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Available()
}

// Warnings returns warnings surfaced by the last reload.
func (s *Service) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// Document returns a copy of the merged mapping document.
func (s *Service) Document() domain.MappingDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Document()
}

// Selection returns a copy of the current selection cursor.
func (s *Service) Selection() domain.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.Selection()
}

// StatementTexts resolves level-scoped display text for the selection.
func (s *Service) StatementTexts() resolve.ResolvedTexts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.StatementTexts()
}

// Attributes returns the static attribute catalogue.
func (s *Service) Attributes() []domain.Attribute {
	return mapping.Attributes()
}

// SetLevel re-scopes statement text without clearing the selection.
func (s *Service) SetLevel(level domain.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver.SetLevel(level)
}

// SetTaxonomyDomain switches the Bloom taxonomy domain.
func (s *Service) SetTaxonomyDomain(d domain.TaxonomyDomain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver.SetTaxonomyDomain(d)
}

// SetAttribute selects an attribute and returns its objective candidates.
func (s *Service) SetAttribute(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.SetAttribute(id)
}

// SetObjective selects an objective and returns its outcome candidates, all
// of which start selected.
func (s *Service) SetObjective(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.SetObjective(id)
}

// SetOutcomes narrows the selected outcome set and returns what survived.
func (s *Service) SetOutcomes(ids []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.SetOutcomes(ids)
}

// SetBloomLevel selects a Bloom level and returns its verb candidates.
func (s *Service) SetBloomLevel(name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.SetBloomLevel(name)
}

// SetVerb records an explicit verb override.
func (s *Service) SetVerb(verb string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver.SetVerb(verb)
}

// SetAssessmentMethods records operator-chosen assessment methods.
func (s *Service) SetAssessmentMethods(methods []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver.SetAssessmentMethods(methods)
}

// Synthesize builds a record for the course label from the current selection
// and appends it to the session list.
func (s *Service) Synthesize(ctx context.Context, courseLabel string) (record domain.GeneratedRecord, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe(ctx, "synthesize", err == nil, time.Since(start)) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	record, err = s.synth.Synthesize(s.resolver.Selection(), courseLabel)
	if err != nil {
		return domain.GeneratedRecord{}, err
	}
	s.records = append(s.records, record)
	return record.Clone(), nil
}

// SynthesizeBulk builds one record per course label against the frozen
// current selection and appends them all. Nothing is appended on error.
func (s *Service) SynthesizeBulk(ctx context.Context, courseLabels []string) (records []domain.GeneratedRecord, err error) {
	start := time.Now()
	defer func() { s.metrics.Observe(ctx, "synthesize_bulk", err == nil, time.Since(start)) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	records, err = s.synth.SynthesizeBulk(s.resolver.Selection(), courseLabels)
	if err != nil {
		return nil, err
	}
	s.records = append(s.records, records...)
	out := make([]domain.GeneratedRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out, nil
}

// Records returns a copy of the session record list in insertion order.
func (s *Service) Records() []domain.GeneratedRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.GeneratedRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// DeleteRecord removes the record at the zero-based index. Remaining records
// keep their order; export renumbering happens at render time.
func (s *Service) DeleteRecord(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("record index %d out of range", index)
	}
	s.records = append(s.records[:index], s.records[index+1:]...)
	return nil
}

// ClearRecords empties the session record list.
func (s *Service) ClearRecords() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}
