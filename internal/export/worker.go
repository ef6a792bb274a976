package export

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"clogen/pkg/domain"
)

// Status describes the lifecycle stage of an export request.
type Status string

// Export request statuses.
const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Artifact captures one stored export artifact.
type Artifact struct {
	Key         string         `json:"key"`
	Format      Format         `json:"format"`
	ContentType string         `json:"content_type"`
	SizeBytes   int64          `json:"size_bytes"`
	URL         string         `json:"url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Record tracks an export request and its resulting artifacts.
type Record struct {
	ID          string     `json:"id"`
	Formats     []Format   `json:"formats"`
	Status      Status     `json:"status"`
	Error       string     `json:"error,omitempty"`
	Artifacts   []Artifact `json:"artifacts,omitempty"`
	RequestedBy string     `json:"requested_by,omitempty"`
	RecordCount int        `json:"record_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Input represents an enqueue request for the worker.
type Input struct {
	Formats     []Format
	RequestedBy string
}

// Scheduler queues export requests and exposes status.
type Scheduler interface {
	Enqueue(ctx context.Context, input Input) (Record, error)
	Get(id string) (Record, bool)
}

// RecordSource supplies the session record list at render time.
type RecordSource interface {
	Records() []domain.GeneratedRecord
}

// ObjectStore persists rendered artifacts.
type ObjectStore interface {
	// Put stores a new immutable object; implementations SHOULD fail if the
	// key already exists.
	Put(ctx context.Context, key string, payload []byte, contentType string, metadata map[string]any) (Artifact, error)
	// Get returns artifact metadata and payload bytes.
	Get(ctx context.Context, key string) (Artifact, []byte, error)
	// List returns artifacts whose keys start with prefix, key ascending.
	List(ctx context.Context, prefix string) ([]Artifact, error)
}

// AuditLogger records export audit entries.
type AuditLogger interface {
	Record(ctx context.Context, entry AuditEntry)
}

// AuditEntry captures audit trail metadata for exports.
type AuditEntry struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	Actor      string         `json:"actor,omitempty"`
	Status     Status         `json:"status"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Worker renders export artifacts asynchronously. Synthesis and selection
// remain single-threaded; only artifact rendering happens off the request
// path.
type Worker struct {
	source RecordSource
	store  ObjectStore
	audit  AuditLogger

	queue chan exportTask
	mu    sync.RWMutex
	jobs  map[string]*Record

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type exportTask struct {
	id      string
	records []domain.GeneratedRecord
}

var _ Scheduler = (*Worker)(nil)

// NewWorker constructs an export worker over the given record source and
// object store. The audit logger may be nil.
func NewWorker(source RecordSource, store ObjectStore, audit AuditLogger) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		source: source,
		store:  store,
		audit:  audit,
		queue:  make(chan exportTask, 16),
		jobs:   make(map[string]*Record),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins processing export requests.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop signals the worker to halt and waits for completion.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case task := <-w.queue:
			w.process(task)
		}
	}
}

// Enqueue schedules an export of the current session record list and returns
// the queued record. Exporting an empty list is refused with
// domain.ErrNoRecords before anything is written; the caller surfaces the
// notice to the user.
func (w *Worker) Enqueue(ctx context.Context, input Input) (Record, error) {
	records := w.source.Records()
	if len(records) == 0 {
		return Record{}, domain.ErrNoRecords
	}

	formats := input.Formats
	if len(formats) == 0 {
		formats = Formats()
	}
	uniq := make([]Format, 0, len(formats))
	seen := make(map[Format]struct{})
	for _, format := range formats {
		if _, dup := seen[format]; dup {
			continue
		}
		if format != FormatCSV && format != FormatJSON {
			return Record{}, fmt.Errorf("unsupported export format %s", format)
		}
		uniq = append(uniq, format)
		seen[format] = struct{}{}
	}

	id := newID()
	now := time.Now().UTC()
	record := Record{
		ID:          id,
		Formats:     uniq,
		Status:      StatusQueued,
		RequestedBy: input.RequestedBy,
		RecordCount: len(records),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	w.mu.Lock()
	w.jobs[id] = &record
	queued := record.copy()
	w.mu.Unlock()

	w.recordAudit(ctx, input.RequestedBy, StatusQueued, map[string]any{"records": len(records)})

	select {
	case w.queue <- exportTask{id: id, records: records}:
	default:
		return Record{}, fmt.Errorf("export queue full")
	}
	return queued, nil
}

// Get returns a snapshot of the export record.
func (w *Worker) Get(id string) (Record, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	record, ok := w.jobs[id]
	if !ok {
		return Record{}, false
	}
	return record.copy(), true
}

func (w *Worker) process(task exportTask) {
	w.updateStatus(task.id, StatusRunning, "")

	formats := w.formatsFor(task.id)
	now := time.Now().UTC()
	artifacts := make([]Artifact, 0, len(formats))
	for _, format := range formats {
		payload, err := render(format, task.records)
		if err != nil {
			w.fail(task.id, err.Error())
			return
		}
		key := fmt.Sprintf("exports/%s/%s", task.id, Filename(format, now))
		stored, err := w.store.Put(w.ctx, key, payload, ContentType(format), map[string]any{
			"records": len(task.records),
		})
		if err != nil {
			w.fail(task.id, fmt.Sprintf("store artifact: %v", err))
			return
		}
		stored.Format = format
		if stored.ContentType == "" {
			stored.ContentType = ContentType(format)
		}
		if stored.SizeBytes == 0 {
			stored.SizeBytes = int64(len(payload))
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
		artifacts = append(artifacts, stored)
	}
	w.complete(task.id, artifacts)
}

func render(format Format, records []domain.GeneratedRecord) ([]byte, error) {
	switch format {
	case FormatCSV:
		return EncodeCSV(records)
	case FormatJSON:
		return EncodeJSON(records)
	default:
		return nil, fmt.Errorf("unsupported export format %s", format)
	}
}

func (w *Worker) formatsFor(id string) []Format {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if record, ok := w.jobs[id]; ok {
		return append([]Format(nil), record.Formats...)
	}
	return nil
}

func (w *Worker) updateStatus(id string, status Status, message string) {
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = status
		record.Error = message
		record.UpdatedAt = now
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, w.actorFor(id), status, nil)
}

func (w *Worker) complete(id string, artifacts []Artifact) {
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = StatusSucceeded
		record.Error = ""
		record.Artifacts = artifacts
		record.UpdatedAt = now
		record.CompletedAt = &now
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, w.actorFor(id), StatusSucceeded, map[string]any{"artifacts": len(artifacts)})
}

func (w *Worker) fail(id, reason string) {
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = StatusFailed
		record.Error = reason
		record.UpdatedAt = now
		record.CompletedAt = &now
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, w.actorFor(id), StatusFailed, map[string]any{"error": reason})
}

func (w *Worker) actorFor(id string) string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if record, ok := w.jobs[id]; ok {
		return record.RequestedBy
	}
	return ""
}

func (w *Worker) recordAudit(ctx context.Context, actor string, status Status, metadata map[string]any) {
	if w.audit == nil {
		return
	}
	w.audit.Record(ctx, AuditEntry{
		ID:         newID(),
		Action:     "clo_export",
		Actor:      actor,
		Status:     status,
		Metadata:   metadata,
		OccurredAt: time.Now().UTC(),
	})
}

func (r Record) copy() Record {
	dup := r
	dup.Formats = append([]Format(nil), r.Formats...)
	if len(r.Artifacts) > 0 {
		dup.Artifacts = append([]Artifact(nil), r.Artifacts...)
	}
	return dup
}

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// MemoryAuditLog captures audit entries in memory for assertions.
type MemoryAuditLog struct {
	mu      sync.Mutex
	entries []AuditEntry
}

// Record stores an audit entry.
func (l *MemoryAuditLog) Record(_ context.Context, entry AuditEntry) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Entries returns a defensive copy of recorded audit entries.
func (l *MemoryAuditLog) Entries() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AuditEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
