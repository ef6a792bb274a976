package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"clogen/pkg/domain"
)

// Loader fetches the base mapping document over HTTP. The fetch is the single
// suspension point of a session; it is not retried automatically and a failed
// load leaves the store unavailable until the user triggers a reload.
type Loader struct {
	url    string
	client *http.Client
}

// NewLoader constructs a loader for the given document URL. A nil client
// falls back to a default with a conservative timeout.
func NewLoader(url string, client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Loader{url: url, client: client}
}

// URL returns the configured document location.
func (l *Loader) URL() string { return l.url }

// Load fetches and decodes the base mapping document.
func (l *Loader) Load(ctx context.Context) (domain.MappingDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return domain.MappingDocument{}, domain.LoadError{Source: l.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.client.Do(req)
	if err != nil {
		return domain.MappingDocument{}, domain.LoadError{Source: l.url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return domain.MappingDocument{}, domain.LoadError{Source: l.url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	doc, err := DecodeDocument(resp.Body)
	if err != nil {
		return domain.MappingDocument{}, domain.LoadError{Source: l.url, Err: err}
	}
	return doc, nil
}

// DecodeDocument decodes a mapping document. Absent tables default to empty
// maps; both outcome-statement shapes are accepted.
func DecodeDocument(r io.Reader) (domain.MappingDocument, error) {
	var doc domain.MappingDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return domain.MappingDocument{}, fmt.Errorf("decode mapping document: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

// LoadFile decodes a mapping document from a local file. Used by the offline
// checker and by tests.
func LoadFile(path string) (domain.MappingDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.MappingDocument{}, domain.LoadError{Source: path, Err: err}
	}
	defer func() { _ = f.Close() }()
	doc, err := DecodeDocument(f)
	if err != nil {
		return domain.MappingDocument{}, domain.LoadError{Source: path, Err: err}
	}
	return doc, nil
}
