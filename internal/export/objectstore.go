package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"clogen/internal/blob"
)

// BlobObjectStore adapts a blob.Store to the worker's ObjectStore interface.
// Metadata values are flattened to strings for the blob layer.
type BlobObjectStore struct {
	store blob.Store
}

var _ ObjectStore = (*BlobObjectStore)(nil)

// NewBlobObjectStore wraps a blob store.
func NewBlobObjectStore(store blob.Store) *BlobObjectStore {
	return &BlobObjectStore{store: store}
}

// Put writes a new artifact to the blob store and attempts to presign a GET
// URL for it. Presign failures are non-fatal; memory and fs backends do not
// sign.
func (b *BlobObjectStore) Put(ctx context.Context, key string, payload []byte, contentType string, metadata map[string]any) (Artifact, error) {
	info, err := b.store.Put(ctx, key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: contentType,
		Metadata:    flattenMetadata(metadata),
	})
	if err != nil {
		return Artifact{}, err
	}
	artifact := artifactFromInfo(info)
	if url, err := b.store.PresignURL(ctx, key, blob.SignedURLOptions{Method: "GET"}); err == nil {
		artifact.URL = url
	}
	return artifact, nil
}

// Get reads an artifact back from the blob store.
func (b *BlobObjectStore) Get(ctx context.Context, key string) (Artifact, []byte, error) {
	info, reader, err := b.store.Get(ctx, key)
	if err != nil {
		return Artifact{}, nil, err
	}
	defer func() { _ = reader.Close() }()
	payload, err := io.ReadAll(reader)
	if err != nil {
		return Artifact{}, nil, err
	}
	return artifactFromInfo(info), payload, nil
}

// List returns artifacts under prefix, key ascending.
func (b *BlobObjectStore) List(ctx context.Context, prefix string) ([]Artifact, error) {
	infos, err := b.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]Artifact, 0, len(infos))
	for _, info := range infos {
		out = append(out, artifactFromInfo(info))
	}
	return out, nil
}

func artifactFromInfo(info blob.Info) Artifact {
	metadata := make(map[string]any, len(info.Metadata))
	for k, v := range info.Metadata {
		metadata[k] = v
	}
	if len(metadata) == 0 {
		metadata = nil
	}
	return Artifact{
		Key:         info.Key,
		ContentType: info.ContentType,
		SizeBytes:   info.Size,
		URL:         info.URL,
		Metadata:    metadata,
		CreatedAt:   info.LastModified,
	}
}

func flattenMetadata(in map[string]any) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// MemoryObjectStore is an in-memory ObjectStore for worker tests.
type MemoryObjectStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	artifact Artifact
	payload  []byte
}

var _ ObjectStore = (*MemoryObjectStore)(nil)

// NewMemoryObjectStore returns an empty in-memory object store.
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{objects: make(map[string]memoryObject)}
}

// Put stores a new object; errors if the key exists.
func (m *MemoryObjectStore) Put(_ context.Context, key string, payload []byte, contentType string, metadata map[string]any) (Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.objects[key]; exists {
		return Artifact{}, fmt.Errorf("artifact %s already exists", key)
	}
	artifact := Artifact{
		Key:         key,
		ContentType: contentType,
		SizeBytes:   int64(len(payload)),
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}
	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.objects[key] = memoryObject{artifact: artifact, payload: stored}
	return artifact, nil
}

// Get returns the stored object.
func (m *MemoryObjectStore) Get(_ context.Context, key string) (Artifact, []byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return Artifact{}, nil, fmt.Errorf("artifact %s not found", key)
	}
	payload := make([]byte, len(obj.payload))
	copy(payload, obj.payload)
	return obj.artifact, payload, nil
}

// List returns stored artifacts under prefix, key ascending.
func (m *MemoryObjectStore) List(_ context.Context, prefix string) ([]Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Artifact, 0, len(m.objects))
	for key, obj := range m.objects {
		if prefix == "" || (len(key) >= len(prefix) && key[:len(prefix)] == prefix) {
			out = append(out, obj.artifact)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
