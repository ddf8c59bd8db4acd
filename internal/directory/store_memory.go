// Package directory provides backing-store implementations of the Directory
// port for deployments without a live directory service, and for tests. The
// directory wire protocol itself is out of scope; these adapters serve the
// same read contract from local storage.
package directory

import (
	"context"
	"sync"
	"time"

	"credstate/internal/domain"
	"credstate/pkg/platform/sentinel"
)

type memoryEntry struct {
	attributes      map[string]string
	timestamps      map[domain.TimestampKind]time.Time
	passwordExpired bool
}

// MemoryDirectory is an in-memory Directory implementation.
type MemoryDirectory struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
}

// NewMemory creates an empty in-memory directory.
func NewMemory() *MemoryDirectory {
	return &MemoryDirectory{entries: make(map[string]*memoryEntry)}
}

// AddEntry registers an entry with its attributes, replacing any existing one.
func (d *MemoryDirectory) AddEntry(dn string, attributes map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	entry := &memoryEntry{
		attributes: make(map[string]string, len(attributes)),
		timestamps: make(map[domain.TimestampKind]time.Time),
	}
	for k, v := range attributes {
		entry.attributes[k] = v
	}
	d.entries[dn] = entry
}

// SetTimestamp records a timestamp on an existing entry.
func (d *MemoryDirectory) SetTimestamp(dn string, kind domain.TimestampKind, t time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if entry, ok := d.entries[dn]; ok {
		entry.timestamps[kind] = t
	}
}

// SetPasswordExpired sets the expired flag on an existing entry.
func (d *MemoryDirectory) SetPasswordExpired(dn string, expired bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if entry, ok := d.entries[dn]; ok {
		entry.passwordExpired = expired
	}
}

func (d *MemoryDirectory) ReadAttribute(_ context.Context, identity domain.Identity, attribute string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.entries[identity.DN]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	value, ok := entry.attributes[attribute]
	if !ok || value == "" {
		return "", sentinel.ErrNotFound
	}
	return value, nil
}

func (d *MemoryDirectory) ReadAttributes(_ context.Context, identity domain.Identity, attributes []string) (map[string]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.entries[identity.DN]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	values := make(map[string]string, len(attributes))
	for _, name := range attributes {
		if v, ok := entry.attributes[name]; ok && v != "" {
			values[name] = v
		}
	}
	return values, nil
}

func (d *MemoryDirectory) ReadTimestamp(_ context.Context, identity domain.Identity, kind domain.TimestampKind) (time.Time, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.entries[identity.DN]
	if !ok {
		return time.Time{}, sentinel.ErrNotFound
	}
	t, ok := entry.timestamps[kind]
	if !ok {
		return time.Time{}, sentinel.ErrNotFound
	}
	return t, nil
}

func (d *MemoryDirectory) PasswordExpired(_ context.Context, identity domain.Identity) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.entries[identity.DN]
	if !ok {
		return false, sentinel.ErrNotFound
	}
	return entry.passwordExpired, nil
}
