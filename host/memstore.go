package host

import "sync"

// MemStorage is an in-process Storage backend. It backs tests and
// embeddings that do not need durability.
type MemStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemStorage returns an empty in-memory store.
func NewMemStorage() *MemStorage {
	return &MemStorage{values: make(map[string][]byte)}
}

// Compile-time interface check.
var _ BatchStorage = (*MemStorage)(nil)

func (s *MemStorage) Get(key []byte) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[string(key)]
	if !ok {
		return nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp
}

func (s *MemStorage) Put(key, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.values[string(key)] = cp
}

func (s *MemStorage) Delete(key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, string(key))
}

// PutBatch applies a whole write set at once.
func (s *MemStorage) PutBatch(ops []StorageOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range ops {
		if op.Value == nil {
			delete(s.values, string(op.Key))
			continue
		}
		s.values[string(op.Key)] = op.Value
	}
	return nil
}

// MemLog is an in-process NotificationLog with a poll cursor.
type MemLog struct {
	mu      sync.RWMutex
	entries []Notification
}

// NewMemLog returns an empty in-memory notification log.
func NewMemLog() *MemLog {
	return &MemLog{}
}

var _ NotificationLog = (*MemLog)(nil)

// Append assigns sequence numbers and appends the entries.
func (l *MemLog) Append(ns []Notification) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := uint64(len(l.entries))
	for _, n := range ns {
		n.Seq = next
		next++
		l.entries = append(l.entries, n)
	}
	return nil
}

// Read returns up to max entries with Seq >= from, in order. A max of
// zero or less means no limit.
func (l *MemLog) Read(from uint64, max int) ([]Notification, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if from >= uint64(len(l.entries)) {
		return nil, nil
	}
	tail := l.entries[from:]
	if max > 0 && len(tail) > max {
		tail = tail[:max]
	}
	out := make([]Notification, len(tail))
	copy(out, tail)
	return out, nil
}

// Len returns the number of appended entries.
func (l *MemLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
