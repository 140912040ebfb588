package store

// Backend holds the single persisted document. Read returns ErrNotExist
// when nothing has been written yet; Write replaces the whole document.
type Backend interface {
	Name() string
	Read() ([]byte, error)
	Write(data []byte) error
	Close() error
}

// MemoryBackend keeps the document in process memory.
type MemoryBackend struct {
	data []byte
	set  bool
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Read() ([]byte, error) {
	if !m.set {
		return nil, ErrNotExist
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryBackend) Write(data []byte) error {
	m.data = append(m.data[:0], data...)
	m.set = true
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
