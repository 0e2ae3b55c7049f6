package transfer

import (
	"errors"
	"sync"
)

// mockStore implements Store for testing.
type mockStore struct {
	mu    sync.Mutex
	saves []savedFile
	err   error // returned by Save when non-nil
}

type savedFile struct {
	name string
	data []byte
}

func newMockStore() *mockStore {
	return &mockStore{}
}

func (m *mockStore) Save(name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}

	// Copy: the session may reuse or reset its buffer after Save returns.
	saved := make([]byte, len(data))
	copy(saved, data)
	m.saves = append(m.saves, savedFile{name: name, data: saved})
	return "/uploads/" + name, nil
}

func (m *mockStore) failWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *mockStore) savedFiles() []savedFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]savedFile, len(m.saves))
	copy(out, m.saves)
	return out
}

var errMockDiskFull = errors.New("mock store: disk full")
