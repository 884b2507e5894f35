package storage

import "sync"

// Values is the typed key space shared by the in-process stores and the
// on-disk snapshot format.
type Values struct {
	Bools   map[string]bool    `json:"bools"`
	Ints    map[string]int     `json:"ints"`
	Doubles map[string]float64 `json:"doubles"`
	Strings map[string]string  `json:"strings"`
}

func newValues() Values {
	return Values{
		Bools:   make(map[string]bool),
		Ints:    make(map[string]int),
		Doubles: make(map[string]float64),
		Strings: make(map[string]string),
	}
}

func (v *Values) ensure() {
	if v.Bools == nil {
		v.Bools = make(map[string]bool)
	}
	if v.Ints == nil {
		v.Ints = make(map[string]int)
	}
	if v.Doubles == nil {
		v.Doubles = make(map[string]float64)
	}
	if v.Strings == nil {
		v.Strings = make(map[string]string)
	}
}

// MemoryStore keeps settings for the life of the process only.
type MemoryStore struct {
	mu         sync.RWMutex
	data       Values
	gen        uint64
	flushedGen uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: newValues()}
}

func (m *MemoryStore) GetBool(key string) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data.Bools[key]
	return v, ok
}

func (m *MemoryStore) GetInt(key string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data.Ints[key]
	return v, ok
}

func (m *MemoryStore) GetDouble(key string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data.Doubles[key]
	return v, ok
}

func (m *MemoryStore) GetString(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data.Strings[key]
	return v, ok
}

func (m *MemoryStore) SetBool(key string, value bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Bools[key] = value
	m.gen++
}

func (m *MemoryStore) SetInt(key string, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Ints[key] = value
	m.gen++
}

func (m *MemoryStore) SetDouble(key string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Doubles[key] = value
	m.gen++
}

func (m *MemoryStore) SetString(key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.Strings[key] = value
	m.gen++
}

func (m *MemoryStore) Flush() error {
	m.mu.Lock()
	m.flushedGen = m.gen
	m.mu.Unlock()
	return nil
}

// Snapshot returns a deep copy of the stored values together with the write
// generation it reflects and whether that generation is not flushed yet.
func (m *MemoryStore) Snapshot() (Values, uint64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := newValues()
	for k, v := range m.data.Bools {
		out.Bools[k] = v
	}
	for k, v := range m.data.Ints {
		out.Ints[k] = v
	}
	for k, v := range m.data.Doubles {
		out.Doubles[k] = v
	}
	for k, v := range m.data.Strings {
		out.Strings[k] = v
	}
	return out, m.gen, m.gen != m.flushedGen
}

func (m *MemoryStore) replace(v Values) {
	v.ensure()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = v
	m.flushedGen = m.gen
}

// markFlushed records that generation gen reached durable storage. Writes made
// after the snapshot keep the store dirty.
func (m *MemoryStore) markFlushed(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen > m.flushedGen {
		m.flushedGen = gen
	}
}
