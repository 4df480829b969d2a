package mocks

// MockStore is an in-memory store.Store with optional error injection.
type MockStore struct {
	Values map[string]string

	GetErr    error
	SetErr    error
	DeleteErr error
}

func NewMockStore() *MockStore {
	return &MockStore{Values: make(map[string]string)}
}

func (m *MockStore) Get(key string) (string, bool, error) {
	if m.GetErr != nil {
		return "", false, m.GetErr
	}

	value, ok := m.Values[key]

	return value, ok, nil
}

func (m *MockStore) Set(key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}

	m.Values[key] = value

	return nil
}

func (m *MockStore) Delete(key string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	delete(m.Values, key)

	return nil
}
