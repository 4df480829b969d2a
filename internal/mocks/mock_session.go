package mocks

// MockSession satisfies booking.Session.
type MockSession struct {
	IsAuthenticated bool
}

func (m *MockSession) Authenticated() bool {
	return m.IsAuthenticated
}
