package transport

// MockPort implements Port for testing
type MockPort struct {
	WrittenData []byte
	WriteError  error
	CloseError  error
	Closed      bool

	// FailAfter delays WriteError until this many writes have succeeded.
	// With WriteError set and FailAfter zero, every write fails.
	FailAfter int

	writes int
}

func (m *MockPort) Write(p []byte) (n int, err error) {
	if m.WriteError != nil && m.writes >= m.FailAfter {
		return 0, m.WriteError
	}

	m.writes++
	m.WrittenData = append(m.WrittenData, p...)
	return len(p), nil
}

func (m *MockPort) Close() error {
	m.Closed = true
	return m.CloseError
}
