package dispatch

// Move records one relative pointer move.
type Move struct {
	DX, DY int
}

// MockExecutor implements Executor for testing. It records every call and
// returns the configured errors.
type MockExecutor struct {
	KeyPresses []string
	Clicks     []string
	Scrolls    []int
	Moves      []Move
	Writes     [][]byte

	KeyErr    error
	ClickErr  error
	ScrollErr error
	MoveErr   error
	WriteErr  error

	// WriteFailAfter delays WriteErr until this many transport writes
	// have succeeded.
	WriteFailAfter int

	writeCalls int
}

func (m *MockExecutor) KeyPress(combo string) error {
	if m.KeyErr != nil {
		return m.KeyErr
	}
	m.KeyPresses = append(m.KeyPresses, combo)
	return nil
}

func (m *MockExecutor) MouseClick(kind string) error {
	if m.ClickErr != nil {
		return m.ClickErr
	}
	m.Clicks = append(m.Clicks, kind)
	return nil
}

func (m *MockExecutor) MouseScroll(amount int) error {
	if m.ScrollErr != nil {
		return m.ScrollErr
	}
	m.Scrolls = append(m.Scrolls, amount)
	return nil
}

func (m *MockExecutor) PointerMoveRelative(dx, dy int) error {
	if m.MoveErr != nil {
		return m.MoveErr
	}
	m.Moves = append(m.Moves, Move{DX: dx, DY: dy})
	return nil
}

func (m *MockExecutor) TransportWrite(payload []byte) error {
	if m.WriteErr != nil && m.writeCalls >= m.WriteFailAfter {
		return m.WriteErr
	}

	m.writeCalls++
	buf := make([]byte, len(payload))
	copy(buf, payload)
	m.Writes = append(m.Writes, buf)
	return nil
}
