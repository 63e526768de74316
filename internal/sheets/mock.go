package sheets

import "context"

// MockExporter is a mock implementation of Exporter for testing.
type MockExporter struct {
	WriteFn    func(ctx context.Context, report *Report) error
	WriteCalls []*Report
}

// NewMockExporter creates a new mock exporter.
func NewMockExporter() *MockExporter {
	return &MockExporter{}
}

// Write implements Exporter.Write.
func (m *MockExporter) Write(ctx context.Context, report *Report) error {
	m.WriteCalls = append(m.WriteCalls, report)
	if m.WriteFn != nil {
		return m.WriteFn(ctx, report)
	}
	return nil
}

// Ensure MockExporter implements the Exporter interface.
var _ Exporter = (*MockExporter)(nil)
