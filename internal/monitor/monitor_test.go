package monitor

import "testing"

func TestMonitorWithoutDatabase(t *testing.T) {
	m := New(nil)
	m.Start()
	defer m.Stop()

	status := m.Status()
	if status.Database != "disconnected" {
		t.Errorf("database status = %q, want disconnected", status.Database)
	}
	if status.Error == "" {
		t.Error("expected an error message for a missing connection")
	}
	if m.Healthy() {
		t.Error("monitor without a database must not report healthy")
	}
}

func TestMonitorInitialStatus(t *testing.T) {
	m := New(nil)
	if got := m.Status().Database; got != "unknown" {
		t.Errorf("initial status = %q, want unknown", got)
	}
	if m.Healthy() {
		t.Error("monitor must not report healthy before the first probe")
	}
}
