package publisher

import (
	"encoding/json"
	"errors"
	"testing"

	"metrobus/internal/actionlog"
	"metrobus/internal/domain/models"
	"metrobus/internal/services"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return f.err
}

type fakeMetrics struct{ ok, failed int }

func (m *fakeMetrics) NATSPublishedInc()     { m.ok++ }
func (m *fakeMetrics) NATSPublishErrInc()    { m.failed++ }
func (m *fakeMetrics) NATSSetConnected(bool) {}

func TestSubjectToken(t *testing.T) {
	cases := map[string]string{
		"":              "_",
		"  metro bus  ": "metro_bus",
		"a.b>c*d/e":     "a_b_c_d_e",
	}
	for in, want := range cases {
		if got := subjectToken(in); got != want {
			t.Fatalf("subjectToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConsoleChangedPublishesEntry(t *testing.T) {
	conn := &fakeConn{}
	m := &fakeMetrics{}
	p := New(conn, "metro.bus", m)

	entry := &actionlog.Entry{ID: "e1", Action: actionlog.EnqueuePassenger{Passenger: models.Passenger{ID: "p1", Name: "Ana"}}}
	p.ConsoleChanged(services.Event{Change: "record", Entry: entry, QueueLength: 1, HistoryLength: 1})

	if len(conn.subjects) != 1 || conn.subjects[0] != "metro_bus.record.enqueue_passenger" {
		t.Fatalf("subjects = %v", conn.subjects)
	}
	var msg struct {
		Change      string `json:"change"`
		QueueLength int    `json:"queue_length"`
		Entry       struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"entry"`
	}
	if err := json.Unmarshal(conn.payloads[0], &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Change != "record" || msg.QueueLength != 1 || msg.Entry.ID != "e1" || msg.Entry.Type != "ENQUEUE_PASSENGER" {
		t.Fatalf("unexpected payload %+v", msg)
	}
	if m.ok != 1 || m.failed != 0 {
		t.Fatalf("metrics ok=%d failed=%d", m.ok, m.failed)
	}
}

func TestConsoleChangedWithoutEntry(t *testing.T) {
	conn := &fakeConn{err: errors.New("down")}
	m := &fakeMetrics{}
	New(conn, "metrobus", m).ConsoleChanged(services.Event{Change: "filter"})

	if conn.subjects[0] != "metrobus.filter.state" {
		t.Fatalf("subject = %s", conn.subjects[0])
	}
	if m.failed != 1 {
		t.Fatalf("expected failed publish to be counted")
	}
}
