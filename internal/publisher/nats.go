package publisher

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"metrobus/internal/actionlog"
	"metrobus/internal/services"
	"metrobus/internal/utils"

	"github.com/nats-io/nats.go"
)

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

type PublisherMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	NATSSetConnected(connected bool)
}

// NATSPublisher forwards console history changes to NATS subjects of the
// form <prefix>.<change>.<action kind>.
type NATSPublisher struct {
	conn    Conn
	nc      *nats.Conn
	prefix  string
	metrics PublisherMetrics
}

func NewNATSPublisher(url, prefix string, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("metrobus-console"),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			utils.LogEvent("", "nats", "disconnected", "")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(true)
			}
			utils.LogEvent("", "nats", "reconnected", "")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			if m != nil {
				m.NATSSetConnected(false)
			}
			utils.LogEvent("", "nats", "closed", "")
		}),
	)
	if err != nil {
		return nil, err
	}
	if m != nil {
		m.NATSSetConnected(true)
	}
	p := New(nc, prefix, m)
	p.nc = nc
	return p, nil
}

// New wraps an existing connection.
func New(conn Conn, prefix string, m PublisherMetrics) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: subjectToken(prefix), metrics: m}
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

type ActionMessage struct {
	Change        string           `json:"change"`
	Entry         *actionlog.Entry `json:"entry,omitempty"`
	QueueLength   int              `json:"queue_length"`
	HistoryLength int              `json:"history_length"`
	Occupancy     map[string]int   `json:"occupancy"`
	PublishedAt   time.Time        `json:"published_at"`
}

// ConsoleChanged implements services.Listener. Publish failures are logged
// and counted, never returned to the console.
func (p *NATSPublisher) ConsoleChanged(ev services.Event) {
	subject, b, err := p.message(ev, time.Now())
	if err != nil {
		utils.LogEvent("", "nats", "encode_failed", err.Error())
		return
	}
	err = p.conn.Publish(subject, b)
	if p.metrics != nil {
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	if err != nil {
		utils.LogEvent("", "nats", "publish_failed", utils.KV("subject", subject, "err", err.Error()))
	}
}

func (p *NATSPublisher) message(ev services.Event, now time.Time) (string, []byte, error) {
	kind := "state"
	if ev.Entry != nil && ev.Entry.Action != nil {
		kind = string(ev.Entry.Action.Kind())
	}
	subject := fmt.Sprintf("%s.%s.%s", p.prefix, subjectToken(ev.Change), subjectToken(strings.ToLower(kind)))
	b, err := json.Marshal(ActionMessage{
		Change:        ev.Change,
		Entry:         ev.Entry,
		QueueLength:   ev.QueueLength,
		HistoryLength: ev.HistoryLength,
		Occupancy:     ev.Occupancy,
		PublishedAt:   now.UTC(),
	})
	return subject, b, err
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS token cannot contain spaces, '>', '*', or '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
