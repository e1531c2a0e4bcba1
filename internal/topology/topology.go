// Package topology holds the fixed, ordered station list of the line and
// the segment overlap predicate used by the seat ledger.
package topology

import (
	"fmt"
	"strings"

	"metrobus/internal/domain"
)

// Segment is a validated pickup/drop-off pair, stored as station indices.
// Start is always strictly less than End.
type Segment struct {
	Start int
	End   int
}

// Overlaps reports whether two segments share any travel between stations.
// A drop-off at the station where the other segment starts is not an overlap.
func (s Segment) Overlaps(o Segment) bool {
	return max(s.Start, o.Start) < min(s.End, o.End)
}

type Topology struct {
	names []string
	index map[string]int
}

// New builds a topology from an ordered list of unique station names.
func New(names []string) (*Topology, error) {
	if len(names) < 2 {
		return nil, domain.ValidationError{Field: "stations", Msg: "at least two stations are required", Err: domain.ErrInvalidStation}
	}
	t := &Topology{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
	}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, domain.ValidationError{Field: "stations", Msg: "empty station name", Err: domain.ErrInvalidStation}
		}
		if _, dup := t.index[n]; dup {
			return nil, domain.ValidationError{Field: "stations", Msg: fmt.Sprintf("duplicate station %q", n), Err: domain.ErrInvalidStation}
		}
		t.index[n] = len(t.names)
		t.names = append(t.names, n)
	}
	return t, nil
}

// Stations returns a copy of the ordered station names.
func (t *Topology) Stations() []string {
	return append([]string(nil), t.names...)
}

func (t *Topology) First() string { return t.names[0] }
func (t *Topology) Last() string  { return t.names[len(t.names)-1] }

// IndexOf returns the position of name in the line.
func (t *Topology) IndexOf(name string) (int, error) {
	i, ok := t.index[strings.TrimSpace(name)]
	if !ok {
		return -1, domain.ValidationError{Field: "station", Msg: fmt.Sprintf("unknown station %q", name), Err: domain.ErrInvalidStation}
	}
	return i, nil
}

// Segment validates a pickup/drop-off pair. The drop-off must come strictly
// after the pickup.
func (t *Topology) Segment(pickup, dropOff string) (Segment, error) {
	start, err := t.IndexOf(pickup)
	if err != nil {
		return Segment{}, err
	}
	end, err := t.IndexOf(dropOff)
	if err != nil {
		return Segment{}, err
	}
	if start >= end {
		return Segment{}, domain.ValidationError{
			Field: "segment",
			Msg:   fmt.Sprintf("drop-off %q must come after pickup %q", dropOff, pickup),
			Err:   domain.ErrInvalidSegment,
		}
	}
	return Segment{Start: start, End: end}, nil
}

// Overlaps compares two station ranges by index. Both ranges must name known
// stations; their order is not checked here.
func (t *Topology) Overlaps(pickupA, dropOffA, pickupB, dropOffB string) (bool, error) {
	idx := make([]int, 4)
	for i, name := range []string{pickupA, dropOffA, pickupB, dropOffB} {
		v, err := t.IndexOf(name)
		if err != nil {
			return false, err
		}
		idx[i] = v
	}
	return max(idx[0], idx[2]) < min(idx[1], idx[3]), nil
}

// Origins lists the stations a journey may start from (all but the last).
func (t *Topology) Origins() []string {
	return append([]string(nil), t.names[:len(t.names)-1]...)
}

// Destinations lists the stations strictly after origin.
func (t *Topology) Destinations(origin string) ([]string, error) {
	i, err := t.IndexOf(origin)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), t.names[i+1:]...), nil
}

// Name returns the station at index i.
func (t *Topology) Name(i int) string {
	if i < 0 || i >= len(t.names) {
		return ""
	}
	return t.names[i]
}
