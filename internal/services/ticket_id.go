package services

import (
	"fmt"
	"strings"
)

const defaultTicketPrefix = "METRO"

// TicketIssuer hands out sequential ticket ids (METRO-00001, METRO-00002,
// ...). Ids are never reused, including after an undone booking.
type TicketIssuer struct {
	Prefix string
	last   uint64
}

func (t *TicketIssuer) Next() string {
	t.last++
	prefix := strings.TrimSpace(t.Prefix)
	if prefix == "" {
		prefix = defaultTicketPrefix
	}
	return fmt.Sprintf("%s-%05d", prefix, t.last)
}
