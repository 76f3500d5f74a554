package revshare

import "github.com/revora-network/revshare-contract/host"

// NotificationSource is the poll surface of a notification log.
// host.MemLog and host.BoltStore both provide it.
type NotificationSource interface {
	Read(from uint64, max int) ([]host.Notification, error)
}

const defaultPollBatch = 100

// Poller incrementally reads and decodes new notifications. It keeps a
// sequence cursor so each event is delivered once; persist the cursor
// with Cursor and restore it with Seek to resume across restarts.
type Poller struct {
	src   NotificationSource
	next  uint64
	batch int
}

// NewPoller returns a poller positioned at the start of the log.
func NewPoller(src NotificationSource) *Poller {
	return &Poller{src: src, batch: defaultPollBatch}
}

// Seek positions the poller at the given sequence number.
func (p *Poller) Seek(seq uint64) { p.next = seq }

// Cursor returns the sequence number of the next unread notification.
func (p *Poller) Cursor() uint64 { return p.next }

// Poll returns the events published since the previous call, in publish
// order. The cursor advances past every decoded event, so a decode
// failure can be inspected and skipped with Seek if desired.
func (p *Poller) Poll() ([]Event, error) {
	ns, err := p.src.Read(p.next, p.batch)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(ns))
	for _, n := range ns {
		ev, err := ParseNotification(n)
		if err != nil {
			return events, err
		}
		events = append(events, ev)
		p.next = n.Seq + 1
	}
	return events, nil
}
