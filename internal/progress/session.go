package progress

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

// session is one Connect call. Its context is the cancellation token: every
// scheduled step and every inbound frame checks it before reaching the
// callback, so nothing from a superseded session is delivered.
type session struct {
	id     uuid.UUID
	team   string
	client *Client
	log    logr.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	transport Transport
	closed    bool

	terminal atomic.Bool
}

func newSession(c *Client, team string) *session {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New()
	return &session{
		id:     id,
		team:   team,
		client: c,
		log:    c.log.WithValues("session", id.String(), "team", team),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *session) live() bool {
	return s.ctx.Err() == nil && !s.terminal.Load()
}

// emit delivers p unless the session was invalidated or has already
// delivered a terminal status. It reports whether p was delivered.
func (s *session) emit(p ReportProgress) bool {
	if s.ctx.Err() != nil {
		return false
	}
	if s.terminal.Load() {
		return false
	}
	if p.Status.Terminal() && !s.terminal.CompareAndSwap(false, true) {
		return false
	}
	if cb := s.client.callback(); cb != nil {
		cb(p)
	}
	return true
}

// attach hands t to the session. It fails if the session was closed while
// the transport was being opened.
func (s *session) attach(t Transport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.transport = t
	return true
}

func (s *session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	t := s.transport
	s.transport = nil
	s.mu.Unlock()

	// Cancel before closing so the read loop sees a deliberate shutdown
	// rather than a lost connection.
	s.cancel()
	if t != nil {
		if err := t.Close(); err != nil {
			s.log.V(1).Info("transport close", "err", err.Error())
		}
	}
	s.log.V(1).Info("session closed")
}

func (s *session) runScript(script Script) {
	for _, st := range script {
		if st.Delay > 0 {
			timer := time.NewTimer(st.Delay)
			select {
			case <-s.ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		if !s.emit(st.render(s.team)) {
			return
		}
	}
}

func (s *session) runTransport(d Dialer, endpoint, ourTeam string) {
	t, err := d.Dial(s.ctx, endpoint)
	if err != nil {
		s.fail(err)
		return
	}
	if !s.attach(t) {
		t.Close()
		return
	}

	s.emit(ReportProgress{Status: StatusConnecting, Progress: 0})

	if err := t.Send(s.ctx, NewGenerateRequest(s.team, ourTeam)); err != nil {
		s.fail(err)
		return
	}

	for {
		data, err := t.Receive(s.ctx)
		if err != nil {
			s.fail(err)
			return
		}
		p, err := ParseFrame(data)
		if err != nil {
			s.log.Error(err, "dropping inbound frame", "size", len(data))
			continue
		}
		if !s.emit(p) {
			s.log.V(1).Info("dropping frame after terminal status", "status", string(p.Status))
		}
	}
}

// fail reports a transport failure once. Failures caused by Disconnect, or
// arriving after a terminal status, are only logged.
func (s *session) fail(err error) {
	if s.ctx.Err() != nil {
		s.log.V(1).Info("transport stopped", "reason", err.Error())
		return
	}
	if s.terminal.Load() {
		s.log.V(1).Info("transport closed after terminal status", "reason", err.Error())
		return
	}
	s.log.Error(err, "transport failed")
	s.emit(ConnectionFailed())
}
