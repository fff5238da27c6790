package progress

import (
	"sync"

	"github.com/go-logr/logr"
)

// Client drives one report session at a time. It is safe for concurrent use,
// though callbacks for a session are always delivered from a single goroutine
// in the order they were produced.
type Client struct {
	cfg    Config
	log    logr.Logger
	dialer Dialer
	script Script

	mu      sync.Mutex
	session *session

	cbMu sync.RWMutex
	cb   Callback
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithDialer replaces the websocket dialer used in real mode.
func WithDialer(d Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// WithScript replaces the simulated sequence.
func WithScript(s Script) Option {
	return func(c *Client) { c.script = s }
}

// New creates a client. Configuration errors surface from Connect.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		log:    logr.Discard(),
		script: DefaultScript(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dialer == nil {
		c.dialer = WebSocketDialer{HandshakeTimeout: cfg.HandshakeTimeout}
	}
	c.log = c.log.WithName("progress")
	return c
}

// OnProgress registers the single subscriber, replacing any previous one.
// A nil callback discards updates.
func (c *Client) OnProgress(cb Callback) {
	c.cbMu.Lock()
	c.cb = cb
	c.cbMu.Unlock()
}

func (c *Client) callback() Callback {
	c.cbMu.RLock()
	defer c.cbMu.RUnlock()
	return c.cb
}

// Connect starts a session for teamName and returns immediately; updates
// arrive through the registered callback. A session that is still active
// is disconnected first. Only configuration problems are returned as
// errors; transport failures are reported in-band as a StatusError update.
func (c *Client) Connect(teamName string) error {
	if teamName == "" {
		return ErrEmptyTeamName
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	s := newSession(c, teamName)

	c.mu.Lock()
	prev := c.session
	c.session = s
	c.mu.Unlock()

	if prev != nil {
		prev.log.V(1).Info("superseded by new session", "next", s.id)
		prev.close()
	}

	if c.cfg.Simulate {
		s.log.Info("starting simulated report", "steps", len(c.script), "duration", c.script.Total())
		go s.runScript(c.script)
		return nil
	}

	s.log.Info("starting report", "endpoint", c.cfg.Endpoint)
	go s.runTransport(c.dialer, c.cfg.Endpoint, c.cfg.ContextTeamName)
	return nil
}

// Disconnect ends the current session, if any. Scheduled simulated steps are
// cancelled and the transport is closed. It never emits an update and is
// safe to call repeatedly.
func (c *Client) Disconnect() {
	c.mu.Lock()
	s := c.session
	c.session = nil
	c.mu.Unlock()

	if s != nil {
		s.close()
	}
}

// Active reports whether a session is running and has not yet reached a
// terminal status.
func (c *Client) Active() bool {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()
	return s != nil && s.live()
}
