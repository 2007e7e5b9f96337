// Package device manages a full-duplex byte stream from a serial peripheral
// (jeweler's scale or RFID reader): it decodes lines out of the raw stream,
// filters noise, deduplicates tag identifiers, and publishes structured
// readings to subscribers. Peripheral flakiness is advisory state, never a
// crash: a session outlives garbage input and transient read failures.
package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// State is the reader's connection lifecycle state.
type State string

const (
	StateDisconnected State = "DISCONNECTED"
	StateConnecting   State = "CONNECTING"
	StateConnected    State = "CONNECTED"
	StateScanning     State = "SCANNING"
)

// Mode selects which peripheral protocol the reader speaks.
type Mode string

const (
	ModeScale Mode = "SCALE"
	ModeRFID  Mode = "RFID"
)

// ErrConnection indicates the peripheral port could not be opened at all.
// This is the only hard connection failure; everything past a successful open
// is advisory.
var ErrConnection = errors.New("could not open device port")

// ErrNotConnected indicates a scan was requested without an open connection.
var ErrNotConnected = errors.New("device is not connected")

// ErrAlreadyScanning indicates a second concurrent scan was requested.
var ErrAlreadyScanning = errors.New("scan already in progress")

// Config tunes a Reader.
type Config struct {
	Mode     Mode
	BaudRate int

	// MinTagLength drops RFID lines shorter than this as field noise.
	MinTagLength int

	// ReadPause is the bounded pause between read attempts so the loop
	// never starves other work.
	ReadPause time.Duration

	// IdleTimeout, when positive, drops a scan back to CONNECTED with an
	// advisory notice after this long without data. Zero disables it.
	IdleTimeout time.Duration

	// SubscriberBuffer is the per-subscriber channel capacity. A subscriber
	// that falls behind loses readings rather than stalling the loop.
	SubscriberBuffer int
}

func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = ModeScale
	}
	if c.BaudRate == 0 {
		if c.Mode == ModeRFID {
			c.BaudRate = 115200
		} else {
			c.BaudRate = 9600
		}
	}
	if c.MinTagLength == 0 {
		c.MinTagLength = 6
	}
	if c.ReadPause == 0 {
		c.ReadPause = 10 * time.Millisecond
	}
	if c.SubscriberBuffer == 0 {
		c.SubscriberBuffer = 16
	}
	return c
}

// Reader owns one peripheral connection and at most one read loop over it.
type Reader struct {
	cfg       Config
	transport Transport
	logger    *slog.Logger

	mu       sync.Mutex
	state    State
	advisory string
	conn     Conn
	cancel   context.CancelFunc
	done     chan struct{}
	weight   decimal.Decimal
	tags     map[string]struct{}
	subs     map[int]chan Reading
	nextSub  int
}

// NewReader creates a reader over the given transport. The transport is only
// opened on Connect.
func NewReader(transport Transport, cfg Config, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &Reader{
		cfg:       cfg,
		transport: transport,
		logger:    logger.With(slog.String("device_mode", string(cfg.Mode))),
		state:     StateDisconnected,
		weight:    decimal.Zero,
		tags:      make(map[string]struct{}),
		subs:      make(map[int]chan Reading),
	}
}

// State returns the current lifecycle state.
func (r *Reader) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Advisory returns the human-readable advisory message, empty when healthy.
func (r *Reader) Advisory() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.advisory
}

// Weight returns the latest parsed scale weight.
func (r *Reader) Weight() decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.weight
}

// Tags returns the deduplicated tag identifiers seen this scan session,
// sorted for stable output.
func (r *Reader) Tags() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.tags))
	for tag := range r.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// ClearTags empties the session tag set so a recount can start without
// reconnecting. Independent of StopScan.
func (r *Reader) ClearTags() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags = make(map[string]struct{})
}

// Subscribe registers a reading channel and returns it with an unsubscribe
// function. Sends are non-blocking; slow subscribers miss readings.
func (r *Reader) Subscribe() (<-chan Reading, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextSub
	r.nextSub++
	ch := make(chan Reading, r.cfg.SubscriberBuffer)
	r.subs[id] = ch

	return ch, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if sub, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(sub)
		}
	}
}

// Connect opens the port. On failure the reader stays DISCONNECTED and the
// failure is recorded as advisory state in addition to the returned error.
func (r *Reader) Connect(ctx context.Context) error {
	r.mu.Lock()
	if r.state != StateDisconnected {
		r.mu.Unlock()
		return nil
	}
	r.state = StateConnecting
	r.advisory = ""
	r.mu.Unlock()

	conn, err := r.transport.Open(ctx, r.cfg.BaudRate)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.state = StateDisconnected
		r.advisory = fmt.Sprintf("connection failed: %v", err)
		r.logger.Warn("Device connection failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	r.conn = conn
	r.state = StateConnected
	r.logger.Info("Device connected", slog.Int("baud_rate", r.cfg.BaudRate))
	return nil
}

// StartScan begins the read loop. Exactly one loop may run per connection;
// a second call while scanning fails with ErrAlreadyScanning.
func (r *Reader) StartScan(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StateDisconnected, StateConnecting:
		return ErrNotConnected
	case StateScanning:
		return ErrAlreadyScanning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	r.state = StateScanning
	r.advisory = ""

	go r.readLoop(loopCtx, r.conn, done)
	return nil
}

// StopScan requests cooperative cancellation of the read loop and returns a
// channel that closes once the loop has fully exited and released the port
// for a subsequent scan.
func (r *Reader) StopScan() <-chan struct{} {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return done
}

// Disconnect tears the connection down: cancels any in-flight scan, closes
// the port, and resets the weight. Best effort; secondary errors are
// swallowed so teardown never propagates a failure.
func (r *Reader) Disconnect() {
	<-r.StopScan()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			r.logger.Debug("Device close failed", slog.String("error", err.Error()))
		}
		r.conn = nil
	}
	r.state = StateDisconnected
	r.weight = decimal.Zero
	r.cancel = nil
	r.done = nil
}

// readLoop is the single cooperative reader per open connection. It buffers
// bytes until a line terminator, hands complete lines to the mode-specific
// parser, and keeps partial lines across reads. Transient read errors and
// unparseable lines never end the loop.
func (r *Reader) readLoop(ctx context.Context, conn Conn, done chan struct{}) {
	defer close(done)
	defer r.scanEnded()

	buf := make([]byte, 256)
	var pending []byte
	lastData := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(r.cfg.ReadPause):
		}

		n, err := conn.Read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				r.setAdvisory("stream ended")
				return
			}
			// Transient read failure (loose cable etc.), keep going.
			r.logger.Debug("Transient read error", slog.String("error", err.Error()))
			continue
		}

		if n == 0 {
			if r.cfg.IdleTimeout > 0 && time.Since(lastData) > r.cfg.IdleTimeout {
				r.setAdvisory("no data from peripheral, scan idled out")
				return
			}
			continue
		}
		lastData = time.Now()

		pending = append(pending, buf[:n]...)
		var lines []string
		lines, pending = splitLines(pending)
		for _, line := range lines {
			r.handleLine(line)
		}
	}
}

// splitLines splits off every complete line terminated by CR, LF, or CRLF and
// returns the unterminated tail for the next read.
func splitLines(buf []byte) ([]string, []byte) {
	var lines []string
	start := 0
	for i := 0; i < len(buf); i++ {
		if buf[i] == '\r' || buf[i] == '\n' {
			if i > start {
				lines = append(lines, string(buf[start:i]))
			}
			start = i + 1
		}
	}
	rest := append([]byte(nil), buf[start:]...)
	return lines, rest
}

func (r *Reader) handleLine(line string) {
	switch r.cfg.Mode {
	case ModeRFID:
		r.handleTagLine(line)
	default:
		r.handleScaleLine(line)
	}
}

func (r *Reader) handleScaleLine(line string) {
	value, ok := parseWeight(line)
	if !ok {
		// Noise, drop silently.
		return
	}

	r.mu.Lock()
	r.weight = value
	r.mu.Unlock()

	r.publish(Reading{Kind: KindWeight, Weight: value, At: time.Now()})
}

func (r *Reader) handleTagLine(line string) {
	tag := strings.TrimSpace(line)
	if len(tag) < r.cfg.MinTagLength {
		return
	}

	r.mu.Lock()
	if _, seen := r.tags[tag]; seen {
		r.mu.Unlock()
		return
	}
	r.tags[tag] = struct{}{}
	r.mu.Unlock()

	r.publish(Reading{Kind: KindTag, Tag: tag, At: time.Now()})
}

func (r *Reader) publish(reading Reading) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- reading:
		default:
			// Subscriber is behind; dropping beats stalling the read loop.
		}
	}
}

func (r *Reader) setAdvisory(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advisory = msg
}

// scanEnded transitions SCANNING back to CONNECTED when the loop exits, no
// matter why it exited.
func (r *Reader) scanEnded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateScanning {
		r.state = StateConnected
	}
}
