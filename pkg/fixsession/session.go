// Package fixsession implements the per-peer FIX session state machine on
// top of pkg/fix: sequence-number assignment, logon/logout tracking, and a
// type-keyed dispatch table. Grounded in dispatch-table shape on
// other_examples/gurre-prime-fix-md-go's message-type switch and in
// session-lifecycle naming on the teacher's backend/pkg/fix session helpers.
package fixsession

import (
	"sync/atomic"

	"github.com/luxfi/log"

	"github.com/luxfeed/hftcore/pkg/fix"
)

// Handler processes one inbound frame after dispatch.
type Handler func(f *fix.Frame)

// Emit sends a serialized frame to the peer (a socket write, a test double).
type Emit func(raw []byte)

// Session is a single peer connection's FIX state: not safe for concurrent
// use from multiple goroutines, per spec.md's single-writer session model.
type Session struct {
	senderCompID string
	targetCompID string

	logger log.Logger
	emit   Emit

	loggedOn bool
	seq      uint64

	handlers map[string]Handler

	errors atomic.Uint64
}

// Config configures Session construction.
type Config struct {
	SenderCompID string
	TargetCompID string
	// Emit is called with each serialized outbound frame.
	Emit Emit
	// Logger defaults to log.Root().New("module", "fixsession") when nil.
	Logger log.Logger
}

// New constructs a Session in NOT_LOGGED_ON state with the default LOGON,
// LOGOUT, and TEST_REQUEST handlers installed. Sequence numbers start
// unassigned; the first SendMessage call stamps 1.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Root().New("module", "fixsession")
	}
	s := &Session{
		senderCompID: cfg.SenderCompID,
		targetCompID: cfg.TargetCompID,
		logger:       logger,
		emit:         cfg.Emit,
		handlers:     make(map[string]Handler),
	}
	s.handlers[fix.MsgTypeLogon] = s.handleLogon
	s.handlers[fix.MsgTypeLogout] = s.handleLogout
	s.handlers[fix.MsgTypeTestRequest] = s.handleTestRequest
	return s
}

// OnMessage registers or replaces the handler for msgType. Overriding
// MsgTypeLogon/MsgTypeLogout/MsgTypeTestRequest is allowed; the caller then
// owns the session flag transitions those default handlers otherwise
// perform.
func (s *Session) OnMessage(msgType string, h Handler) {
	s.handlers[msgType] = h
}

// LoggedOn reports the current session flag.
func (s *Session) LoggedOn() bool {
	return s.loggedOn
}

// ErrorCount returns how many inbound frames were dropped as malformed
// (failing IsValid). Frames of an unknown message type are not counted.
func (s *Session) ErrorCount() uint64 {
	return s.errors.Load()
}

// Logon constructs and emits a LOGON frame with the next sequence number,
// then transitions to LOGGED_ON. Idempotent when already logged on: no
// frame is re-sent.
func (s *Session) Logon() {
	if s.loggedOn {
		return
	}
	f := fix.NewFrame()
	f.Set(fix.TagMsgType, fix.MsgTypeLogon)
	s.SendMessage(f)
	s.loggedOn = true
}

// Logout emits LOGOUT and transitions to NOT_LOGGED_ON. Idempotent when
// already logged out.
func (s *Session) Logout() {
	if !s.loggedOn {
		return
	}
	f := fix.NewFrame()
	f.Set(fix.TagMsgType, fix.MsgTypeLogout)
	s.SendMessage(f)
	s.loggedOn = false
}

// SendMessage stamps any missing sequence, sender, and target tags, then
// serializes and emits the frame. Sequence numbers are monotonic and never
// reused within the session's lifetime.
func (s *Session) SendMessage(f *fix.Frame) {
	if _, ok := f.Get(fix.TagSenderCompID); !ok {
		f.Set(fix.TagSenderCompID, s.senderCompID)
	}
	if _, ok := f.Get(fix.TagTargetCompID); !ok {
		f.Set(fix.TagTargetCompID, s.targetCompID)
	}
	if _, ok := f.Get(fix.TagMsgSeqNum); !ok {
		s.seq++
		f.SetInt(fix.TagMsgSeqNum, int64(s.seq))
	}
	raw := fix.Serialize(f)
	if s.emit != nil {
		s.emit(raw)
	}
}

// ProcessMessage parses raw, validates it, and dispatches to the registered
// handler for its message type. A malformed frame (fails IsValid) is
// dropped with an error-counter increment and no state change. An unknown
// message type is logged and dropped, also without state change; per
// spec.md this is a non-fatal condition, not an error-counter increment.
func (s *Session) ProcessMessage(raw []byte) {
	f := fix.Parse(raw)
	if !f.IsValid() {
		s.errors.Add(1)
		s.logger.Warn("dropping malformed FIX frame")
		return
	}
	h, ok := s.handlers[f.MsgType()]
	if !ok {
		s.logger.Warn("unknown FIX message type", "type", f.MsgType())
		return
	}
	h(f)
}

func (s *Session) handleLogon(f *fix.Frame) {
	s.loggedOn = true
}

func (s *Session) handleLogout(f *fix.Frame) {
	s.loggedOn = false
}

func (s *Session) handleTestRequest(f *fix.Frame) {
	hb := fix.NewFrame()
	hb.Set(fix.TagMsgType, fix.MsgTypeHeartbeat)
	if reqID, ok := f.Get(fix.TagTestReqID); ok {
		hb.Set(fix.TagTestReqID, reqID)
	}
	s.SendMessage(hb)
}
