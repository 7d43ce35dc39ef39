package fixsession

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfeed/hftcore/pkg/fix"
)

func newTestSession(emitted *[][]byte) *Session {
	return New(Config{
		SenderCompID: "CLIENT",
		TargetCompID: "EXCHANGE",
		Emit: func(raw []byte) {
			*emitted = append(*emitted, raw)
		},
	})
}

func TestLogonTransitionsToLoggedOn(t *testing.T) {
	var emitted [][]byte
	s := newTestSession(&emitted)

	assert.False(t, s.LoggedOn())
	s.Logon()
	assert.True(t, s.LoggedOn())
	require.Len(t, emitted, 1)

	f := fix.Parse(emitted[0])
	assert.Equal(t, fix.MsgTypeLogon, f.MsgType())
}

func TestLogonIsIdempotent(t *testing.T) {
	var emitted [][]byte
	s := newTestSession(&emitted)
	s.Logon()
	s.Logon()
	assert.Len(t, emitted, 1)
}

func TestLogoutTransitionsBackAndIsIdempotent(t *testing.T) {
	var emitted [][]byte
	s := newTestSession(&emitted)
	s.Logon()
	s.Logout()
	assert.False(t, s.LoggedOn())

	s.Logout()
	assert.Len(t, emitted, 2) // logon + logout, second logout is a no-op
}

func TestSendMessageStampsSequenceSenderTarget(t *testing.T) {
	var emitted [][]byte
	s := newTestSession(&emitted)

	f := fix.NewFrame()
	f.Set(fix.TagMsgType, fix.MsgTypeNewOrderSingle)
	s.SendMessage(f)

	parsed := fix.Parse(emitted[0])
	sender, _ := parsed.Get(fix.TagSenderCompID)
	target, _ := parsed.Get(fix.TagTargetCompID)
	seq, _ := parsed.GetInt(fix.TagMsgSeqNum)
	assert.Equal(t, "CLIENT", sender)
	assert.Equal(t, "EXCHANGE", target)
	assert.Equal(t, int64(1), seq)
}

func TestSequenceNumbersAreMonotonicAndNeverReused(t *testing.T) {
	var emitted [][]byte
	s := newTestSession(&emitted)

	for i := 0; i < 5; i++ {
		f := fix.NewFrame()
		f.Set(fix.TagMsgType, fix.MsgTypeHeartbeat)
		s.SendMessage(f)
	}

	var seqs []int64
	for _, raw := range emitted {
		parsed := fix.Parse(raw)
		seq, _ := parsed.GetInt(fix.TagMsgSeqNum)
		seqs = append(seqs, seq)
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, seqs)
}

func TestProcessMessageDropsMalformedFrameAndIncrementsErrorCount(t *testing.T) {
	var emitted [][]byte
	s := newTestSession(&emitted)

	s.ProcessMessage([]byte("not a fix frame"))
	assert.Equal(t, uint64(1), s.ErrorCount())
	assert.False(t, s.LoggedOn())
}

func TestProcessMessageUnknownTypeIsNonFatal(t *testing.T) {
	var emitted [][]byte
	s := newTestSession(&emitted)

	f := fix.NewFrame()
	f.Set(fix.TagMsgType, "Z")
	f.SetInt(fix.TagMsgSeqNum, 1)
	s.ProcessMessage(fix.Serialize(f))

	assert.Equal(t, uint64(0), s.ErrorCount())
}

func TestProcessMessageTestRequestTriggersHeartbeat(t *testing.T) {
	var emitted [][]byte
	s := newTestSession(&emitted)

	req := fix.NewFrame()
	req.Set(fix.TagMsgType, fix.MsgTypeTestRequest)
	req.Set(fix.TagTestReqID, "REQ1")
	req.SetInt(fix.TagMsgSeqNum, 1)
	s.ProcessMessage(fix.Serialize(req))

	require.Len(t, emitted, 1)
	hb := fix.Parse(emitted[0])
	assert.Equal(t, fix.MsgTypeHeartbeat, hb.MsgType())
	reqID, _ := hb.Get(fix.TagTestReqID)
	assert.Equal(t, "REQ1", reqID)
}

func TestOnMessageOverridesDefaultHandler(t *testing.T) {
	var emitted [][]byte
	s := newTestSession(&emitted)

	var called bool
	s.OnMessage(fix.MsgTypeLogon, func(f *fix.Frame) { called = true })

	req := fix.NewFrame()
	req.Set(fix.TagMsgType, fix.MsgTypeLogon)
	req.SetInt(fix.TagMsgSeqNum, 1)
	s.ProcessMessage(fix.Serialize(req))

	assert.True(t, called)
	assert.False(t, s.LoggedOn()) // overridden handler owns the flag now
}
