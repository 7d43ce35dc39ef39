// Package fix implements a FIX 4.4 wire codec: tag=value frames with
// derived body-length and modulo-256 checksum fields, serialization,
// parsing, and market-data/order conversion helpers. Grounded in hot-path
// shape on other_examples/gurre-prime-fix-md-go (dispatch by MsgType,
// zero-allocation field extraction) and in tag/message-type vocabulary on
// the teacher's cmd/fix-benchmark/main.go and backend/pkg/fix/cpp_codec.go
// — reimplemented in pure Go, since the teacher's own codec is a cgo bridge
// to a C++ parser and spec.md requires an in-module codec.
package fix

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// SOH is the FIX field delimiter, byte 0x01.
const SOH = 0x01

// BeginString is the protocol identifier carried in every frame.
const BeginString = "FIX.4.4"

// Reserved tags, derived on every serialization and never user-set.
const (
	TagBeginString = 8
	TagBodyLength  = 9
	TagCheckSum    = 10
)

// Header/body tags used throughout the codec and session engine.
const (
	TagMsgType      = 35
	TagSenderCompID = 49
	TagTargetCompID = 56
	TagMsgSeqNum    = 34
	TagSendingTime  = 52

	TagClOrdID  = 11
	TagSymbol   = 55
	TagSide     = 54
	TagOrderQty = 38
	TagPrice    = 44
	TagOrdType  = 40

	TagOrderID   = 37
	TagExecID    = 17
	TagExecType  = 150
	TagOrdStatus = 39
	TagLastPx    = 31
	TagLastQty   = 32

	TagBidPx    = 132
	TagOfferPx  = 133
	TagBidSize  = 134
	TagOfferSize = 135

	TagTestReqID = 112
)

// Message-type values, per spec.md §6.
const (
	MsgTypeLogon                       = "A"
	MsgTypeLogout                      = "5"
	MsgTypeHeartbeat                   = "0"
	MsgTypeTestRequest                 = "1"
	MsgTypeNewOrderSingle              = "D"
	MsgTypeOrderCancelRequest          = "F"
	MsgTypeExecutionReport             = "8"
	MsgTypeMarketDataRequest           = "V"
	MsgTypeMarketDataSnapshot          = "W"
	MsgTypeMarketDataIncrementalRefresh = "X"
)

// Side values as carried on the wire (tag 54).
const (
	WireSideBuy  = "1"
	WireSideSell = "2"
)

// Frame is a tag=value mapping that records the order tags were Set.
// Serialization does not follow that order: it always emits BeginString,
// BodyLength, MsgType first, the remaining tags in ascending numeric order,
// and CheckSum last.
type Frame struct {
	order  []int
	fields map[int]string
}

// NewFrame constructs an empty frame.
func NewFrame() *Frame {
	return &Frame{fields: make(map[int]string)}
}

// Set assigns a string value to tag. Setting a reserved tag (BeginString,
// BodyLength, CheckSum) panics: those are regenerated on every
// serialization and must never be caller-set, per spec.md's data model.
func (f *Frame) Set(tag int, value string) *Frame {
	if tag == TagBeginString || tag == TagBodyLength || tag == TagCheckSum {
		panic(fmt.Sprintf("fix: tag %d is reserved and derived on serialization", tag))
	}
	if _, exists := f.fields[tag]; !exists {
		f.order = append(f.order, tag)
	}
	f.fields[tag] = value
	return f
}

// SetInt assigns an integer value, formatted without leading zeros.
func (f *Frame) SetInt(tag int, value int64) *Frame {
	return f.Set(tag, strconv.FormatInt(value, 10))
}

// SetPrice assigns a price value formatted as fixed-point with two
// fractional digits, via shopspring/decimal to avoid float round-trip
// drift in a field that feeds the checksum.
func (f *Frame) SetPrice(tag int, value float64) *Frame {
	d := decimal.NewFromFloat(value).Round(2)
	return f.Set(tag, d.StringFixed(2))
}

// Get returns the string value of tag and whether it was present.
func (f *Frame) Get(tag int) (string, bool) {
	v, ok := f.fields[tag]
	return v, ok
}

// GetInt parses the value of tag as an integer.
func (f *Frame) GetInt(tag int) (int64, bool) {
	v, ok := f.fields[tag]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	return n, err == nil
}

// GetFloat parses the value of tag as a float.
func (f *Frame) GetFloat(tag int) (float64, bool) {
	v, ok := f.fields[tag]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	return n, err == nil
}

// MsgType returns tag 35's value, or "" if unset.
func (f *Frame) MsgType() string {
	v, _ := f.Get(TagMsgType)
	return v
}

// IsValid reports whether the frame carries the three required tags: the
// protocol identifier, message-type, and sequence number. Mirrors the C++
// ground truth FixMessage::is_valid() (fix_protocol.cpp), which checks
// has_field(BEGIN_STRING) && has_field(MSG_TYPE) && has_field(MSG_SEQ_NUM).
func (f *Frame) IsValid() bool {
	_, hasBegin := f.fields[TagBeginString]
	_, hasSeq := f.fields[TagMsgSeqNum]
	return hasBegin && f.MsgType() != "" && hasSeq
}

// bodyTags returns every non-reserved tag in deterministic ascending
// numeric order, except MsgType which always comes first (spec.md §4.H
// field order 3, implementer's choice for the rest).
func (f *Frame) bodyTags() []int {
	tags := make([]int, 0, len(f.order))
	for _, t := range f.order {
		if t == TagMsgType || t == TagBeginString || t == TagBodyLength || t == TagCheckSum {
			continue
		}
		tags = append(tags, t)
	}
	sort.Ints(tags)
	return tags
}
