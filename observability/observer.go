package observability

import (
	"sync"
	"sync/atomic"
)

type DecodeResult string

const (
	DecodeResultOK            DecodeResult = "ok"
	DecodeResultInvalidBase64 DecodeResult = "invalid_base64"
	DecodeResultInvalidUTF8   DecodeResult = "invalid_utf8"
)

type RequestResult string

const (
	RequestResultOK         RequestResult = "ok"
	RequestResultDecodeFail RequestResult = "decode_fail"
	RequestResultBadRequest RequestResult = "bad_request"
)

type FrameDirection string

const (
	FrameRead  FrameDirection = "read"
	FrameWrite FrameDirection = "write"
)

// CodecObserver receives codec-level metric events.
type CodecObserver interface {
	Encode(inputBytes int)
	Decode(result DecodeResult)
}

// BindObserver receives host-binding metric events.
type BindObserver interface {
	ConnCount(n int64)
	Request(op string, result RequestResult)
	FrameError(direction FrameDirection)
}

type noopCodecObserver struct{}

func (noopCodecObserver) Encode(int)          {}
func (noopCodecObserver) Decode(DecodeResult) {}

type noopBindObserver struct{}

func (noopBindObserver) ConnCount(int64)               {}
func (noopBindObserver) Request(string, RequestResult) {}
func (noopBindObserver) FrameError(FrameDirection)     {}

// NoopCodecObserver is a zero-cost observer used when metrics are disabled.
var NoopCodecObserver CodecObserver = noopCodecObserver{}

// NoopBindObserver is a zero-cost observer used when metrics are disabled.
var NoopBindObserver BindObserver = noopBindObserver{}

// AtomicCodecObserver swaps its delegate at runtime.
type AtomicCodecObserver struct {
	once sync.Once
	v    atomic.Value
}

type codecObserverHolder struct {
	obs CodecObserver
}

// NewAtomicCodecObserver returns an initialized atomic observer.
func NewAtomicCodecObserver() *AtomicCodecObserver {
	a := &AtomicCodecObserver{}
	a.once.Do(func() { a.v.Store(&codecObserverHolder{obs: NoopCodecObserver}) })
	return a
}

// Set replaces the delegate, falling back to the no-op observer on nil.
func (a *AtomicCodecObserver) Set(obs CodecObserver) {
	if obs == nil {
		obs = NoopCodecObserver
	}
	a.once.Do(func() { a.v.Store(&codecObserverHolder{obs: NoopCodecObserver}) })
	a.v.Store(&codecObserverHolder{obs: obs})
}

func (a *AtomicCodecObserver) load() CodecObserver {
	a.once.Do(func() { a.v.Store(&codecObserverHolder{obs: NoopCodecObserver}) })
	return a.v.Load().(*codecObserverHolder).obs
}

func (a *AtomicCodecObserver) Encode(inputBytes int)      { a.load().Encode(inputBytes) }
func (a *AtomicCodecObserver) Decode(result DecodeResult) { a.load().Decode(result) }

// AtomicBindObserver swaps its delegate at runtime.
type AtomicBindObserver struct {
	once sync.Once
	v    atomic.Value
}

type bindObserverHolder struct {
	obs BindObserver
}

// NewAtomicBindObserver returns an initialized atomic observer.
func NewAtomicBindObserver() *AtomicBindObserver {
	a := &AtomicBindObserver{}
	a.once.Do(func() { a.v.Store(&bindObserverHolder{obs: NoopBindObserver}) })
	return a
}

// Set replaces the delegate, falling back to the no-op observer on nil.
func (a *AtomicBindObserver) Set(obs BindObserver) {
	if obs == nil {
		obs = NoopBindObserver
	}
	a.once.Do(func() { a.v.Store(&bindObserverHolder{obs: NoopBindObserver}) })
	a.v.Store(&bindObserverHolder{obs: obs})
}

func (a *AtomicBindObserver) load() BindObserver {
	a.once.Do(func() { a.v.Store(&bindObserverHolder{obs: NoopBindObserver}) })
	return a.v.Load().(*bindObserverHolder).obs
}

func (a *AtomicBindObserver) ConnCount(n int64) { a.load().ConnCount(n) }
func (a *AtomicBindObserver) Request(op string, result RequestResult) {
	a.load().Request(op, result)
}
func (a *AtomicBindObserver) FrameError(direction FrameDirection) {
	a.load().FrameError(direction)
}
