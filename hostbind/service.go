package hostbind

import (
	"github.com/abhaynaik-dev/rust-ancrypto/acerrors"
	"github.com/abhaynaik-dev/rust-ancrypto/codec"
	"github.com/abhaynaik-dev/rust-ancrypto/observability"
)

// Service dispatches binding requests to the codec.
//
// Handlers are pure per-request; the only shared state is the observers, so a
// single Service is safe for any number of concurrent surfaces.
type Service struct {
	Codec observability.CodecObserver // Optional codec metrics sink.
	Bind  observability.BindObserver  // Optional binding metrics sink.
}

func (s *Service) codecObs() observability.CodecObserver {
	if s.Codec != nil {
		return s.Codec
	}
	return observability.NoopCodecObserver
}

func (s *Service) bindObs() observability.BindObserver {
	if s.Bind != nil {
		return s.Bind
	}
	return observability.NoopBindObserver
}

// Handle executes one codec invocation and maps the outcome onto the wire.
func (s *Service) Handle(req Request) Response {
	switch req.Op {
	case OpEncode:
		s.codecObs().Encode(len(req.Text))
		s.bindObs().Request(OpEncode, observability.RequestResultOK)
		return Response{Text: codec.Encode(req.Text)}
	case OpDecode:
		out, err := codec.DecodeStrict(req.Text)
		if err != nil {
			code := acerrors.ClassifyCode(err, acerrors.CodeInternal)
			s.codecObs().Decode(decodeResult(code))
			s.bindObs().Request(OpDecode, observability.RequestResultDecodeFail)
			// Compat contract: failures surface as empty text, with the
			// reason alongside for strict hosts.
			return Response{Text: "", Code: string(code)}
		}
		s.codecObs().Decode(observability.DecodeResultOK)
		s.bindObs().Request(OpDecode, observability.RequestResultOK)
		return Response{Text: out}
	default:
		s.bindObs().Request(req.Op, observability.RequestResultBadRequest)
		return Response{Code: string(acerrors.CodeBadRequest)}
	}
}

func decodeResult(code acerrors.Code) observability.DecodeResult {
	switch code {
	case acerrors.CodeInvalidUTF8:
		return observability.DecodeResultInvalidUTF8
	default:
		return observability.DecodeResultInvalidBase64
	}
}
