package prom

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhaynaik-dev/rust-ancrypto/observability"
)

// NewRegistry returns a fresh Prometheus registry.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// Handler returns a Prometheus HTTP handler bound to the registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// CodecObserver exports codec metrics to Prometheus.
type CodecObserver struct {
	encodeTotal prometheus.Counter
	encodeBytes prometheus.Counter
	decodeTotal *prometheus.CounterVec
}

// NewCodecObserver registers codec metrics on the registry.
func NewCodecObserver(reg *prometheus.Registry) *CodecObserver {
	o := &CodecObserver{
		encodeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ancrypto_codec_encode_total",
			Help: "Encode operations performed.",
		}),
		encodeBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ancrypto_codec_encode_input_bytes_total",
			Help: "Total input bytes passed to encode.",
		}),
		decodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ancrypto_codec_decode_total",
			Help: "Decode operations by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		o.encodeTotal,
		o.encodeBytes,
		o.decodeTotal,
	)
	return o
}

func (o *CodecObserver) Encode(inputBytes int) {
	o.encodeTotal.Inc()
	o.encodeBytes.Add(float64(inputBytes))
}

func (o *CodecObserver) Decode(result observability.DecodeResult) {
	o.decodeTotal.WithLabelValues(string(result)).Inc()
}

// BindObserver exports host-binding metrics to Prometheus.
type BindObserver struct {
	connGauge     prometheus.Gauge
	requestTotal  *prometheus.CounterVec
	frameErrTotal *prometheus.CounterVec
}

// NewBindObserver registers binding metrics on the registry.
func NewBindObserver(reg *prometheus.Registry) *BindObserver {
	o := &BindObserver{
		connGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ancrypto_bind_connections",
			Help: "Current host connection count.",
		}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ancrypto_bind_requests_total",
			Help: "Binding requests by op and result.",
		}, []string{"op", "result"}),
		frameErrTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ancrypto_bind_frame_errors_total",
			Help: "Binding frame errors by direction.",
		}, []string{"direction"}),
	}
	reg.MustRegister(
		o.connGauge,
		o.requestTotal,
		o.frameErrTotal,
	)
	return o
}

func (o *BindObserver) ConnCount(n int64) {
	o.connGauge.Set(float64(n))
}

func (o *BindObserver) Request(op string, result observability.RequestResult) {
	o.requestTotal.WithLabelValues(op, string(result)).Inc()
}

func (o *BindObserver) FrameError(direction observability.FrameDirection) {
	o.frameErrTotal.WithLabelValues(string(direction)).Inc()
}
