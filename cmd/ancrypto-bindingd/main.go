package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/abhaynaik-dev/rust-ancrypto/hostbind"
	"github.com/abhaynaik-dev/rust-ancrypto/internal/cmdutil"
	acversion "github.com/abhaynaik-dev/rust-ancrypto/internal/version"
	"github.com/abhaynaik-dev/rust-ancrypto/observability"
	"github.com/abhaynaik-dev/rust-ancrypto/observability/prom"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type stringSliceFlag []string

func (s *stringSliceFlag) String() string { return strings.Join(*s, ",") }

func (s *stringSliceFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type ready struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	Date       string `json:"date"`
	Listen     string `json:"listen"`
	WSPath     string `json:"ws_path"`
	WSURL      string `json:"ws_url"`
	HealthzURL string `json:"healthz_url"`
	StreamAddr string `json:"stream_addr,omitempty"`
	MetricsURL string `json:"metrics_url,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	logger := log.New(stderr, "", log.LstdFlags)

	listen := cmdutil.EnvString("ANCRYPTO_LISTEN", "127.0.0.1:0")
	wsPath := cmdutil.EnvString("ANCRYPTO_WS_PATH", "/codec")
	streamListen := cmdutil.EnvString("ANCRYPTO_STREAM_LISTEN", "")
	metricsListen := cmdutil.EnvString("ANCRYPTO_METRICS_LISTEN", "")
	allowedOrigins := stringSliceFlag(cmdutil.SplitCSVEnv("ANCRYPTO_ALLOW_ORIGIN"))
	allowNoOrigin, err := cmdutil.EnvBool("ANCRYPTO_ALLOW_NO_ORIGIN", true)
	if err != nil {
		fmt.Fprintf(stderr, "invalid ANCRYPTO_ALLOW_NO_ORIGIN: %v\n", err)
		return 2
	}

	fs := flag.NewFlagSet("ancrypto-bindingd", flag.ContinueOnError)
	fs.SetOutput(stderr)

	showVersion := false
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	fs.StringVar(&listen, "listen", listen, "websocket listen address (env: ANCRYPTO_LISTEN)")
	fs.StringVar(&wsPath, "ws-path", wsPath, "websocket path (env: ANCRYPTO_WS_PATH)")
	fs.StringVar(&streamListen, "stream-listen", streamListen, "listen address for the multiplexed stream surface (empty disables) (env: ANCRYPTO_STREAM_LISTEN)")
	fs.StringVar(&metricsListen, "metrics-listen", metricsListen, "listen address for metrics server (empty disables) (env: ANCRYPTO_METRICS_LISTEN)")
	fs.Var(&allowedOrigins, "allow-origin", "allowed Origin value (repeatable): full Origin, hostname, or wildcard hostname (*.example.com) (env: ANCRYPTO_ALLOW_ORIGIN)")
	fs.BoolVar(&allowNoOrigin, "allow-no-origin", allowNoOrigin, "allow requests without Origin header (native host runtimes) (env: ANCRYPTO_ALLOW_NO_ORIGIN)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if showVersion {
		_, _ = fmt.Fprintln(stdout, acversion.String(version, commit, date))
		return 0
	}
	if !strings.HasPrefix(wsPath, "/") {
		fmt.Fprintln(stderr, "--ws-path must start with /")
		return 2
	}
	if len(allowedOrigins) == 0 && !allowNoOrigin {
		fmt.Fprintln(stderr, "no --allow-origin and --allow-no-origin=false: every handshake would be rejected")
		return 2
	}

	codecObs := observability.NewAtomicCodecObserver()
	bindObs := observability.NewAtomicBindObserver()
	svc := &hostbind.Service{Codec: codecObs, Bind: bindObs}

	var metricsSrv *http.Server
	var metricsLn net.Listener
	if metricsListen != "" {
		reg := prom.NewRegistry()
		codecObs.Set(prom.NewCodecObserver(reg))
		bindObs.Set(prom.NewBindObserver(reg))

		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", prom.Handler(reg))
		metricsLn, err = net.Listen("tcp", metricsListen)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		metricsSrv = newHTTPServer(metricsMux)
		go func() {
			if err := metricsSrv.Serve(metricsLn); err != nil && err != http.ErrServerClosed {
				logger.Fatal(err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var streamLn net.Listener
	if streamListen != "" {
		streamLn, err = net.Listen("tcp", streamListen)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		go func() {
			if err := hostbind.ServeListener(ctx, streamLn, svc); err != nil && !errors.Is(err, context.Canceled) {
				logger.Printf("stream surface stopped: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle(wsPath, hostbind.WSHandler(svc, hostbind.WSOptions{
		AllowedOrigins: allowedOrigins,
		AllowNoOrigin:  allowNoOrigin,
	}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ln, err := net.Listen("tcp", listen)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	srv := newHTTPServer(mux)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Fatal(err)
		}
	}()

	bindAddr := ln.Addr().String()
	out := ready{
		Version:    version,
		Commit:     commit,
		Date:       date,
		Listen:     bindAddr,
		WSPath:     wsPath,
		WSURL:      "ws://" + bindAddr + wsPath,
		HealthzURL: "http://" + bindAddr + "/healthz",
	}
	if streamLn != nil {
		out.StreamAddr = streamLn.Addr().String()
	}
	if metricsLn != nil {
		out.MetricsURL = "http://" + metricsLn.Addr().String() + "/metrics"
	}
	_ = json.NewEncoder(stdout).Encode(out)

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	cancel()
	_ = srv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return 0
}
