package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhaynaik-dev/rust-ancrypto/acerrors"
	"github.com/abhaynaik-dev/rust-ancrypto/codec"
	acversion "github.com/abhaynaik-dev/rust-ancrypto/internal/version"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	showVersion := false
	doEncode := false
	doDecode := false
	strict := false

	fs := flag.NewFlagSet("ancrypto-codec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	fs.BoolVar(&doEncode, "encode", false, "base64-encode the input text")
	fs.BoolVar(&doDecode, "decode", false, "decode the input text from base64")
	fs.BoolVar(&strict, "strict", false, "with --decode, fail with the error code instead of printing empty text")
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
	if doEncode == doDecode {
		fmt.Fprintln(stderr, "exactly one of --encode or --decode is required")
		return 2
	}

	text, err := inputText(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if doEncode {
		_, _ = fmt.Fprintln(stdout, codec.Encode(text))
		return 0
	}
	if strict {
		out, err := codec.DecodeStrict(text)
		if err != nil {
			fmt.Fprintln(stderr, acerrors.ClassifyCode(err, acerrors.CodeInternal))
			return 1
		}
		_, _ = fmt.Fprintln(stdout, out)
		return 0
	}
	_, _ = fmt.Fprintln(stdout, codec.Decode(text))
	return 0
}

// inputText takes the first positional argument, or the whole of stdin when
// no argument is given. A trailing newline from piped input is stripped so
// `echo text | ancrypto-codec --encode` round-trips cleanly.
func inputText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r"), nil
}
