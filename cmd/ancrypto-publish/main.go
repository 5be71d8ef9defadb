package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhaynaik-dev/rust-ancrypto/internal/cmdutil"
	acversion "github.com/abhaynaik-dev/rust-ancrypto/internal/version"
	"github.com/abhaynaik-dev/rust-ancrypto/publish"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type output struct {
	Version   string             `json:"version"`
	Commit    string             `json:"commit"`
	Date      string             `json:"date"`
	Artifacts []publish.Artifact `json:"artifacts"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	showVersion := false

	buildDir := cmdutil.EnvString("ANCRYPTO_BUILD_DIR", "")
	appDir := cmdutil.EnvString("ANCRYPTO_APP_DIR", "")
	libName := cmdutil.EnvString("ANCRYPTO_LIB_NAME", publish.DefaultLibName)
	var targetFilter string
	var overwrite bool

	fs := flag.NewFlagSet("ancrypto-publish", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	fs.StringVar(&buildDir, "build-dir", buildDir, "build output tree containing <target>/release/<lib> (required) (env: ANCRYPTO_BUILD_DIR)")
	fs.StringVar(&appDir, "app-dir", appDir, "app project root receiving app/src/main/jniLibs/<abi>/<lib> (required) (env: ANCRYPTO_APP_DIR)")
	fs.StringVar(&libName, "lib-name", libName, "shared object file name (env: ANCRYPTO_LIB_NAME)")
	fs.StringVar(&targetFilter, "target", "", "publish only the given build targets (comma-separated; default all)")
	fs.BoolVar(&overwrite, "overwrite", false, "replace artifacts already present in the app project")
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
	if strings.TrimSpace(buildDir) == "" || strings.TrimSpace(appDir) == "" {
		fmt.Fprintln(stderr, "missing --build-dir or --app-dir")
		return 2
	}

	targets, err := selectTargets(targetFilter)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	p := &publish.Publisher{
		BuildDir:  buildDir,
		AppDir:    appDir,
		LibName:   libName,
		Targets:   targets,
		Overwrite: overwrite,
	}
	arts, err := p.Publish()
	if err != nil {
		fmt.Fprintln(stderr, err)
		if cmdutil.IsUsage(err) {
			return 2
		}
		return 1
	}
	if err := cmdutil.WriteJSON(stdout, output{
		Version:   version,
		Commit:    commit,
		Date:      date,
		Artifacts: arts,
	}, true); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// selectTargets narrows the default target set to the requested triples.
func selectTargets(filter string) ([]publish.Target, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}
	byTriple := make(map[string]publish.Target, len(publish.DefaultTargets))
	for _, t := range publish.DefaultTargets {
		byTriple[t.Triple] = t
	}
	var out []publish.Target
	for _, raw := range strings.Split(filter, ",") {
		triple := strings.TrimSpace(raw)
		if triple == "" {
			continue
		}
		t, ok := byTriple[triple]
		if !ok {
			return nil, fmt.Errorf("unknown target %q", triple)
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, errors.New("empty --target")
	}
	return out, nil
}
