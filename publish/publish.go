// Package publish copies the compiled mobile binding library into an app
// project's jniLibs layout, one shared object per ABI target.
package publish

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhaynaik-dev/rust-ancrypto/internal/cmdutil"
	"github.com/abhaynaik-dev/rust-ancrypto/internal/securefile"
)

// Target maps a build target to the jniLibs ABI folder the app expects.
type Target struct {
	Triple string `json:"triple"` // Build target name, e.g. "aarch64-linux-android".
	ABI    string `json:"abi"`    // jniLibs folder name, e.g. "arm64-v8a".
}

// DefaultTargets covers the standard Android ABI set.
var DefaultTargets = []Target{
	{Triple: "aarch64-linux-android", ABI: "arm64-v8a"},
	{Triple: "armv7-linux-androideabi", ABI: "armeabi-v7a"},
	{Triple: "i686-linux-android", ABI: "x86"},
	{Triple: "x86_64-linux-android", ABI: "x86_64"},
}

// DefaultLibName is the shared object produced by the binding build.
const DefaultLibName = "libancrypto.so"

// Publisher copies release artifacts from a build output tree into an app
// project. All fields except BuildDir and AppDir have working defaults.
type Publisher struct {
	BuildDir  string   // Root of the build output tree (<build>/<triple>/release/<lib>).
	AppDir    string   // Root of the app project (<app>/app/src/main/jniLibs/<abi>/<lib>).
	LibName   string   // Shared object file name (default DefaultLibName).
	Targets   []Target // Targets to publish (default DefaultTargets).
	Overwrite bool     // Replace artifacts already present in the app project.
}

// Artifact describes one published shared object.
type Artifact struct {
	Triple string `json:"triple"`
	ABI    string `json:"abi"`
	Source string `json:"source"`
	Dest   string `json:"dest"`
	Bytes  int64  `json:"bytes"`
}

func (p *Publisher) libName() string {
	if p.LibName != "" {
		return p.LibName
	}
	return DefaultLibName
}

func (p *Publisher) targets() []Target {
	if len(p.Targets) != 0 {
		return p.Targets
	}
	return DefaultTargets
}

// SourcePath returns where the build places the artifact for a target.
func (p *Publisher) SourcePath(t Target) string {
	return filepath.Join(p.BuildDir, t.Triple, "release", p.libName())
}

// DestPath returns where the app project expects the artifact for a target.
func (p *Publisher) DestPath(t Target) string {
	return filepath.Join(p.AppDir, "app", "src", "main", "jniLibs", t.ABI, p.libName())
}

// Publish copies every configured target's artifact into the app project.
//
// A missing source artifact fails the whole run before anything is written,
// so the app project never ends up with a partial ABI set.
func (p *Publisher) Publish() ([]Artifact, error) {
	if p.BuildDir == "" {
		return nil, &cmdutil.UsageError{Msg: "missing build dir"}
	}
	if p.AppDir == "" {
		return nil, &cmdutil.UsageError{Msg: "missing app project dir"}
	}
	targets := p.targets()
	if len(targets) == 0 {
		return nil, &cmdutil.UsageError{Msg: "no targets to publish"}
	}
	for _, t := range targets {
		src := p.SourcePath(t)
		if _, err := os.Stat(src); err != nil {
			return nil, fmt.Errorf("missing artifact for target %s: %w", t.Triple, err)
		}
		if err := cmdutil.RefuseOverwrite(p.DestPath(t), p.Overwrite); err != nil {
			return nil, err
		}
	}

	out := make([]Artifact, 0, len(targets))
	for _, t := range targets {
		src := p.SourcePath(t)
		dest := p.DestPath(t)
		b, err := os.ReadFile(src)
		if err != nil {
			return out, err
		}
		if err := securefile.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return out, err
		}
		if err := securefile.WriteFileAtomic(dest, b, 0o644); err != nil {
			return out, err
		}
		out = append(out, Artifact{
			Triple: t.Triple,
			ABI:    t.ABI,
			Source: src,
			Dest:   dest,
			Bytes:  int64(len(b)),
		})
	}
	return out, nil
}
