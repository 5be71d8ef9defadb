package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhaynaik-dev/rust-ancrypto/internal/cmdutil"
)

func writeArtifact(t *testing.T, buildDir string, triple string, lib string, content string) {
	t.Helper()
	dir := filepath.Join(buildDir, triple, "release")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, lib), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPublishCopiesAllTargets(t *testing.T) {
	buildDir := t.TempDir()
	appDir := t.TempDir()
	for _, tgt := range DefaultTargets {
		writeArtifact(t, buildDir, tgt.Triple, DefaultLibName, "so:"+tgt.Triple)
	}

	p := &Publisher{BuildDir: buildDir, AppDir: appDir}
	arts, err := p.Publish()
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(arts) != len(DefaultTargets) {
		t.Fatalf("expected %d artifacts, got %d", len(DefaultTargets), len(arts))
	}
	for i, tgt := range DefaultTargets {
		dest := filepath.Join(appDir, "app", "src", "main", "jniLibs", tgt.ABI, DefaultLibName)
		b, err := os.ReadFile(dest)
		if err != nil {
			t.Fatalf("read %s: %v", dest, err)
		}
		if string(b) != "so:"+tgt.Triple {
			t.Fatalf("wrong content for %s: %q", tgt.ABI, b)
		}
		if arts[i].ABI != tgt.ABI || arts[i].Bytes != int64(len(b)) {
			t.Fatalf("unexpected artifact record: %#v", arts[i])
		}
	}
}

func TestPublishFailsBeforeWritingOnMissingArtifact(t *testing.T) {
	buildDir := t.TempDir()
	appDir := t.TempDir()
	// Only the first target's artifact exists.
	writeArtifact(t, buildDir, DefaultTargets[0].Triple, DefaultLibName, "so")

	p := &Publisher{BuildDir: buildDir, AppDir: appDir}
	_, err := p.Publish()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), DefaultTargets[1].Triple) {
		t.Fatalf("error should name the missing target: %v", err)
	}
	// Nothing may be written for the target that did exist.
	if _, err := os.Stat(p.DestPath(DefaultTargets[0])); err == nil {
		t.Fatal("partial publish detected")
	}
}

func TestPublishOverwriteGuard(t *testing.T) {
	buildDir := t.TempDir()
	appDir := t.TempDir()
	tgt := Target{Triple: "aarch64-linux-android", ABI: "arm64-v8a"}
	writeArtifact(t, buildDir, tgt.Triple, DefaultLibName, "new")

	p := &Publisher{BuildDir: buildDir, AppDir: appDir, Targets: []Target{tgt}}
	dest := p.DestPath(tgt)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := p.Publish(); !cmdutil.IsUsage(err) {
		t.Fatalf("expected usage error, got %v", err)
	}

	p.Overwrite = true
	if _, err := p.Publish(); err != nil {
		t.Fatalf("publish with overwrite: %v", err)
	}
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "new" {
		t.Fatalf("artifact not replaced: %q", b)
	}
}

func TestPublishRequiresDirs(t *testing.T) {
	if _, err := (&Publisher{AppDir: "x"}).Publish(); !cmdutil.IsUsage(err) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if _, err := (&Publisher{BuildDir: "x"}).Publish(); !cmdutil.IsUsage(err) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
