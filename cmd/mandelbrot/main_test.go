package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/mandelbrot/input"
)

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"--version"}, &out); code != 0 {
		t.Errorf("run(--version) = %d, want 0", code)
	}
	if !strings.Contains(out.String(), "mandelbrot version") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"--help"}, &out); code != 0 {
		t.Errorf("run(--help) = %d, want 0", code)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tests := [][]string{
		{"--zoom=0"},
		{"--sensitivity", "2"},
		{"--precision", "f16"},
		{"--config", "/nonexistent/mandelbrot.yaml"},
	}
	for _, args := range tests {
		var out bytes.Buffer
		if code := run(args, &out); code != 1 {
			t.Errorf("run(%v) = %d, want 1", args, code)
		}
		if !strings.Contains(out.String(), "Error:") {
			t.Errorf("run(%v) output %q has no error", args, out.String())
		}
	}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		in   gpucontext.Key
		want input.Key
	}{
		{gpucontext.KeyEscape, input.KeyEscape},
		{gpucontext.KeyF11, input.KeyF11},
		{gpucontext.KeyC, input.KeyC},
		{gpucontext.KeyV, input.KeyV},
		{gpucontext.KeyR, input.KeyR},
		{gpucontext.KeySpace, input.KeyUnknown},
	}
	for _, tt := range tests {
		if got := mapKey(tt.in); got != tt.want {
			t.Errorf("mapKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMapButton(t *testing.T) {
	if got := mapButton(gpucontext.MouseButtonLeft); got != input.ButtonPrimary {
		t.Errorf("mapButton(left) = %v, want ButtonPrimary", got)
	}
	if got := mapButton(gpucontext.MouseButtonRight); got != input.ButtonSecondary {
		t.Errorf("mapButton(right) = %v, want ButtonSecondary", got)
	}
}

func TestScrollDirection(t *testing.T) {
	if scrollDelta(1) >= 0 {
		t.Error("wheel up must zoom in (negative delta)")
	}
}

func TestRunSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.png")
	var out bytes.Buffer
	if code := run([]string{"--snapshot", path, "-w", "32", "-H", "24"}, &out); code != 0 {
		t.Fatalf("run(--snapshot) = %d, output:\n%s", code, out.String())
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("snapshot bounds = %v, want 32x24", b)
	}
}
