package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rushteam/outfit/core"
)

const wardrobe = `name,type,color,purpose,temp_min,temp_max,image
black tee,top,black,casual,10,20,a.png
red shirt,top,red,formal,0,10,b.png
white chinos,bottom,white,casual,10,20,c.png
blue slacks,bottom,blue,formal,0,10,d.png
`

func writeWardrobe(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wardrobe.csv")
	if err := os.WriteFile(path, []byte(wardrobe), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Recommend(t *testing.T) {
	t.Setenv("OUTFIT_LOG_LEVEL", "error")
	var out bytes.Buffer
	err := run([]string{"-catalog", writeWardrobe(t), "-temp", "15", "-purpose", "casual"}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("output:\n%s", out.String())
	}
	if !strings.Contains(lines[1], "black tee (black)") || !strings.Contains(lines[1], "white chinos (white)") {
		t.Errorf("row = %q", lines[1])
	}
	if !strings.Contains(lines[1], "2.200") {
		t.Errorf("row = %q, want score 2.200", lines[1])
	}
}

func TestRun_NoMatch(t *testing.T) {
	t.Setenv("OUTFIT_LOG_LEVEL", "error")
	var out bytes.Buffer
	if err := run([]string{"-catalog", writeWardrobe(t), "-purpose", "ceremonial"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "no matching outfit" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRun_List(t *testing.T) {
	t.Setenv("OUTFIT_LOG_LEVEL", "error")
	var out bytes.Buffer
	if err := run([]string{"-catalog", writeWardrobe(t), "-list"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.Count(out.String(), "\n"); got != 5 {
		t.Errorf("lines = %d, output:\n%s", got, out.String())
	}
}

func TestRun_Errors(t *testing.T) {
	t.Setenv("OUTFIT_LOG_LEVEL", "error")
	path := writeWardrobe(t)

	err := run([]string{"-catalog", filepath.Join(t.TempDir(), "missing.csv")}, &bytes.Buffer{})
	if !core.IsLoadError(err) {
		t.Errorf("missing catalog: err = %v, want LOAD_ERROR", err)
	}
	err = run([]string{"-catalog", path, "-temp", "warm"}, &bytes.Buffer{})
	if !core.IsInvalidInput(err) {
		t.Errorf("bad temp: err = %v, want INVALID_INPUT", err)
	}
}
