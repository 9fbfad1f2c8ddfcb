package driver_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Urethramancer/fmt68/driver"
	"github.com/Urethramancer/fmt68/format"
)

const (
	rawSource = "start:\tmove.b #'O',(a5)+\n\tmove.b #'K',(a5)+\n\trts\n"
	formatted = "start:  MOVE.W  #'OK',(a5)+\n        RTS\n"
)

func newFormatter(t *testing.T) *format.Formatter {
	t.Helper()
	f, err := format.New(format.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create formatter: %v", err)
	}
	return f
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a\n", []string{"a"}},
		{"a\r\nb", []string{"a", "b"}},
		{"\n\n", []string{"", ""}},
		{"x\ty  \n  z", []string{"x\ty  ", "  z"}},
	}
	for _, tc := range tests {
		got, err := driver.ReadLines(strings.NewReader(tc.in))
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if !slices.Equal(got, tc.want) {
			t.Errorf("%q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	if err := driver.WriteLines(&buf, []string{"a", "", "b"}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a\n\nb\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestFormatSource(t *testing.T) {
	f := newFormatter(t)
	out, changed, err := driver.FormatSource(f, []byte(rawSource))
	if err != nil {
		t.Fatal(err)
	}
	if !changed || string(out) != formatted {
		t.Errorf("got changed=%v\n%s", changed, out)
	}

	out, changed, err = driver.FormatSource(f, []byte(formatted))
	if err != nil {
		t.Fatal(err)
	}
	if changed || string(out) != formatted {
		t.Errorf("formatted input reported changed=%v\n%s", changed, out)
	}
}

func TestFormatPathsCheck(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.s")
	b := filepath.Join(dir, "sub", "b.asm")
	writeFile(t, a, rawSource, 0o644)
	writeFile(t, b, formatted, 0o644)
	writeFile(t, filepath.Join(dir, "notes.txt"), rawSource, 0o644)

	results, err := driver.FormatPaths(context.Background(), []string{dir}, driver.Options{
		Formatter: newFormatter(t),
		Check:     true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Path != a || !results[0].Changed {
		t.Errorf("a.s: got %+v", results[0])
	}
	if results[1].Path != b || results[1].Changed {
		t.Errorf("b.asm: got %+v", results[1])
	}
	if readFile(t, a) != rawSource {
		t.Error("check mode modified a file")
	}
}

func TestFormatPathsWrite(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.s")
	writeFile(t, a, rawSource, 0o600)

	results, err := driver.FormatPaths(context.Background(), []string{a, a}, driver.Options{
		Formatter: newFormatter(t),
		Jobs:      2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("duplicate paths not merged: %d results", len(results))
	}
	if !results[0].Changed || results[0].Err != nil {
		t.Errorf("got %+v", results[0])
	}
	if got := readFile(t, a); got != formatted {
		t.Errorf("file content:\n%s", got)
	}
	info, err := os.Stat(a)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode changed to %v", info.Mode().Perm())
	}
}

func TestFormatPathsStdout(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.s")
	writeFile(t, a, rawSource, 0o644)

	results, err := driver.FormatPaths(context.Background(), []string{a}, driver.Options{
		Formatter: newFormatter(t),
		Stdout:    true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(results[0].Formatted) != formatted {
		t.Errorf("got:\n%s", results[0].Formatted)
	}
	if readFile(t, a) != rawSource {
		t.Error("stdout mode modified the file")
	}
}

func TestFormatPathsErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := driver.FormatPaths(ctx, []string{"x.s"}, driver.Options{}); err == nil {
		t.Error("expected error without formatter")
	}
	f := newFormatter(t)
	if _, err := driver.FormatPaths(ctx, []string{filepath.Join(t.TempDir(), "missing.s")}, driver.Options{Formatter: f}); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := driver.FormatPaths(ctx, []string{t.TempDir()}, driver.Options{Formatter: f}); err == nil {
		t.Error("expected error for directory without sources")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := driver.FormatPaths(cancelled, []string{"x.s"}, driver.Options{Formatter: f}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, driver.ConfigName)
	writeFile(t, cfgPath, "tab_width = 8\n", 0o644)
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := driver.FindConfig(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || path != cfgPath {
		t.Errorf("got %q %v, want %q", path, ok, cfgPath)
	}

	cfg, found, err := driver.DiscoverConfig(nested)
	if err != nil {
		t.Fatal(err)
	}
	if found != cfgPath || cfg.TabWidth != 8 {
		t.Errorf("got %q tab %d", found, cfg.TabWidth)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		ok      bool
		check   func(format.Config) bool
	}{
		{"partial", "tab_width = 8\nlabel_colon = false\n", true, func(c format.Config) bool {
			return c.TabWidth == 8 && !c.LabelColon && c.CommentPrefix == ";" && !c.RewriteCommentPrefix
		}},
		{"prefix", "rewrite_comment_prefix = true\ncomment_prefix = \"*\"\n", true, func(c format.Config) bool {
			return c.RewriteCommentPrefix && c.CommentPrefix == "*" && c.TabWidth == 4
		}},
		{"unknown_key", "tabwidth = 8\n", false, nil},
		{"bad_prefix", "comment_prefix = \"#\"\n", false, nil},
		{"bad_toml", "tab_width = \n", false, nil},
	}
	for _, tc := range tests {
		path := filepath.Join(dir, tc.name+".toml")
		writeFile(t, path, tc.content, 0o644)
		cfg, err := driver.LoadConfig(path)
		if (err == nil) != tc.ok {
			t.Errorf("[%s] got err=%v, want ok=%v", tc.name, err, tc.ok)
			continue
		}
		if tc.ok && !tc.check(cfg) {
			t.Errorf("[%s] unexpected config %+v", tc.name, cfg)
		}
	}
}
