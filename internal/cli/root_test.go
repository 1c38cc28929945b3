package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kondannyobhikkhu/tipitaka/internal/config"
	"github.com/kondannyobhikkhu/tipitaka/internal/tui"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRoot()
	if cmd == nil || cmd.Use != "tipitaka" {
		t.Fatalf("expected root command")
	}
	want := map[string]bool{"open": false, "pair": false, "search": false, "tree": false, "editions": false, "config": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("expected %s command", name)
		}
	}
}

func stubTUI(t *testing.T) *tui.Options {
	t.Helper()
	var got tui.Options
	orig := runTUI
	runTUI = func(opts tui.Options) error {
		got = opts
		return nil
	}
	t.Cleanup(func() { runTUI = orig })
	t.Setenv(config.MetadataEnv, "")
	return &got
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	dir := t.TempDir()
	cmd := NewRoot()
	base := []string{"--config", filepath.Join(dir, "missing.toml"), "--metadata", filepath.Join(dir, "metadata.json")}
	cmd.SetArgs(append(args, base...))
	cmd.SetOut(bytes.NewBuffer(nil))
	cmd.SetErr(bytes.NewBuffer(nil))
	return cmd.Execute()
}

func TestRootRunsTUIWithDefaultPair(t *testing.T) {
	got := stubTUI(t)
	if err := execute(t); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Store == nil || got.PairLeft != "e1" || got.PairRight != "p1" {
		t.Fatalf("unexpected options %+v", got)
	}
	if got.Open != "" {
		t.Fatalf("expected no document, got %s", got.Open)
	}
}

func TestOpenPassesAbsolutePath(t *testing.T) {
	got := stubTUI(t)
	doc := filepath.Join(t.TempDir(), "dn1_sc_pali")
	if err := os.WriteFile(doc, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "open", doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Open != doc || got.OpenPair {
		t.Fatalf("unexpected options %+v", got)
	}
}

func TestOpenMissingFileFails(t *testing.T) {
	stubTUI(t)
	err := execute(t, "open", filepath.Join(t.TempDir(), "nope"))
	if err == nil || !strings.Contains(err.Error(), "open") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestOpenByDocumentNumber(t *testing.T) {
	got := stubTUI(t)
	dir := t.TempDir()
	meta := filepath.Join(dir, "metadata.json")
	index := `[{"collection": "DN", "documents": [{"number": "dn1", "english_title": "The Prime Net", "pali_title": "Brahmajāla", "path": "dn1_sc_pali"}]}]`
	if err := os.WriteFile(meta, []byte(index), 0o644); err != nil {
		t.Fatal(err)
	}
	doc := filepath.Join(dir, "dn1_sc_pali")
	if err := os.WriteFile(doc, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRoot()
	cmd.SetArgs([]string{"pair", "DN 1", "--config", filepath.Join(dir, "missing.toml"), "--metadata", meta})
	cmd.SetOut(bytes.NewBuffer(nil))
	cmd.SetErr(bytes.NewBuffer(nil))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Open != doc || !got.OpenPair {
		t.Fatalf("expected %s opened as a pair, got %+v", doc, got)
	}
}

func TestPairUsesEditionsFlag(t *testing.T) {
	got := stubTUI(t)
	doc := filepath.Join(t.TempDir(), "dn1_sc_pali")
	if err := os.WriteFile(doc, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "pair", doc, "--editions", "p2, e2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.OpenPair || got.PairLeft != "p2" || got.PairRight != "e2" {
		t.Fatalf("unexpected options %+v", got)
	}
}

func TestPairRejectsUnknownEdition(t *testing.T) {
	stubTUI(t)
	doc := filepath.Join(t.TempDir(), "dn1_sc_pali")
	if err := os.WriteFile(doc, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "pair", doc, "--editions", "e1,x9"); err == nil {
		t.Fatalf("expected unknown edition error")
	}
}
