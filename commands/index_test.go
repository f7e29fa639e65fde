package commands

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestIndexCmd_ThenLookup(t *testing.T) {
	app := testApp(t)
	app.cfg.Prefixes = map[string]string{"ex": "http://example.org/"}

	dir := t.TempDir()
	writeDoc(t, dir, "colors.json", colorsDoc)
	db := filepath.Join(t.TempDir(), "catalog.db")

	out, err := runCommand(NewIndexCmd(app), dir, "--db", db)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.Contains(out, "Indexed 1 of 1 documents (2 concepts)") {
		t.Errorf("index summary wrong:\n%s", out)
	}

	out, err = runCommand(NewLookupCmd(app), "ex:colors/red", "--db", db)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	for _, want := range []string{
		"CURIE:      ex:colors/red",
		"Notation:   R",
		"Label [en]: red",
		"Document:   colors.json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("lookup output missing %q:\n%s", want, out)
		}
	}
}

func TestIndexCmd_SkipsFailingDocuments(t *testing.T) {
	app := testApp(t)
	app.cfg.Prefixes = map[string]string{"ex": "http://example.org/"}

	dir := t.TempDir()
	writeDoc(t, dir, "colors.json", colorsDoc)
	// Strict mode cannot resolve unregistered.test, so this one is
	// reported and skipped.
	writeDoc(t, dir, "opaque.json", opaqueDoc)
	db := filepath.Join(t.TempDir(), "catalog.db")

	out, err := runCommand(NewIndexCmd(app), dir, "--db", db)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.Contains(out, "Indexed 1 of 2 documents") {
		t.Errorf("index summary wrong:\n%s", out)
	}
}

func TestIndexCmd_AllFail(t *testing.T) {
	app := testApp(t)

	dir := t.TempDir()
	// No prefixes configured, so nothing under example.org resolves.
	writeDoc(t, dir, "colors.json", colorsDoc)
	db := filepath.Join(t.TempDir(), "catalog.db")

	if _, err := runCommand(NewIndexCmd(app), dir, "--db", db); err == nil {
		t.Error("index reported success with no indexed documents")
	}
}

func TestIndexCmd_EmptyDir(t *testing.T) {
	app := testApp(t)
	db := filepath.Join(t.TempDir(), "catalog.db")

	if _, err := runCommand(NewIndexCmd(app), t.TempDir(), "--db", db); err == nil {
		t.Error("index accepted a directory without documents")
	}
}

func TestLookupCmd_NotFoundSuggests(t *testing.T) {
	app := testApp(t)
	app.cfg.Prefixes = map[string]string{"ex": "http://example.org/"}

	dir := t.TempDir()
	writeDoc(t, dir, "colors.json", colorsDoc)
	db := filepath.Join(t.TempDir(), "catalog.db")

	if _, err := runCommand(NewIndexCmd(app), dir, "--db", db); err != nil {
		t.Fatalf("index: %v", err)
	}

	out, err := runCommand(NewLookupCmd(app), "ex:colors/re", "--db", db)
	if err == nil {
		t.Fatal("lookup reported success for an absent CURIE")
	}
	if !strings.Contains(out, "ex:colors/red") {
		t.Errorf("lookup suggestions missing similar CURIE:\n%s", out)
	}
}

func TestLookupCmd_EmptyCatalog(t *testing.T) {
	app := testApp(t)
	db := filepath.Join(t.TempDir(), "catalog.db")

	if _, err := runCommand(NewLookupCmd(app), "ex:colors/red", "--db", db); err == nil {
		t.Error("lookup reported success on an empty catalog")
	}
}
