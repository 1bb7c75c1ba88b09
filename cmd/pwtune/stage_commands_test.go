package main

import (
	"encoding/json"
	"errors"
	"testing"

	"pwtune/internal/catalog"
	"pwtune/internal/services"
	"pwtune/internal/testsupport"
)

func TestStagePersistsAcrossRuns(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"stage", "resample.quality", "12"}, env.configPath)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	requireContains(t, out, "Staged resample.quality = 12 (number)")

	if _, _, err := runCLI(t, []string{"stage", "--string", "node.latency", "256"}, env.configPath); err != nil {
		t.Fatalf("stage --string: %v", err)
	}

	out, _, err = runCLI(t, []string{"staged", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("staged list: %v", err)
	}
	var edits []catalog.Edit
	if err := json.Unmarshal([]byte(out), &edits); err != nil {
		t.Fatalf("decode staged: %v\n%s", err, out)
	}
	if len(edits) != 2 {
		t.Fatalf("expected 2 edits, got %+v", edits)
	}
	if edits[0].Key != "node.latency" || !edits[0].Value.Equal(catalog.String("256")) {
		t.Fatalf("unexpected first edit %+v", edits[0])
	}
	if !edits[1].Value.Equal(catalog.Number(12)) {
		t.Fatalf("unexpected second edit %+v", edits[1])
	}

	out, _, err = runCLI(t, []string{"show", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var view showView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode show: %v", err)
	}
	staged := view.Sections[2].Entries[0].Staged
	if staged == nil || !staged.Equal(catalog.Number(12)) {
		t.Fatalf("expected restored draft in show output, got %v", staged)
	}

	out, _, err = runCLI(t, []string{"staged"}, env.configPath)
	if err != nil {
		t.Fatalf("staged: %v", err)
	}
	requireContains(t, out, "resample.quality")

	out, _, err = runCLI(t, []string{"staged", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("staged clear: %v", err)
	}
	requireContains(t, out, "Cleared 2 staged edit(s)")

	out, _, err = runCLI(t, []string{"staged", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("staged list: %v", err)
	}
	requireContains(t, out, "No staged edits")
}

func TestStageRejectsUnknownKey(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"stage", "bogus.key", "1"}, env.configPath)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStageValidatesOptionsWhenEnabled(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithValidateOptions(true))

	_, _, err := runCLI(t, []string{"stage", "channelmix.upmix-method", "fancy"}, env.configPath)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, _, err := runCLI(t, []string{"stage", "channelmix.upmix-method", "simple"}, env.configPath); err != nil {
		t.Fatalf("stage valid option: %v", err)
	}
}

func TestParseEditValue(t *testing.T) {
	if v := parseEditValue("true", false); !v.Equal(catalog.Bool(true)) {
		t.Fatalf("unexpected value %v", v)
	}
	if v := parseEditValue("true", true); !v.Equal(catalog.String("true")) {
		t.Fatalf("unexpected value %v", v)
	}
	if v := parseEditValue("0.5", false); !v.Equal(catalog.Number(0.5)) {
		t.Fatalf("unexpected value %v", v)
	}
}
