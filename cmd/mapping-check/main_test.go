package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := cli(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const validDoc = `{
	"IEGtoPEO": {"IEG1": ["PEO1"]},
	"PEOtoPLO": {"PEO1": ["PLO1"]},
	"PEOstatements": {"PEO1": "Graduates apply core knowledge."},
	"PLOstatements": {"PLO1": "Apply knowledge."},
	"PLOtoVBE": {},
	"PLOIndicators": {"PLO1": "solves graded problems"},
	"SCmapping": {}
}`

func TestValidDocumentPasses(t *testing.T) {
	path := writeDoc(t, validDoc)
	code, stdout, _ := runCLI(t, "-doc", path)
	if code != 0 {
		t.Fatalf("exit = %d, stdout = %s", code, stdout)
	}
	if !strings.Contains(stdout, "Mapping validation passed.") {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestDanglingObjectiveIsViolation(t *testing.T) {
	path := writeDoc(t, `{
		"IEGtoPEO": {"IEG1": ["PEO1", "PEO9"]},
		"PEOtoPLO": {"PEO1": ["PLO1"]},
		"PLOstatements": {"PLO1": "Apply knowledge."}
	}`)
	code, stdout, _ := runCLI(t, "-doc", path)
	if code != 1 {
		t.Fatalf("exit = %d, stdout = %s", code, stdout)
	}
	if !strings.Contains(stdout, "violation: IEG1 maps to PEO9 which has no outcome entry") {
		t.Fatalf("stdout = %q", stdout)
	}
	if !strings.Contains(stdout, "Mapping validation failed.") {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestDuplicateIDsAreViolations(t *testing.T) {
	path := writeDoc(t, `{
		"IEGtoPEO": {"IEG1": ["PEO1", "PEO1"]},
		"PEOtoPLO": {"PEO1": ["PLO1"]},
		"PLOstatements": {"PLO1": "Apply knowledge."}
	}`)
	code, stdout, _ := runCLI(t, "-doc", path)
	if code != 1 {
		t.Fatalf("exit = %d, stdout = %s", code, stdout)
	}
	if !strings.Contains(stdout, "violation: IEGtoPEO[IEG1] lists PEO1 more than once") {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestWarningsFailOnlyUnderStrict(t *testing.T) {
	doc := `{
		"IEGtoPEO": {"IEG1": ["PEO1"]},
		"PEOtoPLO": {"PEO1": ["PLO1"]},
		"PLOIndicators": {"PLO9": "orphaned indicator"}
	}`

	path := writeDoc(t, doc)
	code, stdout, _ := runCLI(t, "-doc", path)
	if code != 0 {
		t.Fatalf("non-strict exit = %d, stdout = %s", code, stdout)
	}
	if !strings.Contains(stdout, "warning: PLOIndicators entry PLO9 refers to an outcome no objective maps to") {
		t.Fatalf("stdout = %q", stdout)
	}
	if !strings.Contains(stdout, "warning: outcome PLO1 has no statement text at any level") {
		t.Fatalf("stdout = %q", stdout)
	}

	code, stdout, _ = runCLI(t, "-doc", path, "-strict")
	if code != 1 {
		t.Fatalf("strict exit = %d, stdout = %s", code, stdout)
	}
	if !strings.Contains(stdout, "Mapping validation failed.") {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestMissingDocument(t *testing.T) {
	code, _, stderr := runCLI(t, "-doc", filepath.Join(t.TempDir(), "absent.json"))
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(stderr, "Mapping validation failed:") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestBadFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "-nope")
	if code != 2 {
		t.Fatalf("exit = %d", code)
	}
	if stderr == "" {
		t.Fatal("flag error not written to stderr")
	}
}
