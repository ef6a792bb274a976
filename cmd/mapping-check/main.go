// Command mapping-check validates a curriculum mapping document offline:
// dangling references between tables, duplicate ids inside mapping lists, and
// outcomes that no statement table covers.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"clogen/internal/mapping"
	"clogen/pkg/domain"
)

var exitFunc = os.Exit

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mapping-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var docPath string
	var strict bool
	fs.StringVar(&docPath, "doc", "mapping.json", "path to mapping document json")
	fs.BoolVar(&strict, "strict", false, "treat warnings as failures")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	report, err := run(docPath)
	if err != nil {
		fmt.Fprintf(stderr, "Mapping validation failed: %v\n", err)
		return 1
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(stdout, "warning: %s\n", w)
	}
	for _, v := range report.Violations {
		fmt.Fprintf(stdout, "violation: %s\n", v)
	}
	if len(report.Violations) > 0 || (strict && len(report.Warnings) > 0) {
		fmt.Fprintln(stdout, "Mapping validation failed.")
		return 1
	}
	fmt.Fprintln(stdout, "Mapping validation passed.")
	return 0
}

// Report collects validation findings. Violations fail the check; warnings
// only fail under -strict.
type Report struct {
	Violations []string
	Warnings   []string
}

func run(path string) (Report, error) {
	duplicates, err := findDuplicateIDs(path)
	if err != nil {
		return Report{}, err
	}

	doc, err := mapping.LoadFile(path)
	if err != nil {
		return Report{}, err
	}

	report := Report{Violations: duplicates}
	checkReferences(doc, &report)
	checkStatementCoverage(doc, &report)
	return report, nil
}

// checkReferences verifies that objectives referenced from the attribute
// table exist in the objective table, and flags annotation entries keyed by
// outcomes no objective maps to.
func checkReferences(doc domain.MappingDocument, report *Report) {
	knownOutcomes := map[string]struct{}{}
	for _, outcomes := range doc.ObjectiveOutcomes {
		for _, id := range outcomes {
			knownOutcomes[id] = struct{}{}
		}
	}

	for _, attr := range sortedKeys(doc.AttributeObjectives) {
		for _, objective := range doc.AttributeObjectives[attr] {
			if _, ok := doc.ObjectiveOutcomes[objective]; !ok {
				report.Violations = append(report.Violations,
					fmt.Sprintf("%s maps to %s which has no outcome entry", attr, objective))
			}
		}
	}

	annotations := []struct {
		name  domain.Table
		table map[string]string
	}{
		{domain.TableSubCompetencies, doc.SubCompetencies},
		{domain.TableBehavioralDomains, doc.BehavioralDomains},
		{domain.TableIndicators, doc.Indicators},
	}
	for _, annotation := range annotations {
		for _, id := range sortedStringKeys(annotation.table) {
			if _, ok := knownOutcomes[id]; !ok {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("%s entry %s refers to an outcome no objective maps to", annotation.name, id))
			}
		}
	}
}

// checkStatementCoverage warns about outcomes that resolve no statement text
// at any level; synthesis renders those clauses as N/A.
func checkStatementCoverage(doc domain.MappingDocument, report *Report) {
	outcomes := map[string]struct{}{}
	for _, ids := range doc.ObjectiveOutcomes {
		for _, id := range ids {
			outcomes[id] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(outcomes))
	for id := range outcomes {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	for _, id := range sorted {
		covered := false
		for _, level := range domain.Levels() {
			if _, ok := doc.OutcomeStatements.Resolve(level, id); ok {
				covered = true
				break
			}
		}
		if !covered {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("outcome %s has no statement text at any level", id))
		}
	}
}

// rawMappingTables mirrors only the list-valued tables so duplicates survive
// decoding; the domain decoder deduplicates them.
type rawMappingTables struct {
	AttributeObjectives map[string][]string `json:"IEGtoPEO"`
	ObjectiveOutcomes   map[string][]string `json:"PEOtoPLO"`
}

func findDuplicateIDs(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var tables rawMappingTables
	if err := json.Unmarshal(raw, &tables); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var out []string
	for _, entry := range []struct {
		name  domain.Table
		table map[string][]string
	}{
		{domain.TableAttributeObjectives, tables.AttributeObjectives},
		{domain.TableObjectiveOutcomes, tables.ObjectiveOutcomes},
	} {
		for _, key := range sortedKeys(entry.table) {
			seen := map[string]struct{}{}
			for _, id := range entry.table[key] {
				if _, dup := seen[id]; dup {
					out = append(out, fmt.Sprintf("%s[%s] lists %s more than once", entry.name, key, id))
					continue
				}
				seen[id] = struct{}{}
			}
		}
	}
	return out, nil
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedStringKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
