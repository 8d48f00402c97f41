package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/latebind/latebind/internal/rules"
	"github.com/latebind/latebind/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool                     sarifTool      `json:"tool"`
	Results                  []sarifResult  `json:"results"`
	VersionControlProvenance []sarifVCS     `json:"versionControlProvenance,omitempty"`
	Properties               map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	ShortDescription     sarifMessage `json:"shortDescription"`
	DefaultConfiguration sarifConfig  `json:"defaultConfiguration"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLoc        `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt     `json:"artifactLocation"`
	Region           *sarifRegion `json:"region,omitempty"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

type sarifVCS struct {
	RepositoryURI string `json:"repositoryUri"`
	RevisionID    string `json:"revisionId,omitempty"`
	Branch        string `json:"branch,omitempty"`
}

// SARIFMeta carries tool and provenance details. Empty fields are omitted.
type SARIFMeta struct {
	Version string
	Repo    string
	Commit  string
	Branch  string
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevP1:
		return "error"
	case types.SevP2:
		return "warning"
	default:
		return "note"
	}
}

// fingerprint identifies a finding across runs. Line numbers are left out
// so that unrelated edits above a finding do not change it.
func fingerprint(f types.Finding) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(f.Rule+"\x00"+f.Path+"\x00"+f.Body))
}

// WriteSARIF writes the report as SARIF 2.1.0. File-scoped findings carry
// no region.
func WriteSARIF(w io.Writer, r types.Report, meta SARIFMeta) error {
	driver := sarifDriver{Name: "latebind", Version: meta.Version}
	if driver.Version == "" {
		driver.Version = "dev"
	}
	for _, rule := range rules.Default().Rules() {
		driver.Rules = append(driver.Rules, sarifRule{
			ID:                   rule.ID,
			Name:                 rule.Title,
			ShortDescription:     sarifMessage{Text: rule.Title},
			DefaultConfiguration: sarifConfig{Level: sevToLevel(rule.Severity)},
		})
	}
	run := sarifRun{
		Tool:       sarifTool{Driver: driver},
		Results:    []sarifResult{},
		Properties: map[string]any{"filesScanned": r.FilesScanned},
	}
	if meta.Repo != "" {
		uri := meta.Repo
		if !strings.Contains(uri, "://") {
			uri = "https://github.com/" + uri
		}
		run.VersionControlProvenance = []sarifVCS{{RepositoryURI: uri, RevisionID: meta.Commit, Branch: meta.Branch}}
	}
	for _, f := range r.Findings {
		phys := sarifPhys{ArtifactLocation: sarifArt{URI: f.Path}}
		if !f.FileScoped() {
			phys.Region = &sarifRegion{StartLine: f.Line}
		}
		ruleID := f.Rule
		if ruleID == "" {
			ruleID = f.Title
		}
		run.Results = append(run.Results, sarifResult{
			RuleID:              ruleID,
			Level:               sevToLevel(f.Severity),
			Message:             sarifMessage{Text: f.Title + ": " + f.Body},
			Locations:           []sarifLoc{{PhysicalLocation: phys}},
			PartialFingerprints: map[string]string{"latebind/v1": fingerprint(f)},
		})
	}
	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
