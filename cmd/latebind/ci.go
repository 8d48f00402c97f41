package latebind

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ciTemplates maps a provider to its pipeline file and content.
var ciTemplates = map[string]struct{ path, content string }{
	"github": {".github/workflows/latebind.yml", `name: latebind
on: [pull_request]
jobs:
  guardrails:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
        with:
          fetch-depth: 0
      - uses: actions/setup-go@v5
        with:
          go-version: '1.25.x'
      - run: go install github.com/latebind/latebind@latest
      - run: latebind scan --base origin/${{ github.base_ref }} --sarif > latebind.sarif
      - uses: github/codeql-action/upload-sarif@v3
        if: always()
        with:
          sarif_file: latebind.sarif
`},
	"gitlab": {".gitlab-ci.yml", `stages: [check]
latebind:
  stage: check
  image: golang:1.25
  variables:
    GIT_DEPTH: 0
  script:
    - go install github.com/latebind/latebind@latest
    - latebind scan --base origin/$CI_MERGE_REQUEST_TARGET_BRANCH_NAME --json | tee latebind-report.json
  artifacts:
    when: always
    paths:
      - latebind-report.json
`},
	"bitbucket": {"bitbucket-pipelines.yml", `pipelines:
  pull-requests:
    '**':
      - step:
          name: latebind
          image: golang:1.25
          script:
            - go install github.com/latebind/latebind@latest
            - latebind scan --base origin/$BITBUCKET_PR_DESTINATION_BRANCH --json | tee latebind-report.json
          artifacts:
            - latebind-report.json
`},
	"azure": {"azure-pipelines.yml", `trigger:
- main

pool:
  vmImage: 'ubuntu-latest'

steps:
- checkout: self
  fetchDepth: 0
- task: GoTool@0
  inputs:
    version: '1.25.x'
- script: |
    go install github.com/latebind/latebind@latest
    $(go env GOPATH)/bin/latebind scan --json | tee latebind-report.json
  displayName: 'latebind'
- publish: latebind-report.json
  artifact: latebind-report
  condition: succeededOrFailed()
`},
}

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers for multiple providers"}
	rootCmd.AddCommand(ci)

	var provider, dir string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template for your provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tpl, ok := ciTemplates[provider]
			if !ok {
				return fmt.Errorf("unknown --provider %q. Supported: github, gitlab, bitbucket, azure", provider)
			}
			path := filepath.Join(dir, tpl.path)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(tpl.content), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: github | gitlab | bitbucket | azure")
	initCmd.Flags().StringVar(&dir, "dir", ".", "repository root to write into")
	if err := initCmd.MarkFlagRequired("provider"); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not mark --provider as required:", err)
	}
	ci.AddCommand(initCmd)
}
