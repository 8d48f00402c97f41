// Package report renders a scan report: the JSON document, SARIF for code
// scanning uploads, a findings table and the short human summary.
package report
