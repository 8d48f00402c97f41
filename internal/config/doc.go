// Package config loads latebind settings from repo-local and global YAML
// files. CLI flags win over the local file, which wins over the global one;
// cmd/latebind maps the merged result onto engine and rule options.
package config
