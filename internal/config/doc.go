// Package config resolves the processor's settings from three sources —
// a key=value config file, environment variables, and CLI flags — with
// CLI taking precedence over environment, and environment taking
// precedence over the file.
package config
