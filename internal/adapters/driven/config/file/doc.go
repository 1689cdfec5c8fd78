// Package file provides the TOML-backed configuration store.
// Settings live in ~/.branchsync/config.toml and can be overridden
// per invocation through environment variables.
package file
