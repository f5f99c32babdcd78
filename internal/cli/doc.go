// Package cli implements the ppp command tree: the root command converts one
// XLSForm, and the presets, config, wizard, version and completion
// subcommands support it.
package cli
