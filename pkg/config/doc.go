// Package config handles settings for labelwires.
// Settings are layered from embedded TOML defaults, XDG-derived locations,
// an optional settings file (TOML or YAML) and LABELWIRES_* environment
// variables. The result is an explicit Settings value that callers thread
// through constructors; there is no package-level state.
package config
