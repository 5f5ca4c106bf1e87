// Package config loads, normalizes, and validates the subweave TOML
// configuration. Loading resolves the explicit --config path, then
// ~/.config/subweave/config.toml, then a project-local subweave.toml, and
// folds API keys in from the environment so the rest of the program only ever
// sees a fully resolved Config value.
package config
