// Package config handles configuration for hostgen.
//
// It covers two distinct concerns:
//
//   - application settings (settings.go), layered with koanf from embedded
//     defaults, the user's settings.toml and HOSTGEN_* environment variables;
//   - generation descriptions (schema.go, resolver.go): decoding gen.toml
//     files in the current or legacy schema and resolving the effective
//     generation for a side, including machine overrides and imports.
package config
