// Package paths centralizes every filesystem location hostgen reads or
// writes. Nothing else in the codebase joins paths by hand.
//
// Layout (store = HOSTGEN_STORE_DIR or $XDG_DATA_HOME/hostgen,
// config = HOSTGEN_CONFIG_DIR or $XDG_CONFIG_HOME/hostgen):
//
//	<store>/generations/<N>/commit
//	<store>/generations/<N>/gen.toml
//	<store>/generations/current
//	<store>/generations/built
//	<store>/.lock, <store>/.lock-owner
//	<config>/gen.toml
//	<config>/machines/<hostname>/gen.toml
//	<config>/imports/<name>.toml
//	<config>/managers/<name>.toml
//	<config>/hooks/<pre|post>_<hook_name>_<action>
//	<config>/settings.toml
package paths
