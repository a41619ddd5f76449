// Package config loads vdgen settings from vdgen.yaml or vdgen.toml.
//
// Files are decoded strictly (unknown keys are errors) and then checked
// against an embedded CUE schema. Command-line flags override values
// loaded here.
package config
