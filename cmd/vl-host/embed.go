package main

import _ "embed"

// embeddedConfig holds the YAML configuration embedded at build time.
// Packaging scripts may overwrite embed_config.yaml before compiling to ship
// distribution-specific defaults (for example a different Linux opener).
//
//go:embed embed_config.yaml
var embeddedConfig []byte
