package lvtools

import _ "embed"

// Version is the release reported by every lvtools binary.
//
//go:embed VERSION
var Version string
