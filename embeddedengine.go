package embeddedengine

import (
	_ "embed"
)

var (
	VERSION = "dev"
	COMMIT  = "unknown"
)

//go:embed logo.txt
var Logo string
