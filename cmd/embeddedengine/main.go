package main

import (
	"github.com/embeddedengine-io/embeddedengine/cmd"
)

func main() {
	cmd.Execute()
}
