package main

import (
	"github.com/spaceblaster/scorekeeper/internal/cli"
)

func main() {
	cli.Execute()
}
