package main

import (
	"github.com/reelay/cli/internal/cmd"
)

func main() {
	cmd.Execute()
}
