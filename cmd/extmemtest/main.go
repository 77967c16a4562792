package main

import (
	"os"

	"github.com/vkngwrapper/extmem/cmd/extmemtest/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
