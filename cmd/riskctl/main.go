package main

import (
	"os"

	"github.com/procurelens/supplier-risk/cmd/riskctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
