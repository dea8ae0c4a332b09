package main

import (
	"os"

	"github.com/Zhyangithub/eataway-router/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
