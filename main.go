package main

import (
	"os"

	"github.com/alpacahq/bizcal/cmd"
	"github.com/alpacahq/bizcal/utils/log"
)

func main() {
	err := cmd.Execute()
	log.Sync()
	if err != nil {
		os.Exit(1)
	}
}
