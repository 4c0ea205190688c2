package main

import (
	"log"

	"github.com/licitops/secop-scout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
