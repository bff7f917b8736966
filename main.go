package main

import (
	"log"

	"github.com/dcode-github/real_estate_portal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
