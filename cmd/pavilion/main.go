package main

import (
	"log"

	"github.com/hollowdust/pavilion/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ pavilion failed to start: %v", err)
	}
}
