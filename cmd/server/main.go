// Command server runs the moderation HTTP API.
package main

import (
	"context"
	"log"

	"github.com/heartmarshall/journeys-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
