// analyticsctl ejecuta los análisis desde la terminal e imprime el resultado en JSON.
//
// Uso: go run ./cmd/analyticsctl risk --strategy weighted
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("aviso: no se pudo cargar .env: %v", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
