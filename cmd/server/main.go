package main

import (
	"log"
)

func main() {
	if err := Execute(); err != nil {
		log.Fatalf("cardioserve: %v", err)
	}
}
