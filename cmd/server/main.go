package main

import (
	"log"
)

func main() {
	config := LoadConfig()

	server, err := NewServer(config)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	defer server.Shutdown()

	server.Start()

	r := server.Router()
	addr := ":" + config.ServerPort
	log.Printf("Tournament director server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
