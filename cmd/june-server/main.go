package main

import (
	"log"
	"net/http"

	"june-voice-backend/internal/config"
	"june-voice-backend/internal/server"
)

func main() {
	cfg := config.Load()
	s, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	defer s.Close()

	addr := ":" + cfg.Port
	log.Printf("june voice backend listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}
