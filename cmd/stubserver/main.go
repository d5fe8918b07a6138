package main

import (
	"log"
	"net/http"
	"time"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/config"
	"github.com/Ajosh-NyxBar/SkillSwap/internal/devserver"
)

func main() {
	log.Println("Starting SkillSwap stub backend...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	srv := devserver.New(cfg.StubJWTSecret, cfg.StubTokenTTL)

	server := &http.Server{
		Addr:           cfg.StubAddr,
		Handler:        srv.Router(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Stub backend listening on %s", cfg.StubAddr)
	log.Fatal(server.ListenAndServe())
}
