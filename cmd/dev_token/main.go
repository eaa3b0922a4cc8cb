// Command dev_token prints a bearer token for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/receiptify/backend/config"
	"github.com/pageza/receiptify/backend/internal/service"
	"github.com/pageza/receiptify/backend/internal/types"
)

func main() {
	userFlag := flag.String("user", "", "user id to issue the token for (random when empty)")
	username := flag.String("username", "test-cook", "username claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Environment == config.Production {
		log.Fatal("refusing to issue development tokens in production")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	userID := uuid.New()
	if *userFlag != "" {
		if userID, err = uuid.Parse(*userFlag); err != nil {
			log.Fatalf("invalid user id: %v", err)
		}
	}

	token, err := service.NewAuthService(cfg.JWTSecret, *ttl).GenerateToken(&types.TokenClaims{
		UserID:   userID,
		Username: *username,
	})
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Printf("user_id: %s\n", userID)
	fmt.Printf("Authorization: Bearer %s\n", token)
}
