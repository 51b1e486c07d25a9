package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"transit-dashboard/auth"
	"transit-dashboard/config"
)

func main() {
	var (
		username = flag.String("user", "admin", "Operator name stored in the token")
		ttl      = flag.Duration("ttl", 0, "Token lifetime (defaults to auth.token_ttl_hours)")
		hashKey  = flag.String("hash-key", "", "Print the bcrypt hash of this admin API key instead of issuing a token")
	)
	flag.Parse()

	if *hashKey != "" {
		hash, err := auth.HashAPIKey(*hashKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg := config.MustLoadConfig()
	lifetime := *ttl
	if lifetime == 0 {
		lifetime = time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	}

	manager, err := auth.NewJWTManager(cfg.Auth.JWTSecret, lifetime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jwt: %v (set auth.jwt_secret or TRANSIT_AUTH_JWT_SECRET)\n", err)
		os.Exit(1)
	}

	token, err := manager.GenerateToken(*username, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
