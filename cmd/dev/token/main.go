package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"tourmarket/internal/api"
	"tourmarket/internal/ids"
	"tourmarket/pkg/config"
)

// Prints a bearer token for acting as a user against a local server:
//
//	curl -H "Authorization: Bearer $(go run ./cmd/dev/token -user <id>)" localhost:8081/bookings
func main() {
	var (
		userID = flag.String("user", "", "user id the token acts as")
		role   = flag.String("role", "", "role claim (informational; the server reloads the user)")
		ttl    = flag.Duration("ttl", time.Hour, "token lifetime")
		secret = flag.String("secret", "", "signing secret (defaults to ACTOR_TOKEN_SECRET)")
	)
	flag.Parse()

	if !ids.Valid(*userID) {
		fmt.Fprintln(os.Stderr, "missing or invalid -user")
		os.Exit(2)
	}
	if *secret == "" {
		*secret = config.Load().ActorTokenSecret
	}
	if *secret == "" {
		fmt.Fprintln(os.Stderr, "missing -secret (or ACTOR_TOKEN_SECRET in env/.env)")
		os.Exit(2)
	}

	tok, err := api.IssueActorToken(*userID, *role, *secret, *ttl, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
