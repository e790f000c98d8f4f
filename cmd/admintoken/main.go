// Command admintoken mints a bearer token for the admin list endpoints
// (GET /api/bookings, GET /api/contacts). It signs with ADMIN_JWT_SECRET,
// read from the same .env / config.yaml / environment as the server.
//
//	go run ./cmd/admintoken -sub owner -ttl 72h
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"washdesk/config"
	"washdesk/utils"
)

func main() {
	config.LoadConfig()
	if err := run(os.Args[1:], config.AppConfig.AdminJWTSecret, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "admintoken:", err)
		os.Exit(1)
	}
}

func run(args []string, secret string, out io.Writer) error {
	fs := flag.NewFlagSet("admintoken", flag.ContinueOnError)
	subject := fs.String("sub", "owner", "subject recorded in the token")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *subject == "" {
		return fmt.Errorf("-sub must not be empty")
	}
	if *ttl <= 0 {
		return fmt.Errorf("-ttl must be positive, got %s", *ttl)
	}

	token, err := utils.GenerateAdminToken(secret, *subject, *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
