// Command createuser provisions an account from the command line. Accounts are
// created out of band; the API exposes no registration endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spec-kit/docrequest-service/internal/config"
	"github.com/spec-kit/docrequest-service/internal/domain"
	"github.com/spec-kit/docrequest-service/internal/observability"
	"github.com/spec-kit/docrequest-service/internal/persistence"
	"github.com/spec-kit/docrequest-service/internal/repository"
	"github.com/spec-kit/docrequest-service/internal/service"
)

func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "initial password")
	role := flag.String("role", string(domain.UserRoleUser), "USER or ADMIN")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	userRole := domain.UserRole(*role)
	if userRole != domain.UserRoleUser && userRole != domain.UserRoleAdmin {
		log.Fatalf("unknown role %q", *role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer pg.Close()

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	authService := service.NewAuthService(*cfg, userRepo)

	user, err := authService.ProvisionUser(ctx, *name, *email, *password, userRole)
	if err != nil {
		log.Fatalf("failed to create user: %v", err)
	}

	fmt.Printf("created user %s (%s) with role %s\n", user.ID, user.Email, user.Role)
}
