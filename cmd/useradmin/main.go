// Command useradmin provisions an administrator account directly in the
// database. Open signup refuses the admin role, so the first admin (and any
// later one) is created with this tool by an operator with database access.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/userhub/internal/server/auth"
	"github.com/dmitrijs2005/userhub/internal/server/config"
	"github.com/dmitrijs2005/userhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userhub/internal/server/services"
	"golang.org/x/term"

	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func getPassword(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, err
	}
	return pw, nil
}

func run(ctx context.Context, cfg *config.Config, p services.RegisterParams) error {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	hasher := auth.NewPasswordHasher(cfg.BcryptCost, cfg.MinPasswordLength)
	tokens := auth.NewTokenService([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	accounts := services.NewAccountService(db, rm, hasher, tokens)

	account, err := accounts.CreateAdmin(ctx, p)
	if err != nil {
		return err
	}

	fmt.Printf("admin account created: %s (%s)\n", account.Email, account.ID)
	return nil
}

func main() {

	cfg := &config.Config{}
	cfg.LoadDefaults()

	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	email := flag.String("email", "", "admin email (required)")
	firstName := flag.String("first-name", "", "first name (required)")
	lastName := flag.String("last-name", "", "last name (required)")
	middleName := flag.String("middle-name", "", "middle name")
	department := flag.String("department", "", "department")
	flag.Parse()

	if *email == "" || *firstName == "" || *lastName == "" {
		flag.Usage()
		os.Exit(2)
	}

	pw, err := getPassword("Enter password: ")
	if err != nil {
		log.Fatalf("password read error: %v", err)
	}

	pw2, err := getPassword("Repeat password: ")
	if err != nil {
		log.Fatalf("password read error: %v", err)
	}
	if string(pw) != string(pw2) {
		log.Fatal("passwords do not match")
	}

	params := services.RegisterParams{
		Email:      *email,
		Password:   string(pw),
		FirstName:  *firstName,
		LastName:   *lastName,
		MiddleName: *middleName,
		Department: *department,
	}

	if err := run(context.Background(), cfg, params); err != nil {
		log.Fatalf("%v", err)
	}
}
