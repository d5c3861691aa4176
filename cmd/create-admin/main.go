package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/eduhub/eduhub-backend/internal/config"
	"github.com/eduhub/eduhub-backend/internal/database"
	"github.com/eduhub/eduhub-backend/internal/logger"
	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/repository"
)

const adminLevelName = "Administrator"

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	accessLevelRepo := repository.NewAccessLevelRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Admin Account ===")

	// Name
	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────

	// Ensure an all-permissions access level exists.
	level, err := findOrCreateAdminLevel(ctx, accessLevelRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare admin access level")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	admin := &model.User{
		Name:          name,
		Email:         email,
		PasswordHash:  string(hashedPassword),
		AccessLevelID: level.ID,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %d\n", admin.Name, admin.Email, admin.ID)
}

func findOrCreateAdminLevel(ctx context.Context, repo *repository.AccessLevelRepository) (*model.AccessLevel, error) {
	levels, err := repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range levels {
		if levels[i].Name == adminLevelName {
			return &levels[i], nil
		}
	}

	permissions := make([]string, len(model.AllPermissions))
	for i, p := range model.AllPermissions {
		permissions[i] = string(p)
	}

	level := &model.AccessLevel{Name: adminLevelName, Permissions: permissions}
	if err := repo.Create(ctx, level); err != nil {
		return nil, err
	}
	return level, nil
}
