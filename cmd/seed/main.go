// Command seed creates admin accounts. Registration only ever produces
// citizens; the two admin tiers are provisioned here, out-of-band.
package main

import (
	"context"
	"flag"

	"docuverify/internal/common/security"
	"docuverify/internal/domain/model"
	"docuverify/internal/domain/repository"
	"docuverify/internal/platform/config"
	"docuverify/internal/platform/database"
	"docuverify/internal/platform/logger"

	"github.com/google/uuid"
)

func main() {
	var (
		name     = flag.String("name", "", "admin display name")
		email    = flag.String("email", "", "admin email (unique)")
		password = flag.String("password", "", "admin password")
		tier     = flag.Int("tier", 1, "admin tier: 1 or 2")
	)
	flag.Parse()

	log := logger.New(true)

	if *name == "" || *email == "" || *password == "" {
		log.Fatal().Msg("-name, -email and -password are required")
	}

	role := model.RoleAdminTier1
	if *tier == 2 {
		role = model.RoleAdminTier2
	} else if *tier != 1 {
		log.Fatal().Int("tier", *tier).Msg("tier must be 1 or 2")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to database")
	}
	defer db.Close()

	hashed, err := security.HashPassword(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not hash password")
	}

	userRepo := repository.NewPgUserRepository(db)
	user := &model.User{
		ID:             uuid.NewString(),
		Name:           *name,
		Email:          *email,
		HashedPassword: hashed,
		Role:           role,
	}

	if err := userRepo.Create(context.Background(), user); err != nil {
		log.Fatal().Err(err).Msg("Could not create admin user")
	}

	log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("admin user created")
}
