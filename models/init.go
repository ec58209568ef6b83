package models

import (
	"context"
	"fmt"

	"github.com/Franklin-pro/simpo-planet-studio-bn/config"
	"github.com/Franklin-pro/simpo-planet-studio-bn/db"

	"github.com/rs/zerolog/log"
)

func Init() error {
	err := db.Instance.AutoMigrate(
		&Artist{},
		&Music{},
		&Gallery{},
		&Like{},
		&Producer{},
		&Filmmaker{},
		&Contact{},
		&User{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	created, err := UserSeed(context.Background(), config.ADMIN_SEED_USERNAME, config.ADMIN_SEED_EMAIL, config.ADMIN_SEED_PASSWORD)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Info().Str("email", config.ADMIN_SEED_EMAIL).Msg("seeded superadmin account")
	}
	return nil
}
