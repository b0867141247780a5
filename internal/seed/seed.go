package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/busiadev/ecdeavotmis/internal/app/models"
	appRepos "github.com/busiadev/ecdeavotmis/internal/app/repositories"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/auth"
)

const defaultCountyAdminEmail = "countyadmin@busia.go.ke"

// CreateDefaultData creates the county administrator account if it does not
// exist. The password comes from COUNTY_ADMIN_PASSWORD; when unset the
// account is skipped entirely so deployments never ship a known credential.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default county administrator account...")

	email := os.Getenv("COUNTY_ADMIN_EMAIL")
	if email == "" {
		email = defaultCountyAdminEmail
	}

	password := os.Getenv("COUNTY_ADMIN_PASSWORD")
	if password == "" {
		lgr.Warn().Msg("COUNTY_ADMIN_PASSWORD not set, skipping county administrator seed")
		return nil
	}

	exists, err := userRepo.EmailExists(ctx, email)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for existing county administrator")
		return err
	}
	if exists {
		lgr.Info().Str("email", email).Msg("County administrator already exists")
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing county administrator password")
		return err
	}

	admin := &appModels.User{
		Email:     email,
		Password:  hashed,
		FirstName: "County",
		LastName:  "Administrator",
		IsActive:  true,
	}

	if err := userRepo.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating county administrator")
		return err
	}

	if err := userRepo.AddRole(ctx, admin.ID, appModels.RoleCountyAdmin); err != nil {
		lgr.Error().Err(err).Msg("Error granting county administrator role")
		return err
	}

	lgr.Info().Str("email", email).Msg("County administrator account created")

	if err := createSampleInstitution(ctx, dbPool, lgr); err != nil {
		return err
	}
	return nil
}

// createSampleInstitution registers one well-known institution so a fresh
// deployment has something to select during initial setup walkthroughs.
func createSampleInstitution(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	instRepo := appRepos.NewInstitutionRepository(dbPool)

	const registrationNo = "ECDE/BSA/001"
	exists, err := instRepo.ExistsByRegistrationNo(ctx, registrationNo)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for sample institution")
		return err
	}
	if exists {
		return nil
	}

	sample := &appModels.Institution{
		Name:           "Busia Township ECDE Centre",
		Type:           appModels.ProgramECDE,
		Level:          "PP1-PP2",
		RegistrationNo: registrationNo,
		County:         "Busia",
		SubCounty:      "Matayos",
		Ward:           "Busia Township",
	}
	if err := instRepo.Create(ctx, sample); err != nil {
		lgr.Error().Err(err).Msg("Error creating sample institution")
		return err
	}

	lgr.Info().Str("name", sample.Name).Msg("Sample institution created")
	return nil
}
