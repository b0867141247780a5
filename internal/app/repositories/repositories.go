package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	InstitutionRepository *InstitutionRepository
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	LearnerRepository     *LearnerRepository
	AssetRepository       *AssetRepository
	BookRepository        *BookRepository
	ReceiptRepository     *ReceiptRepository
	DeceasedRepository    *DeceasedRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		InstitutionRepository: NewInstitutionRepository(db),
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
		LearnerRepository:     NewLearnerRepository(db),
		AssetRepository:       NewAssetRepository(db),
		BookRepository:        NewBookRepository(db),
		ReceiptRepository:     NewReceiptRepository(db),
		DeceasedRepository:    NewDeceasedRepository(db),
	}
}
