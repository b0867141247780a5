package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
	"github.com/busiadev/ecdeavotmis/internal/pkg/query"
)

// bookStore is the book inventory persistence the service depends on.
type bookStore interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int64) error
}

var bookFilter = query.Definition[*models.Book]{
	SearchFields: []func(*models.Book) string{
		func(b *models.Book) string { return b.Title },
		func(b *models.Book) string { return b.Author },
		func(b *models.Book) string { return b.ISBN },
		func(b *models.Book) string { return b.Subject },
	},
	Selectors: []query.Selector[*models.Book]{
		{Name: "category", Value: func(b *models.Book) string { return b.Category }, Fold: true},
		{Name: "level", Value: func(b *models.Book) string { return b.Level }, Fold: true},
		{Name: "status", Value: func(b *models.Book) string { return b.Status }, Fold: true},
	},
}

// BookService defines the interface for book inventory operations
type BookService interface {
	CreateBook(ctx context.Context, institutionID int64, req *dto.CreateBookRequest) (*models.Book, error)
	GetBookByID(ctx context.Context, institutionID, id int64) (*models.Book, error)
	ListBooks(ctx context.Context, institutionID int64, filter *dto.BookFilterRequest, page, size int) ([]*models.Book, dto.PaginationInfo, error)
	UpdateBook(ctx context.Context, institutionID, id int64, req *dto.UpdateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, institutionID, id int64) error
}

// bookServiceImpl implements the BookService interface
type bookServiceImpl struct {
	store bookStore
}

// NewBookService creates a new book service instance
func NewBookService(store bookStore) BookService {
	return &bookServiceImpl{
		store: store,
	}
}

// CreateBook records a new book title in the inventory
func (s *bookServiceImpl) CreateBook(ctx context.Context, institutionID int64, req *dto.CreateBookRequest) (*models.Book, error) {
	if err := validateBookFields(req.Title, req.Author, req.Category, req.Quantity); err != nil {
		return nil, err
	}

	condition := req.Condition
	if condition == "" {
		condition = "New"
	}

	book := &models.Book{
		InstitutionID: institutionID,
		Title:         strings.TrimSpace(req.Title),
		Author:        strings.TrimSpace(req.Author),
		ISBN:          strings.TrimSpace(req.ISBN),
		Category:      strings.TrimSpace(req.Category),
		Level:         strings.TrimSpace(req.Level),
		Subject:       strings.TrimSpace(req.Subject),
		Publisher:     strings.TrimSpace(req.Publisher),
		YearPublished: req.YearPublished,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		Condition:     condition,
		Status:        "Available",
	}

	if err := s.store.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetBookByID retrieves one book
func (s *bookServiceImpl) GetBookByID(ctx context.Context, institutionID, id int64) (*models.Book, error) {
	book, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book.InstitutionID != institutionID {
		return nil, apperrors.ErrBookNotFound
	}
	return book, nil
}

// ListBooks loads the institution's inventory, filters it in memory and
// returns one page
func (s *bookServiceImpl) ListBooks(ctx context.Context, institutionID int64, filter *dto.BookFilterRequest, page, size int) ([]*models.Book, dto.PaginationInfo, error) {
	books, err := s.store.GetAllByInstitution(ctx, institutionID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	filters := query.Filters{}
	search := ""
	if filter != nil {
		search = filter.Search
		filters["category"] = filter.Category
		filters["level"] = filter.Level
		filters["status"] = filter.Status
	}

	matched := bookFilter.Apply(books, search, filters)

	pagination := dto.NewPaginationInfo(len(matched), page, size)
	start, end := helpers.CalculateSliceIndices(page, size, len(matched))

	return matched[start:end], pagination, nil
}

// UpdateBook updates an existing book entry
func (s *bookServiceImpl) UpdateBook(ctx context.Context, institutionID, id int64, req *dto.UpdateBookRequest) (*models.Book, error) {
	if err := validateBookFields(req.Title, req.Author, req.Category, req.Quantity); err != nil {
		return nil, err
	}

	book, err := s.GetBookByID(ctx, institutionID, id)
	if err != nil {
		return nil, err
	}

	book.Title = strings.TrimSpace(req.Title)
	book.Author = strings.TrimSpace(req.Author)
	book.ISBN = strings.TrimSpace(req.ISBN)
	book.Category = strings.TrimSpace(req.Category)
	book.Level = strings.TrimSpace(req.Level)
	book.Subject = strings.TrimSpace(req.Subject)
	book.Publisher = strings.TrimSpace(req.Publisher)
	book.YearPublished = req.YearPublished
	book.Quantity = req.Quantity
	book.UnitPrice = req.UnitPrice
	if req.Condition != "" {
		book.Condition = req.Condition
	}
	if req.Status != "" {
		book.Status = req.Status
	}

	if err := s.store.Update(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// DeleteBook removes a book from the inventory
func (s *bookServiceImpl) DeleteBook(ctx context.Context, institutionID, id int64) error {
	if _, err := s.GetBookByID(ctx, institutionID, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func validateBookFields(title, author, category string, quantity int) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(author) == "" {
		return fmt.Errorf("%w: author cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: category cannot be empty", apperrors.ErrValidationFailed)
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", apperrors.ErrValidationFailed)
	}
	return nil
}
