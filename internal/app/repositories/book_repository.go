package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
)

const bookColumns = `
	id, institution_id, title, author, COALESCE(isbn, ''), category, level,
	COALESCE(subject, ''), COALESCE(publisher, ''), COALESCE(year_published, 0),
	quantity, COALESCE(unit_price, 0), condition, status, created_at, updated_at`

// BookRepository handles database operations for the book inventory
type BookRepository struct {
	db *pgxpool.Pool
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *pgxpool.Pool) *BookRepository {
	return &BookRepository{
		db: db,
	}
}

// Create creates a new book entry
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (institution_id, title, author, isbn, category, level,
			subject, publisher, year_published, quantity, unit_price, condition, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		book.InstitutionID,
		book.Title,
		book.Author,
		helpers.GetContentNullString(book.ISBN),
		book.Category,
		book.Level,
		helpers.GetContentNullString(book.Subject),
		helpers.GetContentNullString(book.Publisher),
		helpers.GetNullInt64(int64(book.YearPublished)),
		book.Quantity,
		book.UnitPrice,
		book.Condition,
		book.Status,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating book: %w", err)
	}

	return nil
}

// GetByID retrieves a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := r.scanBook(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	return book, nil
}

// GetAllByInstitution retrieves all books of an institution in insertion
// order
func (r *BookRepository) GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE institution_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		book, err := r.scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

// Update updates an existing book entry
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, category = $4, level = $5,
		    subject = $6, publisher = $7, year_published = $8, quantity = $9,
		    unit_price = $10, condition = $11, status = $12, updated_at = CURRENT_TIMESTAMP
		WHERE id = $13
	`

	cmdTag, err := r.db.Exec(ctx, query,
		book.Title,
		book.Author,
		helpers.GetContentNullString(book.ISBN),
		book.Category,
		book.Level,
		helpers.GetContentNullString(book.Subject),
		helpers.GetContentNullString(book.Publisher),
		helpers.GetNullInt64(int64(book.YearPublished)),
		book.Quantity,
		book.UnitPrice,
		book.Condition,
		book.Status,
		book.ID,
	)

	if err != nil {
		return fmt.Errorf("error updating book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}

// Delete deletes a book by ID
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}

// CountByInstitution returns the total book copies of an institution
func (r *BookRepository) CountByInstitution(ctx context.Context, institutionID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0) FROM books WHERE institution_id = $1`,
		institutionID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting books: %w", err)
	}

	return count, nil
}

func (r *BookRepository) scanBook(row pgx.Row) (*models.Book, error) {
	var book models.Book
	err := row.Scan(
		&book.ID,
		&book.InstitutionID,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.Category,
		&book.Level,
		&book.Subject,
		&book.Publisher,
		&book.YearPublished,
		&book.Quantity,
		&book.UnitPrice,
		&book.Condition,
		&book.Status,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("error retrieving book: %w", err)
	}

	return &book, nil
}
