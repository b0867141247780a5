package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
)

type fakeBookStore struct {
	books       []*models.Book
	nextID      int64
	createCalls int
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{nextID: 1}
}

func (f *fakeBookStore) Create(ctx context.Context, book *models.Book) error {
	f.createCalls++
	book.ID = f.nextID
	f.nextID++
	f.books = append(f.books, book)
	return nil
}

func (f *fakeBookStore) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	for _, b := range f.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperrors.ErrBookNotFound
}

func (f *fakeBookStore) GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.Book, error) {
	var out []*models.Book
	for _, b := range f.books {
		if b.InstitutionID == institutionID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookStore) Update(ctx context.Context, book *models.Book) error {
	for i, b := range f.books {
		if b.ID == book.ID {
			f.books[i] = book
			return nil
		}
	}
	return apperrors.ErrBookNotFound
}

func (f *fakeBookStore) Delete(ctx context.Context, id int64) error {
	for i, b := range f.books {
		if b.ID == id {
			f.books = append(f.books[:i], f.books[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrBookNotFound
}

func validBook() *dto.CreateBookRequest {
	return &dto.CreateBookRequest{
		Title:    "Fasihi Simulizi",
		Author:   "K. Wamitila",
		Category: "Textbook",
		Level:    "PP1",
		Subject:  "Kiswahili",
		Quantity: 12,
	}
}

func TestCreateBook(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store)

	book, err := svc.CreateBook(context.Background(), 1, validBook())

	require.NoError(t, err)
	assert.Equal(t, "Available", book.Status)
	assert.Equal(t, "New", book.Condition)
	assert.Equal(t, int64(1), book.InstitutionID)
}

func TestCreateBook_ValidationFailureNeverHitsStore(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.CreateBookRequest)
	}{
		{"empty title", func(r *dto.CreateBookRequest) { r.Title = "  " }},
		{"empty author", func(r *dto.CreateBookRequest) { r.Author = "" }},
		{"empty category", func(r *dto.CreateBookRequest) { r.Category = "" }},
		{"zero quantity", func(r *dto.CreateBookRequest) { r.Quantity = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeBookStore()
			svc := NewBookService(store)

			req := validBook()
			tc.mutate(req)
			_, err := svc.CreateBook(context.Background(), 1, req)

			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Zero(t, store.createCalls)
		})
	}
}

func TestListBooks_SubjectSearch(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store)

	add := func(title, subject string) {
		req := validBook()
		req.Title = title
		req.Subject = subject
		_, err := svc.CreateBook(context.Background(), 1, req)
		require.NoError(t, err)
	}
	add("Kiswahili Mufti", "Kiswahili")
	add("Primary Mathematics", "Mathematics")
	add("Hesabu za Msingi", "Mathematics")

	books, _, err := svc.ListBooks(context.Background(), 1, &dto.BookFilterRequest{
		Search: "mathematics",
	}, 1, 20)

	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Primary Mathematics", books[0].Title)
	assert.Equal(t, "Hesabu za Msingi", books[1].Title)
}

func TestListBooks_CategoryFilter(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store)

	req := validBook()
	req.Category = "Storybook"
	_, err := svc.CreateBook(context.Background(), 1, req)
	require.NoError(t, err)
	_, err = svc.CreateBook(context.Background(), 1, validBook())
	require.NoError(t, err)

	books, pagination, err := svc.ListBooks(context.Background(), 1, &dto.BookFilterRequest{
		Category: "storybook",
	}, 1, 20)

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Storybook", books[0].Category)
	assert.Equal(t, 1, pagination.TotalItems)
}

func TestUpdateBook(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store)

	book, err := svc.CreateBook(context.Background(), 1, validBook())
	require.NoError(t, err)

	updated, err := svc.UpdateBook(context.Background(), 1, book.ID, &dto.UpdateBookRequest{
		Title:     "Fasihi Simulizi ya Kiswahili",
		Author:    book.Author,
		Category:  book.Category,
		Level:     book.Level,
		Quantity:  20,
		Condition: "Good",
	})

	require.NoError(t, err)
	assert.Equal(t, "Fasihi Simulizi ya Kiswahili", updated.Title)
	assert.Equal(t, 20, updated.Quantity)
	assert.Equal(t, "Good", updated.Condition)
}

func TestDeleteBook_NotFound(t *testing.T) {
	svc := NewBookService(newFakeBookStore())

	err := svc.DeleteBook(context.Background(), 1, 42)

	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
}

func TestBookByID_OtherInstitutionIsNotFound(t *testing.T) {
	store := newFakeBookStore()
	svc := NewBookService(store)

	book, err := svc.CreateBook(context.Background(), 1, validBook())
	require.NoError(t, err)

	_, err = svc.GetBookByID(context.Background(), 2, book.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)

	_, err = svc.UpdateBook(context.Background(), 2, book.ID, &dto.UpdateBookRequest{
		Title:    book.Title,
		Author:   book.Author,
		Category: book.Category,
		Level:    book.Level,
		Quantity: book.Quantity,
	})
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)

	err = svc.DeleteBook(context.Background(), 2, book.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
	assert.Len(t, store.books, 1, "the other institution's book must survive")
}
