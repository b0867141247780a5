package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/app/services"
	"github.com/busiadev/ecdeavotmis/internal/middleware"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
)

// BookController handles book inventory operations
type BookController struct {
	bookService services.BookService
}

// NewBookController creates a new BookController
func NewBookController(bookService services.BookService) *BookController {
	return &BookController{
		bookService: bookService,
	}
}

// CreateBook adds a book to the inventory
// @Summary Add a book
// @Description Records a new book under the caller's institution
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookRequest true "Book information"
// @Success 201 {object} dto.APIResponse{data=dto.BookResponse} "Book added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution setup required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books [post]
func (c *BookController) CreateBook(ctx *gin.Context) {
	institutionID, _ := middleware.GetInstitutionID(ctx)

	var req dto.CreateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	book, err := c.bookService.CreateBook(ctx, institutionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromBook(book)))
}

// ListBooks lists books with search and filters
// @Summary List books
// @Description Returns books of the caller's institution, filtered and paginated
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term matched against title, author and ISBN"
// @Param category query string false "Category filter"
// @Param level query string false "Level filter"
// @Param status query string false "Status filter"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.BookListResponse} "Books retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Institution setup required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books [get]
func (c *BookController) ListBooks(ctx *gin.Context) {
	institutionID, _ := middleware.GetInstitutionID(ctx)

	var filter dto.BookFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	books, pagination, err := c.bookService.ListBooks(ctx, institutionID, &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.BookListResponse{
		Books:      make([]dto.BookResponse, 0, len(books)),
		Pagination: pagination,
	}
	for _, book := range books {
		response.Books = append(response.Books, dto.FromBook(book))
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(response, pagination))
}

// GetBookByID returns a single book
// @Summary Get a book
// @Description Returns a single book by its ID
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse} "Book retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid book ID"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{id} [get]
func (c *BookController) GetBookByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid book ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institutionID, _ := middleware.GetInstitutionID(ctx)
	book, err := c.bookService.GetBookByID(ctx, institutionID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromBook(book)))
}

// UpdateBook updates a book's record
// @Summary Update a book
// @Description Updates a book's descriptive and stock fields
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param request body dto.UpdateBookRequest true "Book fields"
// @Success 200 {object} dto.APIResponse{data=dto.BookResponse} "Book updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{id} [put]
func (c *BookController) UpdateBook(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid book ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	institutionID, _ := middleware.GetInstitutionID(ctx)
	book, err := c.bookService.UpdateBook(ctx, institutionID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromBook(book)))
}

// DeleteBook removes a book from the inventory
// @Summary Delete a book
// @Description Removes a book record from the inventory
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} dto.APIResponse{data=dto.MessageResponse} "Book deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid book ID"
// @Failure 404 {object} dto.ErrorResponse "Book not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /books/{id} [delete]
func (c *BookController) DeleteBook(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid book ID format").
			WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institutionID, _ := middleware.GetInstitutionID(ctx)
	if err := c.bookService.DeleteBook(ctx, institutionID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Book deleted"}))
}
