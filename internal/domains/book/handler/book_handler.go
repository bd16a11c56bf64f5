package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
)

var bookErrors = map[error]response.ErrorSpec{
	model.ErrBookNotFound:       {Status: http.StatusNotFound, Code: "BOOK_NOT_FOUND", Message: "The specified book does not exist"},
	model.ErrInvalidID:          {Status: http.StatusBadRequest, Code: "INVALID_ID", Message: "Id must be a positive integer"},
	model.ErrLinkNotFound:       {Status: http.StatusNotFound, Code: "LINK_NOT_FOUND", Message: "The author is not linked to this book"},
	model.ErrLinkTargetNotFound: {Status: http.StatusNotFound, Code: "LINK_TARGET_NOT_FOUND", Message: "The author or book does not exist"},
	model.ErrAlreadyLinked:      {Status: http.StatusConflict, Code: "ALREADY_LINKED", Message: "The author is already linked to this book"},
}

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

// Create - POST /v1/books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body: "+err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if response.HandleError(c, err, bookErrors) {
		return
	}

	c.Header("Location", "/api/v1/books/"+strconv.Itoa(created.ID))
	response.Success(c, http.StatusCreated, "Book created", created.ToResponse())
}

// GetByID - GET /v1/books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.HandleError(c, model.ErrInvalidID, bookErrors)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if response.HandleError(c, err, bookErrors) {
		return
	}

	response.Success(c, http.StatusOK, "", b.ToResponse())
}

// List - GET /v1/books?search=&limit=20&offset=0
func (h *BookHandler) List(c *gin.Context) {
	limit, offset := utils.ParsePagination(c, model.DefaultLimit)
	filter := model.BookFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	books, page, err := h.service.List(c.Request.Context(), filter)
	if response.HandleError(c, err, bookErrors) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, lo.Map(books, toBookResponse), &response.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  page.Total,
	})
}

// Update - PUT /v1/books/:id (whole-record replace)
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.HandleError(c, model.ErrInvalidID, bookErrors)
		return
	}

	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body: "+err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if response.HandleError(c, err, bookErrors) {
		return
	}

	response.Success(c, http.StatusOK, "Book updated", updated.ToResponse())
}

// Delete - DELETE /v1/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.HandleError(c, model.ErrInvalidID, bookErrors)
		return
	}

	if response.HandleError(c, h.service.Delete(c.Request.Context(), id), bookErrors) {
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAuthors - GET /v1/books/:id/authors
func (h *BookHandler) ListAuthors(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.HandleError(c, model.ErrInvalidID, bookErrors)
		return
	}

	authors, err := h.service.ListAuthors(c.Request.Context(), id)
	if response.HandleError(c, err, bookErrors) {
		return
	}

	response.Success(c, http.StatusOK, "", lo.Map(authors, func(a authormodel.Author, _ int) authormodel.AuthorResponse {
		return a.ToResponse()
	}))
}

// LinkAuthor - PUT /v1/books/:id/authors/:authorId
func (h *BookHandler) LinkAuthor(c *gin.Context) {
	bookID, authorID, ok := linkParams(c)
	if !ok {
		response.HandleError(c, model.ErrInvalidID, bookErrors)
		return
	}

	if response.HandleError(c, h.service.LinkAuthor(c.Request.Context(), bookID, authorID), bookErrors) {
		return
	}

	response.Success(c, http.StatusCreated, "Author linked", model.AuthorBook{AuthorID: authorID, BookID: bookID})
}

// UnlinkAuthor - DELETE /v1/books/:id/authors/:authorId
func (h *BookHandler) UnlinkAuthor(c *gin.Context) {
	bookID, authorID, ok := linkParams(c)
	if !ok {
		response.HandleError(c, model.ErrInvalidID, bookErrors)
		return
	}

	if response.HandleError(c, h.service.UnlinkAuthor(c.Request.Context(), bookID, authorID), bookErrors) {
		return
	}

	c.Status(http.StatusNoContent)
}

func linkParams(c *gin.Context) (bookID, authorID int, ok bool) {
	bookID, ok = utils.ParseIDParam(c, "id")
	if !ok {
		return 0, 0, false
	}
	authorID, ok = utils.ParseIDParam(c, "authorId")
	return bookID, authorID, ok
}

func toBookResponse(b model.Book, _ int) model.BookResponse {
	return b.ToResponse()
}
