package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	bookmodel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
)

var authorErrors = map[error]response.ErrorSpec{
	model.ErrAuthorNotFound: {Status: http.StatusNotFound, Code: "AUTHOR_NOT_FOUND", Message: "The specified author does not exist"},
	model.ErrInvalidID:      {Status: http.StatusBadRequest, Code: "INVALID_ID", Message: "Author id must be a positive integer"},
}

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// Create - POST /v1/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body: "+err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if response.HandleError(c, err, authorErrors) {
		return
	}

	c.Header("Location", "/api/v1/authors/"+strconv.Itoa(created.ID))
	response.Success(c, http.StatusCreated, "Author created", created.ToResponse())
}

// GetByID - GET /v1/authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.HandleError(c, model.ErrInvalidID, authorErrors)
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if response.HandleError(c, err, authorErrors) {
		return
	}

	response.Success(c, http.StatusOK, "", a.ToResponse())
}

// List - GET /v1/authors?search=&limit=20&offset=0
func (h *AuthorHandler) List(c *gin.Context) {
	limit, offset := utils.ParsePagination(c, model.DefaultLimit)
	filter := model.AuthorFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	authors, page, err := h.service.List(c.Request.Context(), filter)
	if response.HandleError(c, err, authorErrors) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, lo.Map(authors, toAuthorResponse), &response.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  page.Total,
	})
}

// Update - PUT /v1/authors/:id (whole-record replace)
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.HandleError(c, model.ErrInvalidID, authorErrors)
		return
	}

	var req model.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body: "+err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if response.HandleError(c, err, authorErrors) {
		return
	}

	response.Success(c, http.StatusOK, "Author updated", updated.ToResponse())
}

// Delete - DELETE /v1/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.HandleError(c, model.ErrInvalidID, authorErrors)
		return
	}

	if response.HandleError(c, h.service.Delete(c.Request.Context(), id), authorErrors) {
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBooks - GET /v1/authors/:id/books
func (h *AuthorHandler) ListBooks(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		response.HandleError(c, model.ErrInvalidID, authorErrors)
		return
	}

	books, err := h.service.ListBooks(c.Request.Context(), id)
	if response.HandleError(c, err, authorErrors) {
		return
	}

	response.Success(c, http.StatusOK, "", lo.Map(books, func(b bookmodel.Book, _ int) bookmodel.BookResponse {
		return b.ToResponse()
	}))
}

func toAuthorResponse(a model.Author, _ int) model.AuthorResponse {
	return a.ToResponse()
}
