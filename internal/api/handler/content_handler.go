package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

// ContentHandler handles catalogue and genre endpoints.
type ContentHandler struct {
	content ports.ContentService
}

func NewContentHandler(content ports.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// List handles GET /content with optional type filter and pagination.
//
// @Summary      List catalogue entries
// @Tags         content
// @Produce      json
// @Param        type   query     string  false  "Filter by type (MOVIE or SERIES)"
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  contentPageResponse
// @Failure      400    {object}  errorResponse
// @Router       /content [get]
func (h *ContentHandler) List(c echo.Context) error {
	contentType := domain.ContentType(c.QueryParam("type"))
	if contentType != "" && contentType != domain.TypeMovie && contentType != domain.TypeSeries {
		return echo.NewHTTPError(http.StatusBadRequest, "type must be MOVIE or SERIES")
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 0)

	result, err := h.content.List(c.Request().Context(), contentType, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contentPageResponse{
		Items: result.Items,
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
	})
}

// Get handles GET /content/:id.
//
// @Summary      Get a catalogue entry
// @Tags         content
// @Produce      json
// @Param        id   path      string  true  "Content id"
// @Success      200  {object}  domain.Content
// @Failure      404  {object}  errorResponse
// @Router       /content/{id} [get]
func (h *ContentHandler) Get(c echo.Context) error {
	content, err := h.content.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content)
}

// Create handles POST /content (admin only).
//
// @Summary      Create a catalogue entry
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      contentRequest  true  "Catalogue entry"
// @Success      201   {object}  domain.Content
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /content [post]
func (h *ContentHandler) Create(c echo.Context) error {
	input, err := bindContentInput(c)
	if err != nil {
		return err
	}

	content, err := h.content.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, content)
}

// Update handles PUT /content/:id (admin only).
//
// @Summary      Update a catalogue entry
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Content id"
// @Param        body  body      contentRequest  true  "Catalogue entry"
// @Success      200   {object}  domain.Content
// @Failure      404   {object}  errorResponse
// @Router       /content/{id} [put]
func (h *ContentHandler) Update(c echo.Context) error {
	input, err := bindContentInput(c)
	if err != nil {
		return err
	}

	content, err := h.content.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content)
}

// Delete handles DELETE /content/:id (admin only).
//
// @Summary      Delete a catalogue entry
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Content id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /content/{id} [delete]
func (h *ContentHandler) Delete(c echo.Context) error {
	if err := h.content.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetPoster handles PUT /content/:id/poster (admin only).
//
// @Summary      Upload a poster image
// @Tags         content
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Content id"
// @Param        poster  formData  file    true  "Poster image"
// @Success      200     {object}  domain.Content
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /content/{id}/poster [put]
func (h *ContentHandler) SetPoster(c echo.Context) error {
	poster, err := formFileUpload(c, "poster")
	if err != nil {
		return err
	}
	if poster == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing poster file")
	}

	content, err := h.content.SetPoster(c.Request().Context(), c.Param("id"), *poster)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content)
}

// ListGenres handles GET /genres.
//
// @Summary      List genres
// @Tags         genres
// @Produce      json
// @Success      200  {array}  domain.Genre
// @Router       /genres [get]
func (h *ContentHandler) ListGenres(c echo.Context) error {
	genres, err := h.content.ListGenres(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, genres)
}

// SearchGenres handles GET /genres/search.
//
// @Summary      Search genres by name
// @Tags         genres
// @Produce      json
// @Param        q    query     string  true  "Search term"
// @Success      200  {array}   domain.Genre
// @Failure      400  {object}  errorResponse
// @Router       /genres/search [get]
func (h *ContentHandler) SearchGenres(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing search term")
	}

	genres, err := h.content.SearchGenres(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, genres)
}

// CreateGenre handles POST /genres (admin only).
//
// @Summary      Create a genre
// @Tags         genres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      genreRequest  true  "Genre"
// @Success      201   {object}  domain.Genre
// @Failure      409   {object}  errorResponse
// @Router       /genres [post]
func (h *ContentHandler) CreateGenre(c echo.Context) error {
	var req genreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	genre, err := h.content.CreateGenre(c.Request().Context(), req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, genre)
}

// UpdateGenre handles PUT /genres/:id (admin only).
//
// @Summary      Update a genre
// @Tags         genres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Genre id"
// @Param        body  body      genreRequest  true  "Genre"
// @Success      200   {object}  domain.Genre
// @Failure      404   {object}  errorResponse
// @Router       /genres/{id} [put]
func (h *ContentHandler) UpdateGenre(c echo.Context) error {
	var req genreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	genre, err := h.content.UpdateGenre(c.Request().Context(), c.Param("id"), req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, genre)
}

// DeleteGenre handles DELETE /genres/:id (admin only).
//
// @Summary      Delete a genre
// @Tags         genres
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Genre id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /genres/{id} [delete]
func (h *ContentHandler) DeleteGenre(c echo.Context) error {
	if err := h.content.DeleteGenre(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// bindContentInput binds and validates the shared create/update payload.
func bindContentInput(c echo.Context) (ports.ContentInput, error) {
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return ports.ContentInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.ContentInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ports.ContentInput{
		Type:          domain.ContentType(req.Type),
		Title:         req.Title,
		OriginalTitle: req.OriginalTitle,
		Description:   req.Description,
		ReleaseYear:   req.ReleaseYear,
		AgeRating:     req.AgeRating,
		DurationMin:   req.DurationMin,
		Seasons:       req.Seasons,
		GenreIDs:      req.GenreIDs,
	}, nil
}

// queryInt parses an integer query parameter, falling back on absence or
// garbage.
func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
