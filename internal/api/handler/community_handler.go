package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

// CommunityHandler handles comments, ratings and bookmarks.
type CommunityHandler struct {
	community ports.CommunityService
}

func NewCommunityHandler(community ports.CommunityService) *CommunityHandler {
	return &CommunityHandler{community: community}
}

type createCommentRequest struct {
	Text     string `json:"text"     validate:"required,max=2000"`
	ParentID string `json:"parentId"`
}

type rateContentRequest struct {
	Rating int `json:"rating" validate:"required,gte=1,lte=10"`
}

type rateCommentRequest struct {
	Positive *bool `json:"positive" validate:"required"`
}

type commentPageResponse struct {
	Items []*domain.Comment `json:"items"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
}

// ListComments handles GET /content/:id/comments.
//
// @Summary      List top-level comments for a content entry
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Content id"
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  commentPageResponse
// @Failure      404    {object}  errorResponse
// @Router       /content/{id}/comments [get]
func (h *CommunityHandler) ListComments(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 0)

	result, err := h.community.ListComments(c.Request().Context(), c.Param("id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commentPageResponse{
		Items: result.Items,
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
	})
}

// ListReplies handles GET /comments/:id/replies.
//
// @Summary      List replies to a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Comment id"
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {array}   domain.Comment
// @Failure      404    {object}  errorResponse
// @Router       /comments/{id}/replies [get]
func (h *CommunityHandler) ListReplies(c echo.Context) error {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 0)

	replies, err := h.community.ListReplies(c.Request().Context(), c.Param("id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, replies)
}

// CreateComment handles POST /content/:id/comments. Requires a verified email.
//
// @Summary      Comment on a content entry
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Content id"
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  domain.Comment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /content/{id}/comments [post]
func (h *CommunityHandler) CreateComment(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.community.CreateComment(c.Request().Context(), claims.ID, c.Param("id"), req.ParentID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /comments/:id. The author, a moderator or an
// admin may delete; replies go with the parent.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Comment id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /comments/{id} [delete]
func (h *CommunityHandler) DeleteComment(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.community.DeleteComment(c.Request().Context(), claims.ID, claims.Role, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RateContent handles PUT /content/:id/rating.
//
// @Summary      Rate a content entry
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Content id"
// @Param        body  body      rateContentRequest  true  "Rating (1-10)"
// @Success      200   {object}  domain.ContentRating
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /content/{id}/rating [put]
func (h *CommunityHandler) RateContent(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req rateContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.community.RateContent(c.Request().Context(), claims.ID, c.Param("id"), req.Rating)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rating)
}

// RemoveRating handles DELETE /content/:id/rating.
//
// @Summary      Remove own rating
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Content id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /content/{id}/rating [delete]
func (h *CommunityHandler) RemoveRating(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.community.RemoveRating(c.Request().Context(), claims.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRatings handles GET /users/me/ratings.
//
// @Summary      List own ratings
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ContentRating
// @Router       /users/me/ratings [get]
func (h *CommunityHandler) ListRatings(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ratings, err := h.community.ListUserRatings(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratings)
}

// RateComment handles PUT /comments/:id/rating.
//
// @Summary      Like or dislike a comment
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Comment id"
// @Param        body  body      rateCommentRequest  true  "Rating"
// @Success      200   {object}  domain.CommentRating
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /comments/{id}/rating [put]
func (h *CommunityHandler) RateComment(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req rateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.community.RateComment(c.Request().Context(), claims.ID, c.Param("id"), *req.Positive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rating)
}

// RemoveCommentRating handles DELETE /comments/:id/rating.
//
// @Summary      Remove own comment rating
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Comment id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /comments/{id}/rating [delete]
func (h *CommunityHandler) RemoveCommentRating(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.community.RemoveCommentRating(c.Request().Context(), claims.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCommentRatings handles GET /comments/:id/ratings.
//
// @Summary      List the ratings of a comment
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string  true  "Comment id"
// @Success      200  {array}  domain.CommentRating
// @Failure      404  {object}  errorResponse
// @Router       /comments/{id}/ratings [get]
func (h *CommunityHandler) ListCommentRatings(c echo.Context) error {
	ratings, err := h.community.ListCommentRatings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratings)
}

// ListMyCommentRatings handles GET /users/me/comment-ratings.
//
// @Summary      List own comment ratings
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.CommentRating
// @Router       /users/me/comment-ratings [get]
func (h *CommunityHandler) ListMyCommentRatings(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ratings, err := h.community.ListUserCommentRatings(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratings)
}

// AddBookmark handles POST /content/:id/bookmark.
//
// @Summary      Bookmark a content entry
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Content id"
// @Success      201  {object}  domain.Bookmark
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /content/{id}/bookmark [post]
func (h *CommunityHandler) AddBookmark(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	bookmark, err := h.community.AddBookmark(c.Request().Context(), claims.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bookmark)
}

// RemoveBookmark handles DELETE /content/:id/bookmark.
//
// @Summary      Remove a bookmark
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Content id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /content/{id}/bookmark [delete]
func (h *CommunityHandler) RemoveBookmark(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.community.RemoveBookmark(c.Request().Context(), claims.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBookmarks handles GET /bookmarks.
//
// @Summary      List own bookmarks
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Bookmark
// @Router       /bookmarks [get]
func (h *CommunityHandler) ListBookmarks(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	bookmarks, err := h.community.ListBookmarks(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarks)
}
