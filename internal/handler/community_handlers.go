package handler

import (
	"net/http"

	"troubleshoot-titans/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getProfile(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	profile, err := h.svc.Profiles.Get(c.Request.Context(), session)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) updateProfile(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var update models.ProfileUpdate
	if !bindJSON(c, &update) {
		return
	}
	profile, err := h.svc.Profiles.Update(c.Request.Context(), session, update)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) getLeaderboard(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	view, err := h.svc.Leaderboard.Get(c.Request.Context(), session, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) listPosts(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	posts, next, err := h.svc.Forum.ListPosts(c.Request.Context(), c.Query("cursor"), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PaginatedResponse{Data: posts, NextCursor: next})
}

func (h *Handler) createPost(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req models.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.svc.Forum.CreatePost(c.Request.Context(), session, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *Handler) getPost(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	post, err := h.svc.Forum.GetPost(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) deletePost(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Forum.DeletePost(c.Request.Context(), session, id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listComments(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	comments, next, err := h.svc.Forum.ListComments(c.Request.Context(), id, c.Query("cursor"), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PaginatedResponse{Data: comments, NextCursor: next})
}

func (h *Handler) addComment(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req models.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.svc.Forum.AddComment(c.Request.Context(), session, id, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
