package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type scrambleGuessRequest struct {
	Guess string `json:"guess" binding:"required"`
}

type letterGuessRequest struct {
	Letter string `json:"letter" binding:"required"`
}

func (h *Handler) startReflex(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Minigames.StartReflex(session))
}

func (h *Handler) reactReflex(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	snap, err := h.svc.Minigames.ReactReflex(session)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) startScramble(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	snap, err := h.svc.Minigames.StartScramble(session)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) guessScramble(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req scrambleGuessRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Minigames.GuessScramble(session, req.Guess)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) revealScramble(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	snap, err := h.svc.Minigames.RevealScramble(session)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) startWordGuess(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	snap, err := h.svc.Minigames.StartWordGuess(session)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) guessLetter(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		return
	}
	var req letterGuessRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Minigames.GuessLetter(session, req.Letter)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
