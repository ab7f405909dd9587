package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ppiankov/factview/internal/session"
	"github.com/ppiankov/factview/internal/validate"
	"go.uber.org/zap"
)

type submitRequest struct {
	Text string `json:"text"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.store.Len()})
}

func (s *Server) createSession(c *gin.Context) {
	sess := s.store.Create()
	s.logger.Debug("session created", zap.String("session", sess.ID))
	c.JSON(http.StatusCreated, gin.H{"session_id": sess.ID})
}

func (s *Server) session(c *gin.Context) (*Session, bool) {
	sess, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return nil, false
	}
	return sess, true
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.builder.Build(sess.Controller.Snapshot()))
}

func (s *Server) deleteSession(c *gin.Context) {
	if _, ok := s.session(c); !ok {
		return
	}
	s.store.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (s *Server) submit(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad payload"})
		return
	}

	// rejected input never spends a rate token; Submit records it below
	if s.limiter != nil && validate.Request(req.Text) == nil && !s.limiter.AllowKey(sess.ID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many submissions, slow down"})
		return
	}

	ticket, err := sess.Controller.Submit(req.Text)
	if err != nil {
		var fieldErr *validate.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusUnprocessableEntity, fieldErr)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.wg.Add(1)
	go s.evaluate(sess, ticket)

	c.JSON(http.StatusAccepted, gin.H{
		"seq":  ticket.Seq,
		"view": s.builder.Build(sess.Controller.Snapshot()),
	})
}

func (s *Server) evaluate(sess *Session, ticket session.Ticket) {
	defer s.wg.Done()
	outcome := sess.Controller.Execute(s.ctx, ticket)
	if !sess.Controller.Resolve(ticket, outcome) {
		s.logger.Debug("superseded submission finished",
			zap.String("session", sess.ID),
			zap.Uint64("seq", ticket.Seq))
	}
}

func (s *Server) citations(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	succeeded, ok := sess.Controller.State().(session.Succeeded)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no result"})
		return
	}

	id, err := strconv.Atoi(c.Param("claim"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "claim id must be an integer"})
		return
	}

	detail, found := succeeded.Verdict.Claim(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown claim"})
		return
	}

	views := s.builder.Citations(detail)
	total := 0
	for _, v := range views {
		total += len(v.Sources)
	}

	c.JSON(http.StatusOK, gin.H{
		"claim_id":      detail.ID,
		"claim":         detail.Claim,
		"total_sources": total,
		"citations":     views,
	})
}
