package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/solvewise/internal/llm"
	"github.com/abhisek/solvewise/internal/tutor"
)

// chatRequest is the body of POST /chat.
type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	Topic     string `json:"topic,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sid := s.sessionID(r, req)
	w.Header().Set(sessionHeader, sid)

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if s.cfg.RequireTopic && strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusBadRequest, "topic required")
		return
	}

	reply, err := s.tutor.Answer(r.Context(), tutor.Question{
		Message:   req.Message,
		SessionID: sid,
		Topic:     req.Topic,
	})
	if err != nil {
		status, msg := errorStatus(err)
		s.logger.Warn("chat failed",
			zap.String("session_id", sid),
			zap.Int("status", status),
			zap.Error(err))
		writeError(w, status, msg)
		return
	}

	if text, ok := reply.(string); ok {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(text))
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) sessionID(r *http.Request, req chatRequest) string {
	if sid := strings.TrimSpace(req.SessionID); sid != "" {
		return sid
	}
	if sid := strings.TrimSpace(r.Header.Get(sessionHeader)); sid != "" {
		return sid
	}
	return s.newID()
}

// errorStatus maps a tutor failure to an HTTP status and a message safe to
// show the student.
func errorStatus(err error) (int, string) {
	var (
		rateLimit   *llm.ErrRateLimit
		unavailable *llm.ErrProviderUnavailable
		invalid     *llm.ErrInvalidResponse
		truncated   *llm.ErrMaxTokensExceeded
	)
	switch {
	case errors.Is(err, tutor.ErrEmptyMessage):
		return http.StatusBadRequest, "message is required"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "the tutor took too long to answer"
	case errors.As(err, &rateLimit):
		return http.StatusServiceUnavailable, "the tutor is busy, please try again shortly"
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable, "the tutor is unavailable right now"
	case errors.As(err, &invalid), errors.As(err, &truncated):
		return http.StatusBadGateway, "the tutor returned an unreadable answer"
	}
	return http.StatusBadGateway, "the tutor could not answer"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func newSessionID() string {
	return uuid.NewString()
}
