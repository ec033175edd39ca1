// Package server exposes the chat service over HTTP: the chat endpoint,
// a health probe, and a small status report.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/spf13/viper"

	"github.com/Dozuki/rag-guide-chat-poc/internal/answer"
	"github.com/Dozuki/rag-guide-chat-poc/internal/render"
	"github.com/Dozuki/rag-guide-chat-poc/internal/store"
	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

// Server serves the chat API backed by the answer service and the
// chunk store.
type Server struct {
	cfg    *viper.Viper
	store  store.Store
	answer *answer.Service
	log    *log.Logger
}

func New(cfg *viper.Viper, st store.Store, ans *answer.Service, logger *log.Logger) *Server {
	return &Server{cfg: cfg, store: st, answer: ans, log: logger}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/chat", s.cors(s.handleChat))
	mux.HandleFunc("/api/status", s.cors(s.handleStatus))
	return mux
}

// cors applies the configured allow-list. "*" (the default) admits any
// origin; otherwise the request origin must appear in the
// comma-separated list.
func (s *Server) cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := strings.TrimSpace(s.cfg.GetString("cors.allowed_origins"))
		origin := r.Header.Get("Origin")
		switch {
		case allowed == "" || allowed == "*":
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "":
			for _, o := range strings.Split(allowed, ",") {
				if strings.TrimSpace(o) == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
					break
				}
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if len(req.Messages) == 0 {
		http.Error(w, "at least one message is required", http.StatusBadRequest)
		return
	}

	// Answer the latest user message; everything before it is history.
	var question string
	lastUser := -1
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == api.RoleUser {
			question = strings.TrimSpace(req.Messages[i].Content)
			lastUser = i
			break
		}
	}
	if lastUser < 0 {
		http.Error(w, "at least one user message is required", http.StatusBadRequest)
		return
	}
	if question == "" {
		http.Error(w, "user message content cannot be empty", http.StatusBadRequest)
		return
	}
	var history []string
	for _, m := range req.Messages[:lastUser] {
		text := strings.TrimSpace(m.Content)
		if text == "" {
			continue
		}
		switch m.Role {
		case api.RoleUser:
			history = append(history, "User: "+text)
		case api.RoleAssistant:
			history = append(history, "Assistant: "+text)
		}
	}

	svc := *s.answer
	if req.TopK > 0 && req.TopK <= 20 {
		svc.TopK = req.TopK
	}
	res, err := svc.Answer(r.Context(), question, history)
	if err != nil {
		s.log.Printf("chat: answer failed: %v", err)
		// Retrieval errors are ours; generation errors are upstream.
		if errors.Is(err, answer.ErrRetrieval) {
			http.Error(w, "failed to search knowledge base", http.StatusInternalServerError)
		} else {
			http.Error(w, "failed to generate an answer", http.StatusBadGateway)
		}
		return
	}

	writeJSON(w, api.QueryResult{
		Answer:       res.Answer,
		AnswerHTML:   render.HTML(res.Answer),
		Sources:      res.Sources,
		NumContexts:  len(res.Contexts),
		SourceGuides: res.SourceGuides,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	count, err := s.store.Count(r.Context())
	if err != nil {
		http.Error(w, "status unavailable", http.StatusInternalServerError)
		return
	}
	guides, err := s.store.Guides(r.Context())
	if err != nil {
		http.Error(w, "status unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{
		"documents": count,
		"guides":    len(guides),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
