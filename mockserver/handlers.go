package mockserver

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/contentgen/llm"
	"github.com/kbukum/contentgen/llm/mock"
	"github.com/kbukum/contentgen/llm/ollama"
)

func (s *Server) hotList(c *gin.Context) {
	if s.cfg.Token != "" && c.GetHeader("Authorization") != "Bearer "+s.cfg.Token {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
			return
		}
		page = n
	}
	s.hotRequests.Add(1)
	c.JSON(http.StatusOK, HotPage{Data: s.page(page)})
}

// page returns the 1-based page of topics, or an empty slice past the end.
func (s *Server) page(n int) []HotItem {
	size := s.cfg.PageSize
	if size <= 0 {
		size = len(s.topics)
	}
	start := (n - 1) * size
	if size == 0 || start >= len(s.topics) {
		return []HotItem{}
	}
	end := min(start+size, len(s.topics))
	return s.topics[start:end]
}

func (s *Server) chat(c *gin.Context) {
	var req ollama.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Stream {
		c.JSON(http.StatusBadRequest, gin.H{"error": "streaming is not supported"})
		return
	}

	in := llm.Request{Model: req.Model}
	var user []string
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			in.SystemPrompt = m.Content
		case "user":
			user = append(user, m.Content)
		}
	}
	if len(user) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a user message is required"})
		return
	}
	in.UserPrompt = strings.Join(user, "\n")

	out, err := s.model.Execute(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	model := req.Model
	if model == "" {
		model = mock.ModelName
	}
	c.JSON(http.StatusOK, ollama.ChatResponse{
		Model:           model,
		Message:         llm.Message{Role: "assistant", Content: out.Content},
		Done:            true,
		PromptEvalCount: utf8.RuneCountInString(in.SystemPrompt + in.UserPrompt),
		EvalCount:       utf8.RuneCountInString(out.Content),
	})
}

func (s *Server) tags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": []gin.H{{"name": mock.ModelName}}})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "mockserver"})
}
