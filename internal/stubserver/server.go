// Package stubserver is a local stand-in for the remote to-do service.
// It serves the same /api/todo JSON API, minting short-lived JWTs on
// login and keeping per-user tasks in memory. Used by the backend client
// tests and runnable standalone via cmd/todostub.
package stubserver

import (
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"todocli/internal/service"
)

// DefaultTokenTTL is how long issued tokens stay valid.
const DefaultTokenTTL = 24 * time.Hour

const emailCtxKey = "email"

// Server holds the in-memory state behind the stub API.
type Server struct {
	engine   *gin.Engine
	secret   []byte
	tokenTTL time.Duration
	log      zerolog.Logger

	mu    sync.Mutex
	users map[string]string         // email -> password
	tasks map[string][]service.Task // email -> tasks in creation order

	requests atomic.Int64
}

// New creates a stub server signing tokens with secret.
func New(secret string, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:   gin.New(),
		secret:   []byte(secret),
		tokenTTL: DefaultTokenTTL,
		log:      log,
		users:    make(map[string]string),
		tasks:    make(map[string][]service.Task),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.Use(func(c *gin.Context) {
		s.requests.Add(1)
		c.Next()
	})

	api := s.engine.Group("/api/todo")
	api.POST("/login", s.handleLogin)
	api.POST("/register", s.handleRegister)

	authed := api.Group("", s.authMiddleware)
	authed.GET("/", s.handleList)
	authed.GET("/:id", s.handleGet)
	authed.POST("/", s.handleCreate)
	authed.PATCH("/:id", s.handleUpdate)
	authed.DELETE("/:id", s.handleDelete)
}

// Handler returns the stub as an http.Handler for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the stub on addr, blocking until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info().Str("addr", addr).Msg("stub to-do service listening")
	return s.engine.Run(addr)
}

// RequestCount returns how many HTTP requests the stub has received.
func (s *Server) RequestCount() int64 {
	return s.requests.Load()
}

// AddUser registers an account without going through the API.
func (s *Server) AddUser(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
}

// SeedTask inserts a task for a user and returns its assigned ID.
func (s *Server) SeedTask(email string, t service.Task) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.tasks[email] = append(s.tasks[email], t)
	return t.ID
}

// MintToken issues a token for email with the given lifetime. A negative
// ttl produces an already-expired token, which is how the tests exercise
// the expiry path.
func (s *Server) MintToken(email string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization header required"})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization header"})
		return
	}

	claims := new(jwt.RegisteredClaims)
	_, err := jwt.ParseWithClaims(parts[1], claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		s.log.Debug().Err(err).Msg("rejected token")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
		return
	}

	c.Set(emailCtxKey, claims.Subject)
	c.Next()
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	s.mu.Lock()
	password, ok := s.users[creds.Email]
	s.mu.Unlock()

	if !ok || password != creds.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}

	token, err := s.MintToken(creds.Email, s.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

func (s *Server) handleRegister(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email and password are required"})
		return
	}

	s.mu.Lock()
	_, exists := s.users[creds.Email]
	if !exists {
		s.users[creds.Email] = creds.Password
	}
	s.mu.Unlock()

	if exists {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "email already registered"})
		return
	}

	token, err := s.MintToken(creds.Email, s.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to issue token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token})
}

func (s *Server) handleList(c *gin.Context) {
	email := c.GetString(emailCtxKey)

	s.mu.Lock()
	tasks := make([]service.Task, len(s.tasks[email]))
	copy(tasks, s.tasks[email])
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": tasks})
}

func (s *Server) handleGet(c *gin.Context) {
	email := c.GetString(emailCtxKey)
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks[email] {
		if t.ID == id {
			c.JSON(http.StatusOK, gin.H{"data": t})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
}

type createBody struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	EndDate   time.Time `json:"endDate"`
}

func (s *Server) handleCreate(c *gin.Context) {
	email := c.GetString(emailCtxKey)

	var body createBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title and content are required"})
		return
	}
	if body.EndDate.IsZero() {
		body.EndDate = time.Now().UTC()
	}

	task := service.Task{
		ID:        uuid.NewString(),
		Title:     body.Title,
		Content:   body.Content,
		Completed: body.Completed,
		EndDate:   body.EndDate,
	}

	s.mu.Lock()
	s.tasks[email] = append(s.tasks[email], task)
	s.mu.Unlock()

	s.log.Debug().Str("id", task.ID).Msg("task created")
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (s *Server) handleUpdate(c *gin.Context) {
	email := c.GetString(emailCtxKey)
	id := c.Param("id")

	var patch service.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks[email] {
		if t.ID != id {
			continue
		}
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Content != nil {
			t.Content = *patch.Content
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
		if patch.EndDate != nil {
			t.EndDate = *patch.EndDate
		}
		s.tasks[email][i] = t
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
}

func (s *Server) handleDelete(c *gin.Context) {
	email := c.GetString(emailCtxKey)
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks[email] {
		if t.ID == id {
			s.tasks[email] = append(s.tasks[email][:i], s.tasks[email][i+1:]...)
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
}
