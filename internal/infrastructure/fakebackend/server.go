// Package fakebackend is an in-process implementation of the Curato REST
// contract for tests and local development. It keeps users and collections in
// memory, signs HS256 tokens and hashes passwords with bcrypt.
package fakebackend

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/curato/curation-client/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

type user struct {
	ID           string
	FullName     string
	Username     string
	Email        string
	Avatar       string
	PasswordHash string
}

// Server is the fake backend. It implements http.Handler.
type Server struct {
	e *echo.Echo

	mu          sync.RWMutex
	jwtSecret   []byte
	users       []*user
	collections []domain.Collection
	failures    map[string]int

	// Now stamps new collections. Defaults to time.Now.
	Now func() time.Time
}

// New builds the fake backend with all routes registered.
func New(jwtSecret string) *Server {
	s := &Server{
		jwtSecret: []byte(jwtSecret),
		failures:  make(map[string]int),
		Now:       time.Now,
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = httpErrorHandler
	e.Use(echomiddleware.Recover())
	e.Use(s.injectFailures)

	e.POST("/user/login", s.login)
	e.POST("/user/signup", s.signup)

	e.GET("/explore", s.explore)
	e.GET("/c/user/:userId", s.byUser)
	e.GET("/c/search/:query", s.search)
	e.GET("/c/:id", s.getCollection)

	e.GET("/collections", s.listOwn, s.auth)
	e.POST("/c", s.createCollection, s.auth)
	e.PUT("/c/:id", s.updateCollection, s.auth)
	e.DELETE("/c/:id", s.deleteCollection, s.auth)

	s.e = e
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// AddUser registers an account directly and returns its id.
func (s *Server) AddUser(fullName, username, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUserLocked(username) != nil || s.findUserLocked(email) != nil {
		return "", errUserExists
	}
	u := &user{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	s.users = append(s.users, u)
	return u.ID, nil
}

// AddCollection stores c as-is, assigning an id when missing.
func (s *Server) AddCollection(c domain.Collection) domain.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Key() == "" {
		c.ID = uuid.NewString()
	}
	s.collections = append(s.collections, c)
	return c
}

// Collections returns a copy of every stored collection.
func (s *Server) Collections() []domain.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Collection(nil), s.collections...)
}

// IssueToken signs a token for the user with the given id.
func (s *Server) IssueToken(userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == userID {
			return s.signLocked(u)
		}
	}
	return "", errInvalidCredentials
}

// RotateSecret invalidates every token issued so far.
func (s *Server) RotateSecret(secret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jwtSecret = []byte(secret)
}

// Fail makes every request to path answer with status until Recover is called.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// Recover removes an injected failure.
func (s *Server) Recover(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
}

func (s *Server) secret() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jwtSecret
}

func (s *Server) signLocked(u *user) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"fullName": u.FullName,
		"avatar":   u.Avatar,
		"iat":      now.Unix(),
		"exp":      now.Add(defaultTokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}

// findUserLocked matches identifier against username or email.
func (s *Server) findUserLocked(identifier string) *user {
	for _, u := range s.users {
		if strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier) {
			return u
		}
	}
	return nil
}

func (s *Server) userByIDLocked(id string) *user {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}
