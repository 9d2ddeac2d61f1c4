package fakebackend

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/curato/curation-client/internal/core/domain"
)

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	Signature string `json:"signature"`
}

type signupRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Dob      string `json:"dob"      validate:"required"`
	Phone    string `json:"phone"    validate:"required"`
}

type msgResponse struct {
	Msg string `json:"msg"`
}

type resultResponse[T any] struct {
	Result T `json:"result"`
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findUserLocked(req.Identifier)
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return errInvalidCredentials
	}

	token, err := s.signLocked(u)
	if err != nil {
		return err
	}
	signature := token[strings.LastIndex(token, ".")+1:]
	return c.JSON(http.StatusOK, loginResponse{Token: token, Signature: signature})
}

func (s *Server) signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := s.AddUser(req.FullName, req.Username, req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msgResponse{Msg: "Signup successful"})
}

func (s *Server) explore(c echo.Context) error {
	return c.JSON(http.StatusOK, resultResponse[[]domain.Collection]{Result: s.filter(func(domain.Collection) bool { return true })})
}

func (s *Server) listOwn(c echo.Context) error {
	userID, _ := c.Get(ctxUserID).(string)
	return c.JSON(http.StatusOK, resultResponse[[]domain.Collection]{Result: s.ownedBy(userID)})
}

func (s *Server) byUser(c echo.Context) error {
	return c.JSON(http.StatusOK, resultResponse[[]domain.Collection]{Result: s.ownedBy(c.Param("userId"))})
}

func (s *Server) search(c echo.Context) error {
	q := c.Param("query")
	if unescaped, err := url.PathUnescape(q); err == nil {
		q = unescaped
	}
	q = strings.ToLower(strings.TrimSpace(q))
	matches := s.filter(func(col domain.Collection) bool {
		return strings.Contains(strings.ToLower(col.Title), q) ||
			strings.Contains(strings.ToLower(col.Description), q)
	})
	return c.JSON(http.StatusOK, resultResponse[[]domain.Collection]{Result: matches})
}

func (s *Server) getCollection(c echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(c.Param("id"))
	if i < 0 {
		return errNotFound
	}
	return c.JSON(http.StatusOK, resultResponse[domain.Collection]{Result: s.collections[i]})
}

func (s *Server) createCollection(c echo.Context) error {
	var in domain.CollectionInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	userID, _ := c.Get(ctxUserID).(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	col := domain.Collection{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   domain.Timestamp{Time: s.Now().UTC()},
	}
	if u := s.userByIDLocked(userID); u != nil {
		col.Creator = &domain.CreatorSummary{ID: u.ID, FullName: u.FullName, Username: u.Username, Avatar: u.Avatar}
	}
	s.collections = append(s.collections, col)
	return c.JSON(http.StatusCreated, resultResponse[domain.Collection]{Result: col})
}

func (s *Server) updateCollection(c echo.Context) error {
	var patch domain.CollectionPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	userID, _ := c.Get(ctxUserID).(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(c.Param("id"))
	if i < 0 {
		return errNotFound
	}
	if !ownedLocked(s.collections[i], userID) {
		return errForbidden
	}
	s.collections[i] = patch.Apply(s.collections[i])
	return c.JSON(http.StatusOK, resultResponse[domain.Collection]{Result: s.collections[i]})
}

func (s *Server) deleteCollection(c echo.Context) error {
	userID, _ := c.Get(ctxUserID).(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(c.Param("id"))
	if i < 0 {
		return errNotFound
	}
	if !ownedLocked(s.collections[i], userID) {
		return errForbidden
	}
	s.collections = append(s.collections[:i], s.collections[i+1:]...)
	return c.JSON(http.StatusOK, msgResponse{Msg: "Collection deleted"})
}

func (s *Server) ownedBy(userID string) []domain.Collection {
	return s.filter(func(col domain.Collection) bool { return ownedLocked(col, userID) })
}

func (s *Server) filter(keep func(domain.Collection) bool) []domain.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Collection, 0, len(s.collections))
	for _, col := range s.collections {
		if keep(col) {
			out = append(out, col)
		}
	}
	return out
}

func (s *Server) indexLocked(id string) int {
	for i, col := range s.collections {
		if col.Matches(id) {
			return i
		}
	}
	return -1
}

func ownedLocked(col domain.Collection, userID string) bool {
	return col.Creator != nil && userID != "" && col.Creator.ID == userID
}
