package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"projecthub/internal/auth"
	"projecthub/internal/models"
)

type signupRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type signinRequest struct {
	UsernameOrEmail string `json:"username_or_email" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type userProfile struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func profileOf(u models.User) userProfile {
	return userProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
	}
}

// handleSignup registers a new account.
func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	user, err := s.registerUser(c, req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("user registered", slog.String("username", user.Username))
	respondSuccess(c, http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    profileOf(user),
	})
}

// handleSignin authenticates a user and issues a bearer token.
func (s *Server) handleSignin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	user, err := s.store.GetUserByLogin(c.Request.Context(), req.UsernameOrEmail)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.respondError(c, err)
		return
	}
	// Absent accounts and wrong passwords are indistinguishable to the caller.
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		s.respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"user":  profileOf(user),
	})
}

// handleListUsers returns the account directory for assignee pickers.
func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.store.ListUsers(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	profiles := make([]userProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, profileOf(u))
	}
	respondSuccess(c, http.StatusOK, gin.H{"users": profiles})
}

// handleCreateUser provisions an account on someone's behalf.
func (s *Server) handleCreateUser(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	user, err := s.registerUser(c, req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    profileOf(user),
	})
}

func (s *Server) registerUser(c *gin.Context, req signupRequest) (models.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	return s.store.CreateUser(c.Request.Context(), models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
}

// requireUser loads the authenticated caller's account.
func (s *Server) requireUser(c *gin.Context) (models.User, bool) {
	user, err := s.store.GetUserByUsername(c.Request.Context(), currentUsername(c))
	if err != nil {
		s.respondError(c, err)
		return models.User{}, false
	}
	return user, true
}
