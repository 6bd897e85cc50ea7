package authserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/stocklearn/internal/auth"
	"github.com/abhisek/stocklearn/internal/store"
)

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type profileResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Number  string `json:"number"`
	Address string `json:"address"`
	WardNo  int    `json:"wardNo"`
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req auth.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := auth.ValidateSignup(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	ward, _ := strconv.Atoi(req.WardNo)
	u, err := s.users.CreateUser(r.Context(), store.User{
		Name:         req.Name,
		Number:       req.Number,
		Email:        req.Email,
		PasswordHash: string(hash),
		Address:      req.Address,
		WardNo:       ward,
	})
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			respondWithError(w, http.StatusConflict, "User already exists")
			return
		}
		s.log.Error("create user", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := s.issueToken(u)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create token")
		return
	}
	respondWithJSON(w, http.StatusCreated, tokenResponse{Message: "Signup successful", Token: token})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := auth.ValidateLogin(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.users.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.log.Error("find user", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := s.issueToken(u)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create token")
		return
	}
	respondWithJSON(w, http.StatusOK, tokenResponse{Message: "Login successful", Token: token})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	u, err := s.users.UserByEmail(r.Context(), claims.Email)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	respondWithJSON(w, http.StatusOK, profileResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Number:  u.Number,
		Address: u.Address,
		WardNo:  u.WardNo,
	})
}
