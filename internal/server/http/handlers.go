package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/radiologix/internal/server/scans"
	"github.com/dmitrijs2005/radiologix/internal/server/users"
	"github.com/dmitrijs2005/radiologix/internal/shared"
)

const rootMessage = "Radiologix API - Advanced Radiology Solutions"

// multipartMemory is the in-memory part of a parsed scan form; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type scanResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ScanType  string    `json:"scan_type"`
	ImageData string    `json:"image_data"`
	AIReport  string    `json:"ai_report"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *users.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toScanResponse(s *scans.Scan) scanResponse {
	return scanResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		ScanType:  s.ScanType,
		ImageData: s.ImageData,
		AIReport:  s.AIReport,
		CreatedAt: s.CreatedAt,
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": rootMessage})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": s.now().UTC(),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	user, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrorAlreadyExists):
			writeError(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, shared.ErrorValidation):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			s.logger.Error(r.Context(), "register", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrorInvalidCredentials) {
			s.metrics.loginFailures.Inc()
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.Error(r.Context(), "login", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(userFromContext(r.Context())))
}

func (s *Server) handleCreateScan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, "Invalid form data")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	user := userFromContext(r.Context())
	scan, err := s.scans.Create(r.Context(), user.ID, r.FormValue("scan_type"), r.FormValue("image_data"))
	if err != nil {
		if errors.Is(err, shared.ErrorValidation) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error(r.Context(), "create scan", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.metrics.scansSubmitted.WithLabelValues(scan.ScanType).Inc()
	writeJSON(w, http.StatusOK, toScanResponse(scan))
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	list, err := s.scans.List(r.Context(), user.ID)
	if err != nil {
		s.logger.Error(r.Context(), "list scans", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]scanResponse, 0, len(list))
	for _, sc := range list {
		out = append(out, toScanResponse(sc))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	scan, err := s.scans.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Scan not found")
			return
		}
		s.logger.Error(r.Context(), "get scan", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toScanResponse(scan))
}
