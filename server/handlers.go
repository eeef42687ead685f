package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	commsig "github.com/commsiglabs/commsig-go"
)

// ──────────────────────────────────────────────
// Request / response shapes
// ──────────────────────────────────────────────

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type assessmentRequest struct {
	UserID  string                 `json:"user_id"`
	Answers []commsig.SurveyAnswer `json:"answers"`
}

type profileRequest struct {
	Signature string                            `json:"signature"`
	Traits    map[commsig.TraitDimension]string `json:"traits"`
}

type healthResponse struct {
	Status        string                `json:"status"`
	Store         string                `json:"store"`
	UptimeSeconds int64                 `json:"uptime_seconds"`
	Engine        commsig.StatsSnapshot `json:"engine"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ──────────────────────────────────────────────
// Handlers
// ──────────────────────────────────────────────

// handleChat answers one message. Users without a stored profile get the
// no-assessment variants rather than an error.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var profile *commsig.TraitProfile
	rec, err := s.Storage.Profile(r.Context(), req.UserID)
	switch {
	case err == nil:
		profile = rec.TraitProfile()
	case errors.Is(err, commsig.ErrNotFound):
		// no assessment on file yet
	default:
		s.logger.Error("profile lookup", zap.String("user_id", req.UserID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	writeJSON(w, http.StatusOK, s.Responder.Respond(req.Message, profile))
}

// handleSurvey returns the built-in questionnaire.
func (s *Server) handleSurvey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, commsig.Survey())
}

// handleSubmitAssessment scores a survey submission, stores it, and
// refreshes the user's profile. Resubmitting identical answers replays the
// stored assessment instead of minting a new one.
func (s *Server) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "answers are required")
		return
	}

	// 1. Replay check: same user, same answers -> same assessment.
	hash := commsig.AnswersHash(req.UserID, req.Answers)
	existing, err := s.Storage.AssessmentByHash(r.Context(), req.UserID, hash)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, existing)
		return
	case !errors.Is(err, commsig.ErrNotFound):
		s.logger.Error("assessment replay lookup", zap.String("user_id", req.UserID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	// 2. Score the answers.
	result, err := commsig.ScoreSurvey(req.Answers)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// 3. Store the assessment.
	now := time.Now().UTC()
	rec := &commsig.AssessmentRecord{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Answers:     req.Answers,
		Traits:      result.Traits,
		Signature:   result.Signature,
		ContentHash: hash,
		CreatedAt:   now,
	}
	if err := s.Storage.PutAssessment(r.Context(), rec); err != nil {
		s.logger.Error("assessment store", zap.String("user_id", req.UserID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	// 4. Refresh the profile so the chat endpoint picks it up immediately.
	profile := &commsig.ProfileRecord{
		UserID:    req.UserID,
		Signature: result.Signature,
		Traits:    result.Traits,
		UpdatedAt: now,
	}
	if err := s.Storage.PutProfile(r.Context(), profile); err != nil {
		s.logger.Error("profile store", zap.String("user_id", req.UserID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// handleGetAssessment returns one stored assessment by ID.
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Storage.Assessment(r.Context(), r.PathValue("id"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rec)
	case errors.Is(err, commsig.ErrNotFound):
		writeError(w, http.StatusNotFound, "assessment not found")
	default:
		s.logger.Error("assessment lookup", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage unavailable")
	}
}

// handleGetProfile returns the stored profile for a user.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	rec, err := s.Storage.Profile(r.Context(), userID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rec)
	case errors.Is(err, commsig.ErrNotFound):
		writeError(w, http.StatusNotFound, "profile not found")
	default:
		s.logger.Error("profile lookup", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage unavailable")
	}
}

// handlePutProfile stores a profile directly, deriving the signature from
// the traits when the caller omits it.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Traits) == 0 {
		writeError(w, http.StatusBadRequest, "traits are required")
		return
	}

	signature := req.Signature
	if signature == "" {
		signature = commsig.DeriveSignature(req.Traits)
	}
	rec := &commsig.ProfileRecord{
		UserID:    userID,
		Signature: signature,
		Traits:    req.Traits,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Storage.PutProfile(r.Context(), rec); err != nil {
		s.logger.Error("profile store", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleCreatePurchase runs one capture attempt through the gateway and
// records the verdict. Declines are recorded too, with their own status.
func (s *Server) handleCreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req commsig.PaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.Plan == "" {
		writeError(w, http.StatusBadRequest, "plan is required")
		return
	}

	result, err := s.Gateway.Capture(r.Context(), req)
	if err != nil {
		s.logger.Error("payment capture", zap.String("user_id", req.UserID), zap.Error(err))
		writeError(w, http.StatusBadGateway, "payment gateway unavailable")
		return
	}

	rec := &commsig.PurchaseRecord{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Plan:        req.Plan,
		AmountCents: req.AmountCents,
		Status:      result.Status,
		Receipt:     result.Receipt,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Storage.PutPurchase(r.Context(), rec); err != nil {
		s.logger.Error("purchase store", zap.String("user_id", req.UserID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// handleListPurchases returns a user's purchases, oldest first.
func (s *Server) handleListPurchases(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	recs, err := s.Storage.Purchases(r.Context(), userID)
	if err != nil {
		s.logger.Error("purchase list", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// handleHealth reports liveness plus engine counters.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Store:         s.Config.Store,
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		Engine:        s.Responder.Stats(),
	})
}

// ──────────────────────────────────────────────
// JSON helpers
// ──────────────────────────────────────────────

// decodeJSON decodes the request body into dst. On failure it writes the
// error response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	writeError(w, http.StatusBadRequest, "invalid JSON body")
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
