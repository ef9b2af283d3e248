package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dkrylov/irrbb-service/internal/export"
	"github.com/dkrylov/irrbb-service/internal/models"
	"github.com/dkrylov/irrbb-service/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

type generateRequest struct {
	Count int   `json:"count"`
	Seed  int64 `json:"seed"`
}

// GeneratePortfolio creates and stores a synthetic banking book
func (h *Handler) GeneratePortfolio(w http.ResponseWriter, r *http.Request) {
	req := generateRequest{Count: 100}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	positions, err := h.svc.GeneratePortfolio(req.Count, req.Seed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"count":     len(positions),
		"positions": positions,
	})
}

// UploadPositions replaces the stored book with a client-supplied one
func (h *Handler) UploadPositions(w http.ResponseWriter, r *http.Request) {
	var positions []models.Position
	if err := json.NewDecoder(r.Body).Decode(&positions); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	accepted, rejected, err := h.svc.IngestPositions(positions)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":    err.Error(),
			"rejected": rejected,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accepted": len(accepted),
		"rejected": rejected,
	})
}

// ListPositions returns the stored banking book
func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.svc.ListPositions()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, positions)
}

// RunValuation executes the full revaluation pipeline and returns the
// delta-EVE report
func (h *Handler) RunValuation(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.RunValuation(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valuation_date": result.ValuationDate,
		"baseline":       result.Baseline,
		"report":         result.Report,
		"excluded":       result.Excluded,
	})
}

// GetCurve returns the baseline date curve of the last run
func (h *Handler) GetCurve(w http.ResponseWriter, r *http.Request) {
	result := h.svc.LastResult()
	if result == nil {
		http.Error(w, "No valuation run available", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, result.DateCurve)
}

// GetCashFlows returns the baseline cash flows of the last run. The
// optional limit query parameter truncates the response.
func (h *Handler) GetCashFlows(w http.ResponseWriter, r *http.Request) {
	result := h.svc.LastResult()
	if result == nil {
		http.Error(w, "No valuation run available", http.StatusNotFound)
		return
	}

	flows := result.CashFlows
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		if limit < len(flows) {
			flows = flows[:limit]
		}
	}
	writeJSON(w, http.StatusOK, flows)
}

// GetGapTable returns the repricing gap table of the last run
func (h *Handler) GetGapTable(w http.ResponseWriter, r *http.Request) {
	result := h.svc.LastResult()
	if result == nil {
		http.Error(w, "No valuation run available", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, result.GapTable)
}

// GetReport returns the delta-EVE report of the last run
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	result := h.svc.LastResult()
	if result == nil {
		http.Error(w, "No valuation run available", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, result.Report)
}

// GetLatestRun returns the most recent persisted valuation run
func (h *Handler) GetLatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.svc.LatestRun()
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// ExportReportCSV renders the last delta-EVE report as CSV
func (h *Handler) ExportReportCSV(w http.ResponseWriter, r *http.Request) {
	result := h.svc.LastResult()
	if result == nil {
		http.Error(w, "No valuation run available", http.StatusNotFound)
		return
	}
	writeCSV(w, "delta_eve_report.csv", export.RenderReportCSV(result.Report))
}

// ExportGapTableCSV renders the last gap table as CSV
func (h *Handler) ExportGapTableCSV(w http.ResponseWriter, r *http.Request) {
	result := h.svc.LastResult()
	if result == nil {
		http.Error(w, "No valuation run available", http.StatusNotFound)
		return
	}
	writeCSV(w, "gap_table.csv", export.RenderGapTableCSV(result.GapTable))
}

// ExportCashFlowsCSV renders the last baseline cash flows as CSV
func (h *Handler) ExportCashFlowsCSV(w http.ResponseWriter, r *http.Request) {
	result := h.svc.LastResult()
	if result == nil {
		http.Error(w, "No valuation run available", http.StatusNotFound)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	writeCSV(w, "cash_flows.csv", export.RenderCashFlowsCSV(result.CashFlows, limit))
}

// ExportCurveCSV renders the last baseline curve as CSV
func (h *Handler) ExportCurveCSV(w http.ResponseWriter, r *http.Request) {
	result := h.svc.LastResult()
	if result == nil {
		http.Error(w, "No valuation run available", http.StatusNotFound)
		return
	}
	writeCSV(w, "curve.csv", export.RenderCurveCSV(result.DateCurve))
}

// ExportExcludedCSV renders the last run's excluded positions as CSV
func (h *Handler) ExportExcludedCSV(w http.ResponseWriter, r *http.Request) {
	result := h.svc.LastResult()
	if result == nil {
		http.Error(w, "No valuation run available", http.StatusNotFound)
		return
	}
	writeCSV(w, "excluded_positions.csv", export.RenderExcludedCSV(result.Excluded))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeCSV(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
