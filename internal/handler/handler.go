package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sesp-cea/reajuste-service/internal/calc"
	"github.com/sesp-cea/reajuste-service/internal/report"
	"github.com/sesp-cea/reajuste-service/internal/repository"
	"github.com/sesp-cea/reajuste-service/internal/service"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc      *service.Service
	validate *validator.Validate
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createIndexRequest struct {
	ReferenceDate string `json:"reference_date" validate:"required,datetime=2006-01-02"`
	Name          string `json:"name"`
	Value         string `json:"value" validate:"required"`
}

// CreateIndex registers a monthly economic index value.
func (h *Handler) CreateIndex(w http.ResponseWriter, r *http.Request) {
	var req createIndexRequest
	if !h.decode(w, r, &req) {
		return
	}
	refDate, _ := time.Parse(dateLayout, req.ReferenceDate)
	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		respondError(w, http.StatusBadRequest, "value must be a decimal string")
		return
	}

	idx, err := h.svc.CreateIndex(refDate, req.Name, value)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, idx)
}

// ListIndices returns the registered index history.
func (h *Handler) ListIndices(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	indices, err := h.svc.ListIndices(limit)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, indices)
}

// GetIndex returns the index for one month.
func (h *Handler) GetIndex(w http.ResponseWriter, r *http.Request) {
	date, ok := h.pathDate(w, r)
	if !ok {
		return
	}
	idx, err := h.svc.GetIndex(date)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, idx)
}

// DeleteIndex removes an index value (administrative action).
func (h *Handler) DeleteIndex(w http.ResponseWriter, r *http.Request) {
	date, ok := h.pathDate(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteIndex(date); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createContractRequest struct {
	Number         string `json:"number" validate:"required"`
	Description    string `json:"description"`
	Company        string `json:"company" validate:"required"`
	BudgetBaseDate string `json:"budget_base_date" validate:"required,datetime=2006-01-02"`
	SignatureDate  string `json:"signature_date" validate:"required,datetime=2006-01-02"`
	InitialValue   string `json:"initial_value" validate:"required"`
}

// CreateContract registers a public-works contract.
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if !h.decode(w, r, &req) {
		return
	}
	budgetBase, _ := time.Parse(dateLayout, req.BudgetBaseDate)
	signature, _ := time.Parse(dateLayout, req.SignatureDate)
	initialValue, err := decimal.NewFromString(req.InitialValue)
	if err != nil {
		respondError(w, http.StatusBadRequest, "initial_value must be a decimal string")
		return
	}

	c, err := h.svc.CreateContract(req.Number, req.Description, req.Company, budgetBase, signature, initialValue)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// ListContracts returns all registered contracts.
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.svc.ListContracts()
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contracts)
}

// GetContract returns one contract.
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetContract(id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// DeleteContract removes a contract (administrative action).
func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteContract(id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type calculateRequest struct {
	AdjustmentDate   string `json:"adjustment_date" validate:"required,datetime=2006-01-02"`
	MeasurementValue string `json:"measurement_value" validate:"required"`
}

// Calculate runs an adjustment calculation for a contract and returns
// the ledger record that was appended.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req calculateRequest
	if !h.decode(w, r, &req) {
		return
	}
	adjustmentDate, _ := time.Parse(dateLayout, req.AdjustmentDate)
	measurement, err := decimal.NewFromString(req.MeasurementValue)
	if err != nil {
		respondError(w, http.StatusBadRequest, "measurement_value must be a decimal string")
		return
	}

	rec, err := h.svc.Calculate(r.Context(), id, adjustmentDate, measurement)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

// ListCalculations returns the ledger history for a contract, oldest
// calculation first.
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	records, err := h.svc.ListCalculations(id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Eligibility reports the interstice status of a contract as of today.
func (h *Handler) Eligibility(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	eligible, days, err := h.svc.Eligibility(id, time.Now())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"eligible":      eligible,
		"elapsed_days":  days,
		"required_days": calc.MinIntersticeDays,
	})
}

// Report renders the memória de cálculo for one ledger record.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	recID := mux.Vars(r)["id"]
	rec, err := h.svc.GetCalculation(recID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	contract, err := h.svc.GetContract(rec.ContractID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report.Build(rec, contract))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) pathDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := time.Parse(dateLayout, mux.Vars(r)["date"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

// respondServiceError maps domain errors onto HTTP statuses. Interstice
// failures carry the elapsed-day count so the caller can show progress.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var intersticeErr *calc.IntersticeError
	if errors.As(err, &intersticeErr) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":         intersticeErr.Error(),
			"elapsed_days":  intersticeErr.ElapsedDays,
			"required_days": calc.MinIntersticeDays,
		})
		return
	}

	var indexNotFound *calc.IndexNotFoundError
	var invalidIndex *calc.InvalidIndexError
	switch {
	case errors.As(err, &indexNotFound), errors.As(err, &invalidIndex):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrDuplicate):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
