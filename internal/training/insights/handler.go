package insights

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/paceline/paceline/internal/telemetry/tracing"
	"github.com/paceline/paceline/internal/training/activity"
	"github.com/paceline/paceline/internal/training/baseline"
	"github.com/paceline/paceline/internal/training/splits"
	"github.com/paceline/paceline/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BaselineResponse struct {
	Available  bool                 `json:"available"`
	Comparison *baseline.Comparison `json:"comparison,omitempty"`
}

type SplitsResponse struct {
	Available bool             `json:"available"`
	Analysis  *splits.Analysis `json:"analysis,omitempty"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleRecovery(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.recovery")
	defer span.End()

	score, err := handler.service.Recovery(ctx, r.URL.Query().Get("user"))
	if err != nil {
		log.Errorf("failed to compute recovery score: %s", err)
		http.Error(w, "failed to compute recovery score", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, score)
}

func (handler *Handler) HandleBaseline(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.baseline")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	windowDays := 0
	if windowParam := r.URL.Query().Get("window"); windowParam != "" {
		windowDays, err = strconv.Atoi(windowParam)
		if err != nil || windowDays < 1 {
			http.Error(w, "error, invalid window", http.StatusBadRequest)
			return
		}
	}

	cmp, err := handler.service.Baseline(ctx, id, windowDays)
	if err != nil {
		if errors.Is(err, activity.ErrActivityNotFound) {
			http.Error(w, "activity not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to compute baseline for activity %d: %s", id, err)
		http.Error(w, "failed to compute baseline", http.StatusInternalServerError)
		return
	}

	// no baseline is a state of its own, not an error
	pkg.WriteJSONOK(w, BaselineResponse{
		Available:  cmp != nil,
		Comparison: cmp,
	})
}

func (handler *Handler) HandleSplits(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.splits")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	analysis, err := handler.service.Splits(ctx, id)
	if err != nil {
		if errors.Is(err, activity.ErrActivityNotFound) {
			http.Error(w, "activity not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to analyze splits for activity %d: %s", id, err)
		http.Error(w, "failed to analyze splits", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, SplitsResponse{
		Available: analysis != nil,
		Analysis:  analysis,
	})
}

func (handler *Handler) HandleVMA(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.vma")
	defer span.End()

	estimate, err := handler.service.VMA(ctx, r.URL.Query().Get("user"))
	if err != nil {
		log.Errorf("failed to estimate vma: %s", err)
		http.Error(w, "failed to estimate vma", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, estimate)
}

func (handler *Handler) HandleWeekSignals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.signals.week")
	defer span.End()

	weekSignals, err := handler.service.WeekSignals(ctx, r.URL.Query().Get("user"))
	if err != nil {
		log.Errorf("failed to compute week signals: %s", err)
		http.Error(w, "failed to compute week signals", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, weekSignals)
}

func (handler *Handler) HandleMonthSignals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.signals.month")
	defer span.End()

	monthSignals, err := handler.service.MonthSignals(ctx, r.URL.Query().Get("user"))
	if err != nil {
		log.Errorf("failed to compute month signals: %s", err)
		http.Error(w, "failed to compute month signals", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, monthSignals)
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights.dashboard")
	defer span.End()

	digest, err := handler.service.Dashboard(
		ctx,
		r.URL.Query().Get("user"),
		r.URL.Query().Get("lang"),
	)
	if err != nil {
		log.Errorf("failed to compute insights dashboard: %s", err)
		http.Error(w, "failed to compute insights", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, digest)
}

func pathID(r *http.Request) (int, error) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		return 0, errors.New("error, id empty")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, errors.New("error, id NaN")
	}
	return id, nil
}
