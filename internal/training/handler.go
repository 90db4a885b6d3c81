package training

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/paceline/paceline/internal/telemetry/metrics"
	"github.com/paceline/paceline/internal/telemetry/tracing"
	"github.com/paceline/paceline/internal/training/activity"
	"github.com/paceline/paceline/internal/training/normalize"
	"github.com/paceline/paceline/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=training_test

type activityRepo interface {
	Add(ctx context.Context, a activity.Activity) (*activity.Activity, error)
	Get(ctx context.Context, id int) (*activity.Activity, error)
	List(ctx context.Context, params activity.ListParams) (_ []activity.Activity, total int, err error)
	Update(ctx context.Context, a *activity.Activity) error
	Delete(ctx context.Context, id int) error
	SetGoal(ctx context.Context, goal activity.Goal) (*activity.Goal, error)
	GetGoal(ctx context.Context, userID string) (*activity.Goal, error)
}

type DeleteActivityResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateActivityResponse struct {
	UpdatedID int `json:"updatedId"`
}

type ListResponse struct {
	Activities []activity.Activity `json:"activities"`
	Total      int                 `json:"total"`
}

type Handler struct {
	repo                activityRepo
	metrics             *metrics.Manager
	defaultMaxHeartRate float64
}

func NewHandler(repo activityRepo, metricsManager *metrics.Manager, defaultMaxHeartRate float64) *Handler {
	return &Handler{
		repo:                repo,
		metrics:             metricsManager,
		defaultMaxHeartRate: defaultMaxHeartRate,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var a activity.Activity
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		log.Tracef("new activity, unmarshal json params: %s", err)
		http.Error(w, "add activity failed", http.StatusBadRequest)
		return
	}

	if !a.Type.Valid() {
		http.Error(w, "error, invalid activity type", http.StatusBadRequest)
		return
	}
	if a.DurationMin <= 0 || a.DistanceKm < 0 {
		http.Error(w, "error, invalid duration or distance", http.StatusBadRequest)
		return
	}

	if a.Date.IsZero() {
		a.Date = time.Now()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	handler.normalizeMetrics(&a)

	addedActivity, err := handler.repo.Add(ctx, a)
	if errors.Is(err, activity.ErrActivityExists) {
		http.Error(w, "error, activity already exists", http.StatusConflict)
		return
	}
	if err != nil {
		log.Errorf("failed to add new activity [%s] [%s]: %s", a.UserID, a.Type, err)
		http.Error(w, "error, failed to add new activity", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterActivitiesAdded.Inc()

	addedJson, err := json.Marshal(addedActivity)
	if err != nil {
		log.Errorf("failed to marshal new activity: %s", err)
		http.Error(w, "error, failed to add new activity", http.StatusInternalServerError)
		return
	}

	log.Debugf("new activity added: %d", addedActivity.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

// normalizeMetrics derives pace/speed, zone distribution and per-km
// splits from the raw telemetry when the client did not provide them.
func (handler *Handler) normalizeMetrics(a *activity.Activity) {
	switch a.Type {
	case activity.TypeRun:
		if a.PaceMinKm == nil {
			a.PaceMinKm = normalize.Pace(*a)
		}
	case activity.TypeCycle:
		if a.SpeedKmh == nil {
			a.SpeedKmh = normalize.Speed(*a)
		}
	}

	if a.Zones == nil && len(a.HRStream) > 0 {
		maxHR := handler.defaultMaxHeartRate
		if a.MaxHeartRate != nil && *a.MaxHeartRate > 0 {
			maxHR = *a.MaxHeartRate
		}
		a.Zones = normalize.Zones(a.HRStream, maxHR)
	}

	if len(a.Laps) == 0 && len(a.Track) > 0 {
		a.Laps = normalize.KmSplits(a.Track)
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.get")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, activity.ErrActivityNotFound) {
			http.Error(w, "activity not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get activity %d: %s", id, err)
		http.Error(w, "failed to get activity", http.StatusInternalServerError)
		return
	}

	activityJson, err := json.Marshal(a)
	if err != nil {
		log.Errorf("failed to marshal activity %d: %s", id, err)
		http.Error(w, "failed to get activity", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, activityJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var a activity.Activity
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		log.Tracef("update activity, unmarshal json params: %s", err)
		http.Error(w, "update activity failed", http.StatusBadRequest)
		return
	}
	if a.ID <= 0 {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	handler.normalizeMetrics(&a)

	if err := handler.repo.Update(ctx, &a); err != nil {
		if errors.Is(err, activity.ErrActivityNotFound) {
			http.Error(w, "activity not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update activity %d: %s", a.ID, err)
		http.Error(w, "failed to update activity", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, UpdateActivityResponse{UpdatedID: a.ID})
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.delete")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, activity.ErrActivityNotFound) {
			http.Error(w, "activity not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete activity %d: %s", id, err)
		http.Error(w, "failed to delete activity", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, DeleteActivityResponse{DeletedID: id})
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.list")
	defer span.End()

	vars := mux.Vars(r)

	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		http.Error(w, "error, page NaN", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		http.Error(w, "error, size NaN", http.StatusBadRequest)
		return
	}
	if page < 1 || size < 1 {
		http.Error(w, "error, page and size must be positive", http.StatusBadRequest)
		return
	}

	activities, total, err := handler.repo.List(ctx, activity.ListParams{
		ActivityParams: activity.ActivityParams{
			UserID: r.URL.Query().Get("user"),
			Type:   activity.Type(r.URL.Query().Get("type")),
		},
		Page: page,
		Size: size,
	})
	if err != nil {
		log.Errorf("failed to list activities: %s", err)
		http.Error(w, "failed to list activities", http.StatusInternalServerError)
		return
	}
	if activities == nil {
		activities = []activity.Activity{}
	}

	pkg.WriteJSONOK(w, ListResponse{
		Activities: activities,
		Total:      total,
	})
}

func (handler *Handler) HandleSetGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.setgoal")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var goal activity.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Tracef("set goal, unmarshal json params: %s", err)
		http.Error(w, "set goal failed", http.StatusBadRequest)
		return
	}

	if goal.DistanceKm <= 0 || goal.TargetTimeMin <= 0 {
		http.Error(w, "error, invalid goal distance or target time", http.StatusBadRequest)
		return
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}

	savedGoal, err := handler.repo.SetGoal(ctx, goal)
	if err != nil {
		log.Errorf("failed to set goal for [%s]: %s", goal.UserID, err)
		http.Error(w, "failed to set goal", http.StatusInternalServerError)
		return
	}

	goalJson, err := json.Marshal(savedGoal)
	if err != nil {
		log.Errorf("failed to marshal goal: %s", err)
		http.Error(w, "failed to set goal", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, goalJson, http.StatusCreated)
}

func (handler *Handler) HandleGetGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.getgoal")
	defer span.End()

	goal, err := handler.repo.GetGoal(ctx, r.URL.Query().Get("user"))
	if err != nil {
		if errors.Is(err, activity.ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get goal: %s", err)
		http.Error(w, "failed to get goal", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, goal)
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
