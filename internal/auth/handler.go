package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/paceline/paceline/internal/middleware"
	"github.com/paceline/paceline/internal/telemetry/metrics"
	"github.com/paceline/paceline/internal/telemetry/tracing"
	"github.com/paceline/paceline/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	loginAllowedPerMin int,
) {
	loginRouter := router.Path("/a/login").Subrouter()
	loginRouter.Use(middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, metricsManager))
	loginRouter.Methods("POST", "OPTIONS").HandlerFunc(handler.HandleLogin).Name("login")

	router.HandleFunc("/a/logout", handler.HandleLogout).Methods("GET", "OPTIONS").Name("logout")
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		log.Errorf("login failed, parse form error: %s", err)
		http.Error(w, "parse form error", http.StatusInternalServerError)
		return
	}

	username := r.Form.Get("username")
	if username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	password := r.Form.Get("password")
	if password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	userIP, err := pkg.ReadUserIP(r)
	if err != nil {
		log.Tracef("login: read user ip: %s", err)
		userIP = "unknown"
	}

	token, err := handler.service.Login(ctx, username, password, time.Now())
	if err != nil && errors.Is(err, ErrWrongCredentials) {
		log.Tracef("failed login attempt for user [%s] from [%s]", username, userIP)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	} else if err != nil {
		log.Errorf("login failed for user %s: %s", username, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("user [%s] logged in from [%s]", username, userIP)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"token": "%s"}`, token))
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	authToken := r.Header.Get("X-PACELINE-TOKEN")
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.service.Logout(ctx, authToken)
	if err != nil || !loggedOut {
		log.Tracef("logout failed: %s", err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
