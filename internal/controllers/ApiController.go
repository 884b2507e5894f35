package controllers

import (
	"errors"
	"net/http"
	"reviewreminder/internal/models"
	"reviewreminder/internal/providers"
	"reviewreminder/internal/services"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 16 // 64 KB

// PromptSource exposes the prompt the headless host is currently showing.
type PromptSource interface {
	Current() (models.Prompt, bool)
}

// LinkSource exposes the last review link the session opened.
type LinkSource interface {
	LastURL() string
}

// NetworkFeed accepts connectivity reports from the host.
type NetworkFeed interface {
	Push(state models.NetworkState)
}

type ApiController struct {
	logger  providers.Logger
	session services.PromptControllerInterface
	prompts PromptSource
	links   LinkSource
	network NetworkFeed
}

type respondRequest struct {
	Action string `json:"action"`
}

type respondResponse struct {
	Action    string `json:"action"`
	ReviewURL string `json:"review_url,omitempty"`
}

type reachabilityRequest struct {
	State string `json:"state"`
}

type stateResponse struct {
	Started bool                 `json:"started"`
	Network string               `json:"network"`
	Usage   models.UsageSnapshot `json:"usage"`
	Actions []models.Action      `json:"actions"`
	Visible bool                 `json:"prompt_visible"`
}

func NewApiController(logger providers.Logger, session services.PromptControllerInterface, prompts PromptSource, links LinkSource, network NetworkFeed) *ApiController {
	return &ApiController{
		logger:  logger,
		session: session,
		prompts: prompts,
		links:   links,
		network: network,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) lifecycle(w http.ResponseWriter, notify func()) {
	if !ac.session.Started() {
		http.Error(w, "Session Not Started", http.StatusConflict)
		return
	}
	notify()
	w.WriteHeader(http.StatusAccepted)
}

func (ac *ApiController) Launch(w http.ResponseWriter, r *http.Request) {
	ac.lifecycle(w, ac.session.NotifyAppLaunched)
}

func (ac *ApiController) Foreground(w http.ResponseWriter, r *http.Request) {
	ac.lifecycle(w, ac.session.NotifyAppEnteredForeground)
}

func (ac *ApiController) Resign(w http.ResponseWriter, r *http.Request) {
	ac.lifecycle(w, ac.session.NotifyAppWillResignActive)
}

// Prompt returns the visible prompt, or 204 when nothing is shown.
func (ac *ApiController) Prompt(w http.ResponseWriter, r *http.Request) {
	prompt, ok := ac.prompts.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, prompt)
}

func (ac *ApiController) Respond(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload respondRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Action == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	err := ac.session.Respond(payload.Action)
	switch {
	case errors.Is(err, services.ErrSessionNotStarted):
		http.Error(w, "Session Not Started", http.StatusConflict)
		return
	case errors.Is(err, services.ErrUnknownAction):
		http.Error(w, "Unknown Action", http.StatusNotFound)
		return
	case errors.Is(err, services.ErrNoPrompt):
		http.Error(w, "No Prompt", http.StatusConflict)
		return
	case err != nil:
		ac.logger.Errorf(providers.TypePost, "Respond %s failed: %s", payload.Action, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	resp := respondResponse{Action: payload.Action}
	if payload.Action == services.ActionIDRate {
		resp.ReviewURL = ac.links.LastURL()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (ac *ApiController) Reachability(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload reachabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	state, ok := models.ParseNetworkState(payload.State)
	if !ok || !state.Known() {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ac.network.Push(state)
	w.WriteHeader(http.StatusAccepted)
}

func (ac *ApiController) State(w http.ResponseWriter, r *http.Request) {
	_, visible := ac.prompts.Current()
	resp := stateResponse{
		Started: ac.session.Started(),
		Network: ac.session.NetworkState().String(),
		Usage:   ac.session.State(),
		Actions: ac.session.Actions(),
		Visible: visible,
	}
	writeJSON(w, http.StatusOK, resp)
}
