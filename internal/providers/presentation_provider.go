package providers

import (
	"reviewreminder/internal/models"
	"sync"
	"time"
)

// HeadlessPresenter keeps the visible prompt in memory so that an HTTP host
// can render it and answer on the user's behalf.
type HeadlessPresenter struct {
	mu      sync.RWMutex
	current *models.Prompt
	logger  Logger
}

func NewHeadlessPresenter(logger Logger) *HeadlessPresenter {
	return &HeadlessPresenter{logger: logger}
}

func (hp *HeadlessPresenter) Present(title, message string, actions []models.Action) {
	prompt := &models.Prompt{
		Title:       title,
		Message:     message,
		Actions:     append([]models.Action(nil), actions...),
		PresentedAt: time.Now(),
	}

	hp.mu.Lock()
	hp.current = prompt
	hp.mu.Unlock()

	hp.logger.Infof(TypeSession, "Prompt presented: %q with %d actions", title, len(actions))
}

func (hp *HeadlessPresenter) Dismiss() {
	hp.mu.Lock()
	visible := hp.current != nil
	hp.current = nil
	hp.mu.Unlock()

	if visible {
		hp.logger.Infof(TypeSession, "Prompt dismissed")
	}
}

func (hp *HeadlessPresenter) IsVisible() bool {
	hp.mu.RLock()
	defer hp.mu.RUnlock()
	return hp.current != nil
}

// Current returns a copy of the visible prompt.
func (hp *HeadlessPresenter) Current() (models.Prompt, bool) {
	hp.mu.RLock()
	defer hp.mu.RUnlock()
	if hp.current == nil {
		return models.Prompt{}, false
	}
	p := *hp.current
	p.Actions = append([]models.Action(nil), hp.current.Actions...)
	return p, true
}
