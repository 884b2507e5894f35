package services

import (
	"fmt"
	"reviewreminder/internal/models"
	"reviewreminder/internal/providers"
	"reviewreminder/internal/services/interfaces"
	"reviewreminder/internal/structures"
	"sync"

	"go.uber.org/atomic"
)

const (
	ActionIDRate        = "rate"
	ActionIDRemindLater = "remind_later"
	ActionIDDecline     = "decline"
)

type PromptControllerInterface interface {
	StartSession(appID string, conf *structures.ReminderConfig, alertStrings *structures.AlertStrings) error
	NotifyAppLaunched()
	NotifyAppEnteredForeground()
	NotifyAppWillResignActive()
	AddAction(action models.Action, index int) error
	Respond(actionID string) error
	Actions() []models.Action
	NetworkState() models.NetworkState
	State() models.UsageSnapshot
	Started() bool
	Close()
}

// PromptController is the session: it feeds lifecycle triggers into the
// tracker and evaluator and presents the prompt through the host.
type PromptController struct {
	tracker   UsageTrackerInterface
	evaluator EligibilityEvaluatorInterface
	monitor   *ReachabilityMonitor
	presenter interfaces.PresentationHost
	opener    interfaces.StoreLinkOpener
	metadata  interfaces.AppMetadataProvider
	executors *Executors
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface

	// opsMu serializes record, evaluate, present reservation and responses.
	opsMu   sync.Mutex
	started atomic.Bool
	appID   string
	config  structures.ReminderConfig
	strings structures.AlertStrings
	actions []models.Action
	custom  int

	// presenting is set when a prompt is reserved and cleared when it is answered or dismissed.
	presenting atomic.Bool
}

func NewPromptController(
	tracker UsageTrackerInterface,
	evaluator EligibilityEvaluatorInterface,
	monitor *ReachabilityMonitor,
	presenter interfaces.PresentationHost,
	opener interfaces.StoreLinkOpener,
	metadata interfaces.AppMetadataProvider,
	executors *Executors,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) PromptControllerInterface {
	return &PromptController{
		tracker:   tracker,
		evaluator: evaluator,
		monitor:   monitor,
		presenter: presenter,
		opener:    opener,
		metadata:  metadata,
		executors: executors,
		logger:    logger,
		metrics:   metrics,
	}
}

// StartSession configures the session and starts monitoring reachability.
// Only the first successful call takes effect.
func (c *PromptController) StartSession(appID string, conf *structures.ReminderConfig, alertStrings *structures.AlertStrings) error {
	if appID == "" {
		return ErrMissingAppID
	}

	cfg := structures.DefaultReminderConfig()
	if conf != nil {
		cfg = *conf
	}
	if cfg.AppVersionType == "" {
		cfg.AppVersionType = structures.VersionTypeBundle
	}
	if err := providers.ValidateReminder(&cfg); err != nil {
		return err
	}

	c.opsMu.Lock()
	if c.started.Load() {
		c.opsMu.Unlock()
		c.logger.Infof(providers.TypeSession, "Session already started for %s, ignoring", c.appID)
		return nil
	}
	c.appID = appID
	c.config = cfg
	c.strings = c.resolveStrings(alertStrings)
	c.actions = []models.Action{
		{ID: ActionIDRate, Title: c.strings.RateTitle, Kind: models.ActionRate},
		{ID: ActionIDRemindLater, Title: c.strings.RateLaterTitle, Kind: models.ActionRemindLater},
		{ID: ActionIDDecline, Title: c.strings.DeclineTitle, Kind: models.ActionDecline},
	}
	c.started.Store(true)
	c.opsMu.Unlock()

	c.logger.Infof(providers.TypeSession, "Session started for app %s (uses %d, days %d, remind after %d days, debug %t)",
		appID, cfg.UsesUntilPrompt, cfg.DaysUntilPrompt, cfg.TimeBeforeReminding, cfg.Debug)

	c.monitor.Start(c.onNetworkKnown, c.onNetworkChanged)
	return nil
}

func (c *PromptController) resolveStrings(overrides *structures.AlertStrings) structures.AlertStrings {
	appName := c.metadata.CurrentAppName()
	mainBundle := c.config.UseMainBundle
	if appName == "" {
		c.logger.Warnf(providers.TypeSession, "App name is not available, prompt strings will be generic")
	}

	resolved := structures.AlertStrings{
		Title:          c.metadata.LocalizedString(providers.StringRateTitle, appName, mainBundle),
		Message:        c.metadata.LocalizedString(providers.StringMessage, appName, mainBundle),
		DeclineTitle:   c.metadata.LocalizedString(providers.StringDecline, appName, mainBundle),
		RateTitle:      c.metadata.LocalizedString(providers.StringRateTitle, appName, mainBundle),
		RateLaterTitle: c.metadata.LocalizedString(providers.StringRemindLater, appName, mainBundle),
	}
	if overrides == nil {
		return resolved
	}
	if overrides.Title != "" {
		resolved.Title = overrides.Title
	}
	if overrides.Message != "" {
		resolved.Message = overrides.Message
	}
	if overrides.DeclineTitle != "" {
		resolved.DeclineTitle = overrides.DeclineTitle
	}
	if overrides.RateTitle != "" {
		resolved.RateTitle = overrides.RateTitle
	}
	if overrides.RateLaterTitle != "" {
		resolved.RateLaterTitle = overrides.RateLaterTitle
	}
	return resolved
}

func (c *PromptController) NotifyAppLaunched() {
	c.trigger("launch")
}

func (c *PromptController) NotifyAppEnteredForeground() {
	c.trigger("foreground")
}

// NotifyAppWillResignActive dismisses a visible prompt without recording a choice.
func (c *PromptController) NotifyAppWillResignActive() {
	if !c.started.Load() {
		c.logger.Debugf(providers.TypeSession, "Resign ignored: session not started")
		return
	}
	c.executors.UI.Dispatch(func() {
		c.presenter.Dismiss()
		c.presenting.Store(false)
	})
}

func (c *PromptController) trigger(source string) {
	if !c.started.Load() {
		c.logger.Debugf(providers.TypeSession, "%s ignored: session not started", source)
		return
	}
	c.executors.Eval.Dispatch(func() {
		c.recordAndEvaluate(source)
	})
}

func (c *PromptController) recordAndEvaluate(source string) {
	c.opsMu.Lock()
	defer c.opsMu.Unlock()

	version := c.metadata.CurrentVersion(c.config.AppVersionType)
	snapshot, err := c.tracker.RecordUse(version)
	if err != nil {
		c.logger.Warnf(providers.TypeSession, "Use on %s not recorded: %s", source, err)
		return
	}

	network := c.monitor.State()
	if !network.Known() {
		c.logger.Debugf(providers.TypeSession, "Network status unknown on %s, evaluation deferred", source)
		return
	}
	c.evaluateLocked(snapshot, network)
}

// onNetworkKnown re-evaluates the stored counters once connectivity is first
// known. It never counts a use.
func (c *PromptController) onNetworkKnown() {
	c.executors.Eval.Dispatch(func() {
		c.opsMu.Lock()
		defer c.opsMu.Unlock()

		snapshot := c.tracker.Snapshot()
		version := c.metadata.CurrentVersion(c.config.AppVersionType)
		if version == "" || snapshot.Version != version {
			c.logger.Debugf(providers.TypeSession, "No counters for version %q yet, nothing to evaluate", version)
			return
		}

		network := c.monitor.State()
		if !network.Known() {
			return
		}
		c.evaluateLocked(snapshot, network)
	})
}

func (c *PromptController) onNetworkChanged(state models.NetworkState) {
	c.config.Delegate.NotifyReachabilityChanged(state)
}

func (c *PromptController) evaluateLocked(snapshot models.UsageSnapshot, network models.NetworkState) {
	visible := c.presenting.Load() || c.presenter.IsVisible()
	eligible := c.evaluator.Evaluate(snapshot, &c.config, network, visible)
	c.metrics.IncEvaluations(eligible)

	c.logger.Debugf(providers.TypeSession, "Evaluated version %s: uses %d, network %s, visible %t, eligible %t",
		snapshot.Version, snapshot.UseCount, network, visible, eligible)

	if !eligible {
		return
	}

	c.presenting.Store(true)
	c.metrics.IncPromptsPresented()

	title, message, actions := c.strings.Title, c.strings.Message, c.copyActions()
	c.executors.UI.Dispatch(func() {
		c.presenter.Present(title, message, actions)
	})
}

// AddAction inserts a host action. Negative indexes insert first, indexes past
// the last slot insert before the last action.
func (c *PromptController) AddAction(action models.Action, index int) error {
	if !c.started.Load() {
		return ErrSessionNotStarted
	}

	c.opsMu.Lock()
	defer c.opsMu.Unlock()

	action.Kind = models.ActionCustom
	if action.ID == "" {
		c.custom++
		action.ID = fmt.Sprintf("custom-%d", c.custom)
	}
	for _, a := range c.actions {
		if a.ID == action.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateAction, action.ID)
		}
	}

	if index < 0 {
		index = 0
	}
	if index > len(c.actions)-1 {
		index = len(c.actions) - 1
	}

	c.actions = append(c.actions, models.Action{})
	copy(c.actions[index+1:], c.actions[index:])
	c.actions[index] = action

	c.logger.Debugf(providers.TypeSession, "Added action %s at %d", action.ID, index)
	return nil
}

// Respond applies the user's choice for actionID, closes the prompt and
// releases the prompt slot. Without a reserved or visible prompt nothing is
// recorded and ErrNoPrompt is returned.
func (c *PromptController) Respond(actionID string) error {
	if !c.started.Load() {
		return ErrSessionNotStarted
	}

	c.opsMu.Lock()
	action, ok := c.findAction(actionID)
	if !ok {
		c.opsMu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownAction, actionID)
	}
	if !c.presenting.Load() && !c.presenter.IsVisible() {
		c.opsMu.Unlock()
		return ErrNoPrompt
	}

	delegate := c.config.Delegate
	var notify func()
	openStore := false

	switch action.Kind {
	case models.ActionRate:
		c.tracker.MarkRated()
		openStore = true
		notify = delegate.NotifyRated
	case models.ActionRemindLater:
		c.tracker.MarkRemindLater()
		notify = delegate.NotifyRemindLater
	case models.ActionDecline:
		c.tracker.MarkDeclined()
		notify = delegate.NotifyDeclined
	default:
		notify = action.Handler
	}

	c.executors.UI.Dispatch(c.presenter.Dismiss)
	c.presenting.Store(false)
	c.metrics.IncResponses(action.Kind)
	appID := c.appID
	c.opsMu.Unlock()

	c.logger.Infof(providers.TypeSession, "User chose %s", action.ID)

	if openStore {
		if err := c.opener.OpenReviewPage(appID); err != nil {
			c.logger.Errorf(providers.TypeSession, "Could not open review page: %s", err)
		}
	}
	if notify != nil {
		notify()
	}
	return nil
}

func (c *PromptController) findAction(id string) (models.Action, bool) {
	for _, a := range c.actions {
		if a.ID == id {
			return a, true
		}
	}
	return models.Action{}, false
}

func (c *PromptController) copyActions() []models.Action {
	out := make([]models.Action, len(c.actions))
	copy(out, c.actions)
	return out
}

func (c *PromptController) Actions() []models.Action {
	c.opsMu.Lock()
	defer c.opsMu.Unlock()
	return c.copyActions()
}

func (c *PromptController) NetworkState() models.NetworkState {
	return c.monitor.State()
}

func (c *PromptController) State() models.UsageSnapshot {
	return c.tracker.Snapshot()
}

func (c *PromptController) Started() bool {
	return c.started.Load()
}

func (c *PromptController) Close() {
	c.monitor.Stop()
}
