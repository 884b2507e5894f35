package models

type ActionKind string

const (
	ActionRate        ActionKind = "rate"
	ActionRemindLater ActionKind = "remind_later"
	ActionDecline     ActionKind = "decline"
	ActionCustom      ActionKind = "custom"
)

// Action is one button of the prompt. Handler only runs for custom actions.
type Action struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Kind    ActionKind `json:"kind"`
	Handler func()     `json:"-"`
}

// NewCustomAction builds a host action; the core never persists anything for it.
func NewCustomAction(id, title string, handler func()) Action {
	return Action{ID: id, Title: title, Kind: ActionCustom, Handler: handler}
}
