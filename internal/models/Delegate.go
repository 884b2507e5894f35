package models

// Delegate receives session events. Every field is optional.
type Delegate struct {
	OnUserRated           func()
	OnUserDeclined        func()
	OnUserRemindLater     func()
	OnReachabilityChanged func(state string)
}

func (d *Delegate) NotifyRated() {
	if d != nil && d.OnUserRated != nil {
		d.OnUserRated()
	}
}

func (d *Delegate) NotifyDeclined() {
	if d != nil && d.OnUserDeclined != nil {
		d.OnUserDeclined()
	}
}

func (d *Delegate) NotifyRemindLater() {
	if d != nil && d.OnUserRemindLater != nil {
		d.OnUserRemindLater()
	}
}

func (d *Delegate) NotifyReachabilityChanged(state NetworkState) {
	if d != nil && d.OnReachabilityChanged != nil {
		d.OnReachabilityChanged(state.String())
	}
}
