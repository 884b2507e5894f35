package models

// NetworkState is the connectivity as last reported by the reachability feed.
type NetworkState int32

const (
	NetworkUnknown NetworkState = iota
	NetworkOnline
	NetworkOffline
)

func (n NetworkState) String() string {
	switch n {
	case NetworkOnline:
		return "Online"
	case NetworkOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

func (n NetworkState) Known() bool {
	return n == NetworkOnline || n == NetworkOffline
}

// ParseNetworkState maps a label back to a state. Unrecognised labels are Unknown.
func ParseNetworkState(label string) (NetworkState, bool) {
	switch label {
	case "Online", "online":
		return NetworkOnline, true
	case "Offline", "offline":
		return NetworkOffline, true
	case "Unknown", "unknown":
		return NetworkUnknown, true
	}
	return NetworkUnknown, false
}
