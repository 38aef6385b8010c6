package notify

import "context"

// Permission mirrors the three states of a native notification surface.
type Permission int

const (
	PermissionUndecided Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "undecided"
	}
}

// Alert is one native notification. Tag is stable per case so that repeat
// updates replace the previous alert instead of stacking; Sticky asks the
// surface to keep the alert visible until someone acts on it.
type Alert struct {
	Title  string
	Body   string
	Icon   string
	Tag    string
	Sticky bool
}

// Gateway is a native notification surface. Permission must reflect the
// current state on every call: the user can revoke access at any time, so
// callers never cache the result.
type Gateway interface {
	Permission() Permission
	Request(ctx context.Context) (Permission, error)
	Send(ctx context.Context, a Alert) error
}

// NoopGateway denies everything. Used where a service runs the in-app
// fan-out without any native surface attached.
type NoopGateway struct{}

func (NoopGateway) Permission() Permission { return PermissionDenied }

func (NoopGateway) Request(ctx context.Context) (Permission, error) {
	return PermissionDenied, nil
}

func (NoopGateway) Send(ctx context.Context, a Alert) error { return nil }
