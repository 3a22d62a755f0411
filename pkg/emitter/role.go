package emitter

// Role classifies a channel and drives its default wiring.
type Role string

const (
	// RoleResolution marks one-shot success/failure channels. Resolving one,
	// other than "always", also resolves "always".
	RoleResolution Role = "resolution"
	// RoleNotify marks ongoing notification channels.
	RoleNotify Role = "notify"
	// RoleObserve marks passive observation channels.
	RoleObserve Role = "observe"
	// RoleException marks exception capture channels.
	RoleException Role = "exception"
)

// Roles returns every valid role.
func Roles() []Role {
	return []Role{RoleResolution, RoleNotify, RoleObserve, RoleException}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleResolution, RoleNotify, RoleObserve, RoleException:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Origin selects builtin channels, user channels or both.
type Origin int

const (
	// OriginAll selects builtin channels followed by user channels.
	OriginAll Origin = iota
	// OriginBuiltin selects only the channels every Emitter starts with.
	OriginBuiltin
	// OriginUser selects only channels added through Extend.
	OriginUser
)

// Builtin channel names.
const (
	ChannelDone   = "done"
	ChannelError  = "error"
	ChannelAlways = "always"
	ChannelCatch  = "catch"
	ChannelEvent  = "event"
	ChannelNotify = "notify"
	ChannelTap    = "tap"
)

// TapEvent is the argument "tap" receives for every other resolution.
type TapEvent struct {
	Name string
	Role Role
	Data []any
}
