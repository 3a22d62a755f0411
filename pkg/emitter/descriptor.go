package emitter

import (
	"fmt"
)

// Descriptor declares a channel.
type Descriptor struct {
	// Name must be unique within an Emitter and not a reserved identifier.
	Name string `yaml:"name" json:"name"`
	// Role drives default wiring. Required.
	Role Role `yaml:"role" json:"role"`
	// Sticky keeps every resolution and replays it to later callbacks.
	Sticky bool `yaml:"sticky" json:"sticky"`
	// StickyLast keeps only the most recent resolution. Implies Sticky.
	StickyLast bool `yaml:"sticky_last" json:"sticky_last"`
	// Description is free text used for introspection.
	Description string `yaml:"description" json:"description"`
}

var reservedNames = map[string]struct{}{
	"pipe":               {},
	"extend":             {},
	"getRolesHandlers":   {},
	"getHandlersForName": {},
	"promise":            {},
	"on":                 {},
	"off":                {},
	"middleware":         {},
	"call":               {},
	"then":               {},
}

// IsReservedName reports whether name cannot be used for a channel.
func IsReservedName(name string) bool {
	_, ok := reservedNames[name]
	return ok
}

// Validate checks the role and name of d.
func (d Descriptor) Validate() error {
	if !d.Role.Valid() {
		return fmt.Errorf("channel %q: %w: %q", d.Name, ErrInvalidRole, d.Role)
	}
	if IsReservedName(d.Name) {
		return fmt.Errorf("channel %q: %w", d.Name, ErrReservedName)
	}
	return nil
}

func (d Descriptor) normalize() Descriptor {
	if d.StickyLast {
		d.Sticky = true
	}
	return d
}

// BuiltinDescriptors returns the channels every Emitter is created with.
func BuiltinDescriptors() []Descriptor {
	return []Descriptor{
		Property().Name(ChannelDone).Role(RoleResolution).Sticky(true).
			Description("resolved on success").Build(),
		Property().Name(ChannelError).Role(RoleResolution).Sticky(true).
			Description("resolved on failure").Build(),
		Property().Name(ChannelAlways).Role(RoleResolution).Sticky(true).
			Description("resolved after any other resolution channel").Build(),
		Property().Name(ChannelCatch).Role(RoleException).Sticky(true).
			Description("receives callback and middleware failures").Build(),
		Property().Name(ChannelEvent).Role(RoleNotify).
			Description("generic event").Build(),
		Property().Name(ChannelNotify).Role(RoleNotify).
			Description("progress notifications").Build(),
		Property().Name(ChannelTap).Role(RoleObserve).
			Description("observes every other resolution").Build(),
	}
}

// PropertyBuilder builds a Descriptor fluently.
type PropertyBuilder struct {
	d Descriptor
}

// Property starts a Descriptor builder.
//
//	d := emitter.Property().
//	    Name("progress").
//	    Role(emitter.RoleNotify).
//	    StickyLast(true).
//	    Build()
func Property() *PropertyBuilder {
	return &PropertyBuilder{}
}

// Name sets the channel name.
func (b *PropertyBuilder) Name(name string) *PropertyBuilder {
	b.d.Name = name
	return b
}

// Role sets the channel role.
func (b *PropertyBuilder) Role(role Role) *PropertyBuilder {
	b.d.Role = role
	return b
}

// Sticky keeps every resolution for replay to later callbacks.
func (b *PropertyBuilder) Sticky(sticky bool) *PropertyBuilder {
	b.d.Sticky = sticky
	return b
}

// StickyLast keeps only the latest resolution for replay.
func (b *PropertyBuilder) StickyLast(stickyLast bool) *PropertyBuilder {
	b.d.StickyLast = stickyLast
	return b
}

// Description sets a free-form description.
func (b *PropertyBuilder) Description(description string) *PropertyBuilder {
	b.d.Description = description
	return b
}

// Build returns the Descriptor. StickyLast is normalized to imply Sticky.
func (b *PropertyBuilder) Build() Descriptor {
	return b.d.normalize()
}
