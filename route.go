package dappkitty

// Origin tells the router who produced a message.
type Origin uint8

const (
	// Intercepted events come from the console, fetch and error wrappers.
	Intercepted Origin = iota
	// Direct events come from explicit severity-named calls.
	Direct
)

func (o Origin) String() string {
	if o == Direct {
		return "direct"
	}
	return "intercepted"
}

// Line is a routed, rendered log line.
type Line struct {
	Level   Level
	Prefix  string
	Message string
	Text    string
	Class   string
}

// Route decides whether message should be emitted under cfg and renders
// it. It has no side effects.
func Route(message string, level Level, cfg *Config, origin Origin) (Line, bool) {
	if cfg == nil {
		return Line{}, false
	}
	return route(message, level, cfg.LogLevel, origin)
}

func route(message string, level Level, ceiling Level, origin Origin) (Line, bool) {
	if !allowed(level, ceiling, origin) {
		return Line{}, false
	}
	prefix := level.Prefix()
	return Line{
		Level:   level.bucket(),
		Prefix:  prefix,
		Message: message,
		Text:    prefix + " " + message,
		Class:   level.Class(),
	}, true
}

func allowed(level Level, ceiling Level, origin Origin) bool {
	switch ceiling {
	case LevelOff, LevelUnset:
		return false
	case LevelKitty:
		return origin == Direct
	default:
		return level.priority() <= ceiling.priority()
	}
}
