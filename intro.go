package dappkitty

import "fmt"

// IntroClass marks the banner block appended when a session starts.
const IntroClass = "dappkitty-cat"

const introBanner = `Log Kitty Started!

Environment: %s
Log Level: %s
Theme: %s
Session: %s

      /\_/\
     ( o.o )
      > ^ <
This cat's got your back.`

// intro bypasses the level filter; the banner is shown once per session.
func (s *Session) intro() {
	defer func() {
		if r := recover(); r != nil {
			s.fail(fmt.Errorf("intro: %v", r), nil)
		}
	}()
	text := fmt.Sprintf(introBanner, s.cfg.Env, s.cfg.LogLevel, s.cfg.Theme(), s.id)
	if err := s.appendDirect(text, IntroClass); err != nil {
		s.fail(fmt.Errorf("intro: %w", err), nil)
	}
}
