package dappkitty

import "sync/atomic"

// Facade: global access (Singleton + Facade). Every helper is a no-op
// while no session is active, so calls can stay in production code.
var global atomic.Pointer[Session]

// SetGlobal sets the session behind the package-level helpers.
func SetGlobal(s *Session) { global.Store(s) }

// Default returns the global session, or nil.
func Default() *Session { return global.Load() }

// Usage: dappkitty.Info("wallet connected")

func Error(msg string)            { Default().Error(msg) }
func Warn(msg string)             { Default().Warn(msg) }
func Info(msg string)             { Default().Info(msg) }
func Debug(msg string)            { Default().Debug(msg) }
func Log(msg string, level Level) { Default().Log(msg, level) }
