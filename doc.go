// Package dappkitty is a development overlay for dapps. Once activated on a
// Host it mirrors console output, network round trips and uncaught errors
// into a render panel, filtered by a resolved log level.
//
// Activation sequence:
//
//	host := dappkitty.NewHost("http://localhost:3000/?envkitty=dev",
//		dappkitty.WithSink(panel.New(panel.Options{})))
//	s, err := dappkitty.Init(host, "debug", nil)
//	if err != nil {
//		// ErrInactive outside dev and local
//	}
//	defer s.Close()
//	host.Console().Warn("low balance") // rendered as [WARN] low balance
//
// The environment comes only from the envkitty query parameter. The
// "kitty" level shows direct calls made through the Session or the
// package-level helpers and hides everything intercepted.
package dappkitty

// Version of the module.
const Version = "0.3.0"
