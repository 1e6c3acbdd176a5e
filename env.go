package dappkitty

import "net/url"

// Env is the execution context tag derived from the page URL.
type Env string

const (
	EnvDev   Env = "dev"
	EnvLocal Env = "local"
	EnvProd  Env = "prod"
)

// QueryParam names the query parameter that selects the environment.
const QueryParam = "envkitty"

// EnvFromURL is the single source of truth for environment detection.
// Only the query parameter is consulted; hostnames are never sniffed.
func EnvFromURL(u *url.URL) Env {
	if u == nil {
		return EnvProd
	}
	// ParseQuery keeps the pairs it managed to decode on error.
	q, _ := url.ParseQuery(u.RawQuery)
	switch q.Get(QueryParam) {
	case string(EnvLocal):
		return EnvLocal
	case string(EnvDev):
		return EnvDev
	default:
		return EnvProd
	}
}

// ParseEnv resolves the environment of a raw URL. Unparseable input is prod.
func ParseEnv(rawURL string) Env {
	u, err := url.Parse(rawURL)
	if err != nil {
		return EnvProd
	}
	return EnvFromURL(u)
}

func (e Env) valid() bool {
	return e == EnvDev || e == EnvLocal || e == EnvProd
}
