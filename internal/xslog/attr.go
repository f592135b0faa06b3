package xslog

import (
	"log/slog"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/garrettladley/sugang/internal/version"
)

func Error(err error) slog.Attr {
	const errorKey = "error"
	if err == nil {
		return slog.String(errorKey, "<nil>")
	}
	return slog.String(errorKey, err.Error())
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func Target(t time.Time) slog.Attr {
	const targetKey = "target"
	return slog.Time(targetKey, t)
}

func ChainID(id string) slog.Attr {
	const chainIDKey = "chain_id"
	return slog.String(chainIDKey, id)
}

func Attempt(n, max int) slog.Attr {
	const attemptKey = "attempt"
	return slog.Group(attemptKey, slog.Int("n", n), slog.Int("max", max))
}

func Scope(name string) slog.Attr {
	const scopeKey = "scope"
	return slog.String(scopeKey, name)
}

func Source(name string) slog.Attr {
	const sourceKey = "source"
	return slog.String(sourceKey, name)
}

func URL(u string) slog.Attr {
	const urlKey = "url"
	return slog.String(urlKey, u)
}

func Store(kind string) slog.Attr {
	const storeKey = "store"
	return slog.String(storeKey, kind)
}

func Username(username string) slog.Attr {
	const usernameKey = "username"
	return slog.String(usernameKey, username)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func ClientVersion(v string) slog.Attr {
	const clientVersionKey = "client_version"
	return slog.String(clientVersionKey, v)
}

func LatestVersion(v string) slog.Attr {
	const latestVersionKey = "latest_version"
	return slog.String(latestVersionKey, v)
}

func HTTPStatus(code int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, code)
}

func AutoLogin(enabled bool) slog.Attr {
	const autoLoginKey = "auto_login"
	return slog.Bool(autoLoginKey, enabled)
}

func Offset(d time.Duration) slog.Attr {
	const offsetKey = "offset"
	return slog.Duration(offsetKey, d)
}

// Build identifies the binary that wrote a record.
func Build() slog.Attr {
	const buildKey = "build"
	return slog.Group(buildKey,
		slog.String("version", version.Get()),
		slog.String("platform", runtime.GOOS+"/"+runtime.GOARCH),
	)
}
