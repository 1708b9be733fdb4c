package params

import (
	"fmt"
	"time"
)

const (
	ServerBodyLimit    = 1048576 // 1 MiB
	ServerIdleTimeout  = 30 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second

	SessionCookieName  = "sdsid"
	SessionTokenLength = 64 // 256-bit token, hex encoded

	SessionSweepInterval = 15 * time.Minute // how often expired sessions are purged
	ActivityRetention    = 90 * 24 * time.Hour

	PasswordResetExpiration = 1 * time.Hour

	LoginRateLimitMax    = 20              // requests per window per client on auth endpoints
	LoginRateLimitWindow = 1 * time.Minute

	HealthCheckServerAddr = ":3001"
)

const Version = "0.1.0"

func VersionWithCommit(gitCommit, gitDate string) string {
	version := Version
	if len(gitCommit) >= 8 {
		version += "-" + gitCommit[:8]
	}
	if gitDate != "" {
		version += fmt.Sprintf(" (%s)", gitDate)
	}
	return version
}
