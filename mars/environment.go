package mars

import (
	"os"
	"os/user"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Environment captures the process-wide context a Request is expanded
// under: the host, user, and process that issued it, plus a random client
// tag used to correlate related requests in logs. Grounded on
// RequestEnvironment from the metkit mars language.
type Environment struct {
	Host      string
	User      string
	PID       int
	ClientTag string
}

var (
	envOnce  sync.Once
	envValue Environment
)

// CurrentEnvironment returns the process-wide Environment, computing it
// once on first use.
func CurrentEnvironment() Environment {
	envOnce.Do(func() {
		host, _ := os.Hostname()
		username := strconv.Itoa(os.Getuid())
		if u, err := user.Current(); err == nil {
			username = u.Username
		}
		envValue = Environment{
			Host:      host,
			User:      username,
			PID:       os.Getpid(),
			ClientTag: uuid.NewString(),
		}
	})
	return envValue
}
