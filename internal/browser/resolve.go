package browser

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/phuslu/log"
)

// ErrNoExecutable is returned when no candidate browser is installed.
var ErrNoExecutable = errors.New("no browser executable found")

// Resolver finds the browser binary: an explicit path wins, otherwise the
// first candidate found on PATH.
type Resolver struct {
	Explicit   string
	Candidates []string

	lookPath func(string) (string, error)
	stat     func(string) (os.FileInfo, error)
}

func NewResolver(explicit string, candidates []string) *Resolver {
	return &Resolver{
		Explicit:   explicit,
		Candidates: candidates,
		lookPath:   exec.LookPath,
		stat:       os.Stat,
	}
}

func (r *Resolver) Resolve() (string, error) {
	if p := strings.TrimSpace(r.Explicit); p != "" {
		info, err := r.stat(p)
		if err != nil {
			return "", fmt.Errorf("browser executable %s: %w", p, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("browser executable %s is a directory", p)
		}
		return p, nil
	}

	for _, name := range r.Candidates {
		path, err := r.lookPath(name)
		if err != nil {
			log.Debug().Str("candidate", name).Err(err).Msg("browser candidate not found")
			continue
		}
		log.Info().Str("path", path).Msg("🔎 Browser resolved")
		return path, nil
	}
	return "", fmt.Errorf("%w (tried %s)", ErrNoExecutable, strings.Join(r.Candidates, ", "))
}
