package navigator

import (
	"fmt"
	"os"
	"os/exec"
)

// EmbeddedEnv is set in the environment of every program we launch so a
// nested spotlight never opens its own overlay.
const EmbeddedEnv = "SPOTLIGHT_EMBEDDED"

// Launcher hands a validated target to the desktop.
type Launcher interface {
	Open(target string) error
}

// SystemLauncher starts the platform opener detached.
type SystemLauncher struct {
	opener   string
	registry *OpenerRegistry
}

// NewSystemLauncher uses opener when set and installed, otherwise the
// first installed platform default.
func NewSystemLauncher(opener string, registry *OpenerRegistry) *SystemLauncher {
	candidates := registry.Candidates()
	if opener != "" {
		candidates = append([]string{opener}, candidates...)
	}
	return &SystemLauncher{
		opener:   findCommand(candidates...),
		registry: registry,
	}
}

func (l *SystemLauncher) Opener() string { return l.opener }

func (l *SystemLauncher) Open(target string) error {
	if l.opener == "" {
		return fmt.Errorf("no application found to open URL")
	}

	cmd, err := l.registry.Command(l.opener, target)
	if err != nil {
		cmd = exec.Command(l.opener, target)
	}
	cmd.Env = append(os.Environ(), EmbeddedEnv+"=1")

	// Start GUI applications detached
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.opener, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}
