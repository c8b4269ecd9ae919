package navigator

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

//go:embed openers.toml
var openersTOML []byte

// OpenerDefinition describes how an opener program is invoked
type OpenerDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	Args        []string `toml:"args"`
}

type platformDefaults struct {
	Default []string `toml:"default"`
}

// OpenersConfig holds all opener definitions
type OpenersConfig struct {
	Openers   map[string]OpenerDefinition `toml:"openers"`
	Platforms map[string]platformDefaults `toml:"platforms"`
}

// OpenerRegistry knows the available openers
type OpenerRegistry struct {
	config OpenersConfig
	goos   string
}

// NewOpenerRegistry loads the embedded definitions and merges the user's
// overrides from userFile when it exists.
func NewOpenerRegistry(userFile string) (*OpenerRegistry, error) {
	var cfg OpenersConfig
	if err := toml.Unmarshal(openersTOML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing openers.toml: %w", err)
	}
	r := &OpenerRegistry{config: cfg, goos: runtime.GOOS}
	if userFile != "" {
		r.loadUserConfig(userFile)
	}
	return r, nil
}

// DefaultUserFile is where user opener overrides live.
func DefaultUserFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spotlight", "openers.toml")
}

func (r *OpenerRegistry) loadUserConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var user OpenersConfig
	if err := toml.Unmarshal(data, &user); err != nil {
		return
	}
	for name, def := range user.Openers {
		r.config.Openers[name] = def
	}
	for goos, p := range user.Platforms {
		r.config.Platforms[goos] = p
	}
}

// Candidates lists opener names for the current platform in order of
// preference.
func (r *OpenerRegistry) Candidates() []string {
	if p, ok := r.config.Platforms[r.goos]; ok && len(p.Default) > 0 {
		return p.Default
	}
	return r.config.Platforms["fallback"].Default
}

// Command builds the command that opens target with the named opener.
func (r *OpenerRegistry) Command(name, target string) (*exec.Cmd, error) {
	def, ok := r.config.Openers[name]
	if !ok {
		return exec.Command(name, target), nil
	}
	supported := len(def.Platforms) == 0
	for _, p := range def.Platforms {
		if p == r.goos {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("%s not supported on %s", name, r.goos)
	}
	args := append(append([]string(nil), def.Args...), target)
	return exec.Command(name, args...), nil
}
