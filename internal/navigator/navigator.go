// Package navigator turns an invoked palette row into a navigation.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/spotlight/internal/debuglog"
	"github.com/pders01/spotlight/internal/index"
	"github.com/pders01/spotlight/internal/palette"
	"github.com/pders01/spotlight/internal/plugins"
	"github.com/pders01/spotlight/internal/validation"
)

// OutcomeKind says what an invocation did.
type OutcomeKind int

const (
	Opened OutcomeKind = iota
	InPageSearch
)

// Outcome describes a finished invocation. Event is set when a
// recoverable failure happened on the way.
type Outcome struct {
	Kind     OutcomeKind
	Keyword  string
	Target   string
	Resolver string
	Event    *palette.Event
}

// Options configures a Navigator.
type Options struct {
	BaseURL         string
	InternalPrefix  string
	ResolveEndpoint string
	AllowPrivate    bool
	Timeout         time.Duration
}

type Navigator struct {
	baseURL   *url.URL
	registry  *plugins.Registry
	validator *validation.TargetValidator
	launcher  Launcher
}

func New(opts Options, launcher Launcher) (*Navigator, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	registry := plugins.NewRegistry(timeout)
	registry.Register(plugins.NewSubstituteResolver())
	registry.Register(plugins.NewServerResolver(opts.ResolveEndpoint, opts.InternalPrefix))

	n := &Navigator{
		registry:  registry,
		validator: validation.NewTargetValidator(opts.AllowPrivate),
		launcher:  launcher,
	}
	if opts.BaseURL != "" {
		base, err := url.Parse(opts.BaseURL)
		if err != nil || base.Scheme == "" || base.Host == "" {
			return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
		}
		n.baseURL = base
	}
	return n, nil
}

// Invoke runs the row's action. Search-page rows only report the
// keyword; redirect rows are resolved, validated and opened.
func (n *Navigator) Invoke(ctx context.Context, r palette.Result, keywords string) (Outcome, error) {
	if r.Action == index.ActionSearchPage {
		return Outcome{Kind: InPageSearch, Keyword: keywords}, nil
	}
	if strings.TrimSpace(r.URL) == "" {
		return Outcome{}, errors.New("entry has no url")
	}

	out := Outcome{Kind: Opened}
	target := r.URL
	if strings.Contains(target, plugins.SearchValuePlaceholder) {
		kw := plugins.SanitizeKeywords(keywords)
		res, err := n.registry.Resolve(ctx, target, kw)
		if err != nil {
			ev := palette.NewURLResolutionFailure(target, err)
			debuglog.Warnf("navigator: %v", ev)
			out.Event = &ev
		} else {
			target = res.URL
			out.Resolver = res.Resolver
		}
	}

	target, kind, err := n.validator.Validate(target)
	if err != nil {
		return out, fmt.Errorf("invalid target: %w", err)
	}
	if kind == validation.TargetRelative {
		if n.baseURL == nil {
			return out, fmt.Errorf("relative target %q needs navigator.base_url", target)
		}
		target, err = n.join(target)
		if err != nil {
			return out, err
		}
	}
	out.Target = target

	debuglog.WithFields(map[string]interface{}{
		"target":   target,
		"resolver": out.Resolver,
	}).Infof("navigator: open %q", r.Title)

	if err := n.launcher.Open(target); err != nil {
		return out, fmt.Errorf("opening %s: %w", target, err)
	}
	return out, nil
}

// join resolves a relative target against the base URL and validates
// the result again.
func (n *Navigator) join(target string) (string, error) {
	ref, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid target: %w", err)
	}
	joined := n.baseURL.ResolveReference(ref).String()
	if _, _, err := n.validator.Validate(joined); err != nil {
		return "", fmt.Errorf("invalid target: %w", err)
	}
	return joined, nil
}

// NavigatedMsg reports the result of an invocation to the UI loop.
type NavigatedMsg struct {
	Outcome Outcome
	Err     error
}

// Command runs Invoke off the UI loop.
func (n *Navigator) Command(msg palette.InvokeMsg) tea.Cmd {
	return func() tea.Msg {
		out, err := n.Invoke(context.Background(), msg.Result, msg.Keywords)
		if err != nil {
			debuglog.Errorf("navigator: %v", err)
		}
		return NavigatedMsg{Outcome: out, Err: err}
	}
}
