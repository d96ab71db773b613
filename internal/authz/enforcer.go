// Gamerec - Game Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamerec

package authz

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

// Actions.
const (
	ActionRead  = "read"
	ActionWrite = "write"
)

// rbacModel is a role-based model with path wildcards and an action
// wildcard in policies.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (p.act == "*" || r.act == p.act)
`

// DefaultPolicy is loaded when no policy file is configured.
const DefaultPolicy = `
p, operator, /api/v1/admin/catalog/reload, write
p, admin, /api/v1/admin/*, *
g, admin, operator
`

var (
	// ErrDenied is returned by Authorize when the policy does not allow
	// the request.
	ErrDenied = errors.New("insufficient permissions")

	// ErrNoPolicyFile is returned by ReloadPolicy for the built-in policy.
	ErrNoPolicyFile = errors.New("no policy file configured")
)

// EnforcerConfig configures NewEnforcer.
type EnforcerConfig struct {
	// PolicyPath is a Casbin CSV policy file. Empty uses DefaultPolicy.
	PolicyPath string
}

// Enforcer wraps a synced Casbin enforcer.
type Enforcer struct {
	enforcer   *casbin.SyncedEnforcer
	policyPath string
}

// NewEnforcer builds the enforcer. A configured PolicyPath must exist.
func NewEnforcer(cfg *EnforcerConfig) (*Enforcer, error) {
	if cfg == nil {
		cfg = &EnforcerConfig{}
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if cfg.PolicyPath != "" {
		if _, statErr := os.Stat(cfg.PolicyPath); statErr != nil {
			return nil, fmt.Errorf("authz policy file: %w", statErr)
		}
		enforcer, err = casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(cfg.PolicyPath))
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadPolicyText(enforcer, DefaultPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{enforcer: enforcer, policyPath: cfg.PolicyPath}, nil
}

// loadPolicyText adds "p" and "g" lines from CSV text. Blank lines and
// '#' comments are skipped.
func loadPolicyText(enforcer *casbin.SyncedEnforcer, text string) error {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		switch {
		case parts[0] == "p" && len(parts) == 4:
			if _, err := enforcer.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
				return fmt.Errorf("add policy %v: %w", parts[1:], err)
			}
		case parts[0] == "g" && len(parts) == 3:
			if _, err := enforcer.AddGroupingPolicy(parts[1], parts[2]); err != nil {
				return fmt.Errorf("add grouping policy %v: %w", parts[1:], err)
			}
		default:
			return fmt.Errorf("malformed policy line %q", line)
		}
	}
	return nil
}

// Enforce reports whether role may perform action on object.
func (e *Enforcer) Enforce(role, object, action string) (bool, error) {
	allowed, err := e.enforcer.Enforce(role, object, action)
	if err != nil {
		return false, fmt.Errorf("enforcement failed: %w", err)
	}
	return allowed, nil
}

// Authorize checks the request's path and method for role. It returns
// ErrDenied when the policy does not allow it.
func (e *Enforcer) Authorize(role string, r *http.Request) error {
	allowed, err := e.Enforce(role, r.URL.Path, ActionForMethod(r.Method))
	if err != nil {
		return err
	}
	if !allowed {
		return ErrDenied
	}
	return nil
}

// ReloadPolicy re-reads the policy file.
func (e *Enforcer) ReloadPolicy() error {
	if e.policyPath == "" {
		return ErrNoPolicyFile
	}
	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("reload policy: %w", err)
	}
	return nil
}

// Policies returns the current "p" rules.
func (e *Enforcer) Policies() [][]string {
	//nolint:errcheck // only fails on a nil model
	policies, _ := e.enforcer.GetPolicy()
	return policies
}

// ActionForMethod maps an HTTP method to a policy action.
func ActionForMethod(method string) string {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return ActionWrite
	default:
		return ActionRead
	}
}
