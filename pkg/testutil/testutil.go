// Package testutil provides testing doubles for the alias and breach
// ports used by the scan engine.
package testutil

import (
	"context"
	"sync"

	"aliasguard/pkg/alias"
	"aliasguard/pkg/breach"
)

// StubAlias is a fixed alias record implementing alias.Alias.
type StubAlias struct {
	AliasID string
	Address string
	Note    string
	Active  bool
}

func (a StubAlias) ID() string          { return a.AliasID }
func (a StubAlias) Email() string       { return a.Address }
func (a StubAlias) Description() string { return a.Note }
func (a StubAlias) IsActive() bool      { return a.Active }

// MockAliasService implements alias.Service and records every
// deactivation request.
type MockAliasService struct {
	mu sync.Mutex

	Aliases []alias.Alias
	ListErr error

	// DeactivateErrs maps alias id to the error Deactivate returns
	// for it; ids not present succeed.
	DeactivateErrs map[string]error

	listCalls   int
	deactivated []string
}

func (m *MockAliasService) ListAliases(ctx context.Context) ([]alias.Alias, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Aliases, nil
}

func (m *MockAliasService) Deactivate(ctx context.Context, id string) error {
	m.mu.Lock()
	m.deactivated = append(m.deactivated, id)
	m.mu.Unlock()

	if err, ok := m.DeactivateErrs[id]; ok {
		return err
	}
	return nil
}

// Deactivated returns the alias ids passed to Deactivate, in order.
func (m *MockAliasService) Deactivated() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.deactivated))
	copy(out, m.deactivated)
	return out
}

// ListCalls returns how many times ListAliases ran.
func (m *MockAliasService) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// MockBreachLookup implements breach.Lookup from canned per-address
// responses and records every checked address.
type MockBreachLookup struct {
	mu sync.Mutex

	// Breaches maps email to the breach set Check returns for it;
	// addresses not present are clean.
	Breaches map[string][]breach.Breach

	// Errs maps email to the error Check returns for it.
	Errs map[string]error

	checked []string
}

func (m *MockBreachLookup) Check(ctx context.Context, email string) ([]breach.Breach, error) {
	m.mu.Lock()
	m.checked = append(m.checked, email)
	m.mu.Unlock()

	if err, ok := m.Errs[email]; ok {
		return nil, err
	}
	return m.Breaches[email], nil
}

// Checked returns the addresses passed to Check, in order.
func (m *MockBreachLookup) Checked() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.checked))
	copy(out, m.checked)
	return out
}
