// pkg/engine/engine.go
package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"aliasguard/internal/notification"
	"aliasguard/pkg/alias"
	"aliasguard/pkg/breach"
	apperrors "aliasguard/pkg/errors"
	"aliasguard/pkg/logger"
)

// ScanEngineOpts carries the collaborators one scan pass needs.
type ScanEngineOpts struct {
	aliases  alias.Service
	breaches breach.Lookup
	notifier *notification.NotificationClient
	log      *logger.Logger
}

type OptFunc func(*ScanEngineOpts)

// ScanEngine drives one full pass: list aliases, check every active
// one against the breach database, deactivate the compromised ones.
type ScanEngine struct {
	ScanEngineOpts
	scanID string
}

// NewScanEngine creates an engine from its collaborators. The alias
// service and breach lookup are required; notifier and logger are
// optional.
func NewScanEngine(opts ...OptFunc) (*ScanEngine, error) {
	o := ScanEngineOpts{
		log: logger.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.aliases == nil {
		return nil, fmt.Errorf("alias service is required")
	}
	if o.breaches == nil {
		return nil, fmt.Errorf("breach lookup is required")
	}

	return &ScanEngine{
		ScanEngineOpts: o,
		scanID:         uuid.NewString(),
	}, nil
}

func WithAliasService(svc alias.Service) OptFunc {
	return func(opts *ScanEngineOpts) {
		opts.aliases = svc
	}
}

func WithBreachLookup(lookup breach.Lookup) OptFunc {
	return func(opts *ScanEngineOpts) {
		opts.breaches = lookup
	}
}

func WithNotificationClient(client *notification.NotificationClient) OptFunc {
	return func(opts *ScanEngineOpts) {
		opts.notifier = client
	}
}

func WithLogger(log *logger.Logger) OptFunc {
	return func(opts *ScanEngineOpts) {
		opts.log = log
	}
}

// ScanID identifies this run in logs and reports.
func (e *ScanEngine) ScanID() string {
	return e.scanID
}

// Run fetches the alias listing once and scans every active alias in
// listing order. A listing failure aborts the whole run; per-alias
// lookup or deactivation failures are recorded on that alias's result
// and the pass continues. Inactive aliases are skipped, not reported.
func (e *ScanEngine) Run(ctx context.Context) ([]ScanResult, error) {
	log := e.log.WithScan(e.scanID)
	log.Info("Starting breach scan")

	aliases, err := e.aliases.ListAliases(ctx)
	if err != nil {
		log.WithError(err).Error("Alias listing failed, aborting scan")
		return nil, &apperrors.OrchestratorError{Err: err}
	}

	results := make([]ScanResult, 0, len(aliases))
	for _, a := range aliases {
		if !a.IsActive() {
			continue
		}
		results = append(results, e.scanAlias(ctx, a))
	}

	summary := Summarize(results)
	e.log.WithFields(logger.Fields{
		"scan_id":     e.scanID,
		"scanned":     summary.Scanned,
		"compromised": summary.Compromised,
		"deactivated": summary.Deactivated,
		"failed":      summary.Failed,
	}).Info("Breach scan finished")
	return results, nil
}

func (e *ScanEngine) scanAlias(ctx context.Context, a alias.Alias) ScanResult {
	result := ScanResult{
		AliasID:     a.ID(),
		Email:       a.Email(),
		Description: a.Description(),
	}
	log := e.log.WithFields(logger.Fields{
		"scan_id":  e.scanID,
		"alias_id": result.AliasID,
		"email":    result.Email,
	})

	breaches, err := e.breaches.Check(ctx, a.Email())
	if err != nil {
		log.WithError(err).Error("Breach lookup failed, continuing with next alias")
		result.LookupErr = err
		return result
	}

	result.Breaches = breaches
	if len(breaches) == 0 {
		log.Debug("No breaches found")
		return result
	}

	log.WithField("breaches", len(breaches)).Warn("Alias found in breach data, deactivating")
	result.DeactivationAttempted = true
	if err := e.aliases.Deactivate(ctx, a.ID()); err != nil {
		log.WithError(err).Error("Failed to deactivate alias")
		result.DeactivateErr = err
	} else {
		log.Info("Alias deactivated")
	}

	e.notifyFinding(result)
	return result
}

// notifyFinding reports one compromised alias. Notification failures
// are logged and never affect the scan outcome.
func (e *ScanEngine) notifyFinding(result ScanResult) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Send(notification.BreachMessage(
		result.Email,
		result.Description,
		BreachNames(result.Breaches),
		result.DeactivateErr,
	)); err != nil {
		e.log.WithScan(e.scanID).WithError(err).Warn("Failed to send breach notification")
	}
}
