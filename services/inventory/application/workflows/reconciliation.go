// Package workflows runs inventory reconciliation as a Temporal cron workflow.
package workflows

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	appsvcs "github.com/ghuser/vetclinic/services/inventory/application/services"
)

const (
	// ReconciliationWorkflowName is the registered workflow type.
	ReconciliationWorkflowName = "inventory.reconciliation"
	// ReconcileActivityName is the registered activity type.
	ReconcileActivityName = "inventory.reconcile"
	// ReconciliationWorkflowID keeps a single cron execution per namespace.
	ReconciliationWorkflowID = "inventory-reconciliation"
)

// ReconcileResult is the serializable summary of one reconciliation pass.
type ReconcileResult struct {
	ItemsChecked   int      `json:"items_checked"`
	Mismatches     int      `json:"mismatches"`
	MismatchedSKUs []string `json:"mismatched_skus,omitempty"`
}

// Activities holds the reconciliation activity implementation.
type Activities struct {
	svc *appsvcs.ReconciliationService
}

// NewActivities returns Activities backed by svc.
func NewActivities(svc *appsvcs.ReconciliationService) *Activities {
	return &Activities{svc: svc}
}

// Reconcile runs one pass. Mismatches are a result, not an error.
func (a *Activities) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	report, err := a.svc.Run(ctx)
	if err != nil {
		return nil, err
	}
	res := &ReconcileResult{ItemsChecked: report.ItemsChecked, Mismatches: len(report.Mismatches)}
	for _, m := range report.Mismatches {
		res.MismatchedSKUs = append(res.MismatchedSKUs, m.SKU.String())
	}
	return res, nil
}

// ReconciliationWorkflow executes the reconcile activity with bounded retries.
func ReconciliationWorkflow(ctx workflow.Context) (*ReconcileResult, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 15 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    10 * time.Second,
			BackoffCoefficient: 2,
			MaximumAttempts:    3,
		},
	})

	var res ReconcileResult
	if err := workflow.ExecuteActivity(ctx, ReconcileActivityName).Get(ctx, &res); err != nil {
		return nil, err
	}
	workflow.GetLogger(ctx).Info("reconciliation completed",
		"items_checked", res.ItemsChecked, "mismatches", res.Mismatches)
	return &res, nil
}

// Registry is the part of a Temporal worker (or test environment) used by Register.
type Registry interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register adds the workflow and activity to a Temporal worker.
func Register(w Registry, acts *Activities) {
	w.RegisterWorkflowWithOptions(ReconciliationWorkflow, workflow.RegisterOptions{Name: ReconciliationWorkflowName})
	w.RegisterActivityWithOptions(acts.Reconcile, activity.RegisterOptions{Name: ReconcileActivityName})
}

// ScheduleCron starts the cron execution of the workflow on taskQueue. An
// already running execution is left in place.
func ScheduleCron(ctx context.Context, c client.Client, taskQueue, cronSchedule string) error {
	_, err := c.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:           ReconciliationWorkflowID,
		TaskQueue:    taskQueue,
		CronSchedule: cronSchedule,
	}, ReconciliationWorkflowName)
	if err != nil && !temporal.IsWorkflowExecutionAlreadyStartedError(err) {
		return fmt.Errorf("schedule reconciliation: %w", err)
	}
	return nil
}
