package service

import (
	"context"
	"fmt"

	"github.com/cloudjanitor/vpc-reaper/internal/core/domain"
	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
	apperrors "github.com/cloudjanitor/vpc-reaper/internal/errors"
)

// Sequencer tears down a network scope by walking a fixed dependency-ordered
// plan of phases. Phase failures are recorded and never abort the run; only
// an unresolvable scope or a failed credential preflight is fatal.
type Sequencer struct {
	scopeID string
	dryRun  bool

	net ports.NetworkInventory
	lbs ports.LoadBalancerInventory
	dbs ports.DatabaseInventory
	fns ports.FunctionInventory

	logger ports.Logger
	policy Policy
	sleep  SleepFunc

	report *domain.Report
}

type SequencerParams struct {
	ScopeID string
	DryRun  bool

	Network       ports.NetworkInventory
	LoadBalancers ports.LoadBalancerInventory
	Databases     ports.DatabaseInventory
	Functions     ports.FunctionInventory

	Logger ports.Logger
	Policy Policy
	Sleep  SleepFunc
}

func NewSequencer(p SequencerParams) *Sequencer {
	sleep := p.Sleep
	if sleep == nil {
		sleep = DefaultSleep
	}
	return &Sequencer{
		scopeID: p.ScopeID,
		dryRun:  p.DryRun,
		net:     p.Network,
		lbs:     p.LoadBalancers,
		dbs:     p.Databases,
		fns:     p.Functions,
		logger:  p.Logger,
		policy:  p.Policy,
		sleep:   sleep,
		report:  domain.NewReport(p.ScopeID, p.DryRun),
	}
}

type phase struct {
	name string
	run  func(ctx context.Context) error
}

// plan returns the phases in teardown order. The order is the dependency
// inverse of how the provider builds a scope: workloads first, then managed
// services, then the addressing and routing fabric, then the scope itself.
func (s *Sequencer) plan() []phase {
	return []phase{
		{name: "compute instances", run: s.instancesPhase},
		{name: "endpoints", run: s.endpointsPhase},
		{name: "endpoint services", run: s.endpointServicesPhase},
		{name: "load balancers", run: s.loadBalancersPhase},
		{name: "gateway interface drain", run: s.gatewayDrainPhase},
		{name: "functions", run: s.functionsPhase},
		{name: "database subnet groups", run: s.dbSubnetGroupsPhase},
		{name: "NAT gateways", run: s.natGatewaysPhase},
		{name: "peering connections", run: s.peeringPhase},
		{name: "VPN", run: s.vpnPhase},
		{name: "elastic IPs", run: s.addressesPhase},
		{name: "internet gateways", run: s.internetGatewaysPhase},
		{name: "network interfaces", run: s.interfacesPhase},
		{name: "subnets", run: s.subnetsPhase},
		{name: "route tables", run: s.routeTablesPhase},
		{name: "security groups", run: s.securityGroupsPhase},
		{name: "network ACLs", run: s.networkACLsPhase},
	}
}

// PlanNames returns the phase names in execution order.
func (s *Sequencer) PlanNames() []string {
	phases := s.plan()
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.name
	}
	return names
}

// Run executes the full teardown and returns the report. The returned error
// is non-nil only for fatal conditions; per-resource failures live in the
// report.
func (s *Sequencer) Run(ctx context.Context) (*domain.Report, error) {
	scope, err := s.net.DescribeScope(ctx, s.scopeID)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeResourceNotFound) {
			return s.report, apperrors.WrapUserFacing(err, apperrors.CodeScopeNotFound,
				fmt.Sprintf("VPC %s was not found in the configured region.", s.scopeID),
				"Verify the VPC ID and the configured region.")
		}
		return s.report, err
	}

	s.logger.Infof(ctx, "tearing down VPC %s (%s, state %s, dry-run=%t)",
		scope.ID, scope.CIDR, scope.State, s.dryRun)
	if scope.IsDefault {
		s.logger.Warnf(ctx, "%s is the region's default VPC", scope.ID)
	}

	for _, p := range s.plan() {
		if err := ctx.Err(); err != nil {
			return s.report, apperrors.Wrap(err, apperrors.CodeTimeout, "teardown interrupted")
		}
		s.logger.Infof(ctx, "phase: %s", p.name)
		if err := p.run(ctx); err != nil {
			if ctx.Err() != nil {
				return s.report, apperrors.Wrap(ctx.Err(), apperrors.CodeTimeout, "teardown interrupted")
			}
			// A timed-out wait is a phase outcome, not a reason to stop:
			// later phases record their own failures against whatever is
			// still standing.
			s.logger.Errorf(ctx, err, "phase %s did not complete cleanly", p.name)
		}
	}

	s.deleteScope(ctx)
	return s.report, nil
}

// deleteScope always attempts the final VPC deletion, even after phase
// failures: whatever was removed so far may already be enough for the
// provider to accept the delete.
func (s *Sequencer) deleteScope(ctx context.Context) {
	if n := s.report.FailureCount(); n > 0 {
		s.logger.Warnf(ctx, "%d resources could not be removed, attempting to delete VPC %s anyway",
			n, s.scopeID)
	}
	if s.dryRun {
		s.report.RecordDeleted(domain.KindScope, s.scopeID)
		s.report.ScopeDeleted = true
		return
	}

	s.attemptDelete(ctx, domain.KindScope, s.scopeID,
		func(ctx context.Context) error { return s.net.DeleteScope(ctx, s.scopeID) },
		nil,
		"Some resources in the VPC are still attached. Re-run after the provider finishes releasing them.")

	for _, id := range s.report.Deleted[domain.KindScope] {
		if id == s.scopeID {
			s.report.ScopeDeleted = true
		}
	}
}

type remediateFunc func(ctx context.Context) error

// attemptDelete drives the bounded delete-remediate-retry loop for a single
// resource. A not-found response is treated as success without a record:
// the resource disappearing between describe and delete is the desired end
// state.
func (s *Sequencer) attemptDelete(ctx context.Context, kind domain.ResourceKind, id string, del func(ctx context.Context) error, remediate remediateFunc, inUseGuidance string) {
	if s.dryRun {
		s.report.RecordDeleted(kind, id)
		return
	}

	for attempt := 1; attempt <= s.policy.Delete.MaxAttempts; attempt++ {
		err := del(ctx)
		if err == nil {
			s.logger.Infof(ctx, "deleted %s %s", kind, id)
			s.report.RecordDeleted(kind, id)
			return
		}

		switch apperrors.GetCode(err) {
		case apperrors.CodeResourceNotFound:
			s.logger.Debugf(ctx, "%s %s already gone", kind, id)
			return
		case apperrors.CodeResourceInUse:
			if attempt == s.policy.Delete.MaxAttempts {
				s.logger.Errorf(ctx, err, "%s %s still in use after %d attempts", kind, id, attempt)
				s.report.RecordFailure(kind, id, domain.ReasonInUse, inUseGuidance)
				return
			}
			s.logger.Warnf(ctx, "%s %s in use, attempt %d/%d", kind, id, attempt, s.policy.Delete.MaxAttempts)
			if remediate != nil {
				if rerr := remediate(ctx); rerr != nil {
					s.logger.Errorf(ctx, rerr, "remediation for %s %s failed", kind, id)
				}
			}
			if serr := s.sleep(ctx, s.policy.Delete.Interval); serr != nil {
				s.report.RecordFailure(kind, id, domain.ReasonInUse, inUseGuidance)
				return
			}
		case apperrors.CodePlatformAuthError:
			s.logger.Errorf(ctx, err, "not authorized to delete %s %s", kind, id)
			s.report.RecordFailure(kind, id, domain.ReasonUnauthorized,
				"Grant the caller permission to delete this resource type and re-run.")
			return
		default:
			s.logger.Errorf(ctx, err, "failed to delete %s %s", kind, id)
			s.report.RecordFailure(kind, id, domain.ReasonError, "")
			return
		}
	}
}

// poll repeatedly checks a provider-side condition until it holds or the
// policy's attempts are exhausted.
func (s *Sequencer) poll(ctx context.Context, p PollPolicy, what string, check func(ctx context.Context) (bool, error)) error {
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		s.logger.Debugf(ctx, "waiting for %s, attempt %d/%d", what, attempt, p.MaxAttempts)
		if err := s.sleep(ctx, p.Interval); err != nil {
			return apperrors.Wrap(err, apperrors.CodeTimeout, "wait interrupted")
		}
	}
	return apperrors.New(apperrors.CodeTimeout, fmt.Sprintf("timed out waiting for %s", what))
}
