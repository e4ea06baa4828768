package service

import (
	"context"
	"strings"

	"github.com/cloudjanitor/vpc-reaper/internal/core/domain"
	apperrors "github.com/cloudjanitor/vpc-reaper/internal/errors"
)

// listSubnetIDs queries the scope's subnets fresh. Phases never reuse a
// resource set from an earlier phase; deletions in between must be observed.
func (s *Sequencer) listSubnetIDs(ctx context.Context) ([]string, error) {
	subnets, err := s.net.ListSubnets(ctx, s.scopeID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(subnets))
	for _, sn := range subnets {
		ids = append(ids, sn.ID)
	}
	return ids, nil
}

func (s *Sequencer) instancesPhase(ctx context.Context) error {
	instances, err := s.net.ListInstances(ctx, s.scopeID)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(instances))
	for _, inst := range instances {
		if inst.State == "terminated" || inst.State == "terminating" {
			continue
		}
		ids = append(ids, inst.ID)
	}
	if len(ids) == 0 {
		return nil
	}

	if s.dryRun {
		for _, id := range ids {
			s.report.RecordDeleted(domain.KindComputeInstance, id)
		}
		return nil
	}

	s.logger.Infof(ctx, "terminating %d instances", len(ids))
	if err := s.net.TerminateInstances(ctx, ids); err != nil {
		for _, id := range ids {
			s.recordFailureFor(domain.KindComputeInstance, id, err,
				"Check for termination protection on the instance.")
		}
		return err
	}

	err = s.poll(ctx, s.policy.InstanceWait, "instance termination", func(ctx context.Context) (bool, error) {
		return s.net.InstancesTerminated(ctx, ids)
	})
	if err != nil {
		for _, id := range ids {
			s.report.RecordFailure(domain.KindComputeInstance, id, domain.ReasonInUse,
				"Instance did not reach the terminated state in time. Re-run once it settles.")
		}
		return err
	}

	for _, id := range ids {
		s.report.RecordDeleted(domain.KindComputeInstance, id)
	}
	return nil
}

func (s *Sequencer) endpointsPhase(ctx context.Context) error {
	endpoints, err := s.net.ListEndpoints(ctx, s.scopeID)
	if err != nil {
		return err
	}
	for _, ep := range endpoints {
		if ep.State == "deleted" || ep.State == "deleting" {
			continue
		}
		id := ep.ID
		s.attemptDelete(ctx, domain.KindEndpoint, id,
			func(ctx context.Context) error { return s.net.DeleteEndpoint(ctx, id) },
			nil,
			"Another resource still routes through this endpoint.")
	}
	return nil
}

func (s *Sequencer) endpointServicesPhase(ctx context.Context) error {
	lbs, err := s.lbs.ListLoadBalancers(ctx, s.scopeID)
	if err != nil {
		return err
	}

	scopeARNs := make(map[string]bool, len(lbs))
	for _, lb := range lbs {
		scopeARNs[lb.ARN] = true
	}

	services, err := s.net.ListEndpointServices(ctx)
	if err != nil {
		return err
	}

	for _, svc := range services {
		if !referencesAny(svc.LoadBalancerARNs, scopeARNs) {
			continue
		}
		id := svc.ID
		s.attemptDelete(ctx, domain.KindEndpointService, id,
			func(ctx context.Context) error { return s.net.DeleteEndpointService(ctx, id) },
			func(ctx context.Context) error { return s.rejectServiceConnections(ctx, id) },
			"Endpoint connections to this service must be rejected before it can be removed.")
	}
	return nil
}

func (s *Sequencer) loadBalancersPhase(ctx context.Context) error {
	lbs, err := s.lbs.ListLoadBalancers(ctx, s.scopeID)
	if err != nil {
		return err
	}

	scopeARNs := make(map[string]bool, len(lbs))
	for _, lb := range lbs {
		scopeARNs[lb.ARN] = true
	}

	// Capture target group associations now: once a balancer is deleted its
	// target groups stop reporting the ARN that ties them to this scope.
	var scopeTGs []domain.TargetGroup
	if len(lbs) > 0 {
		groups, gerr := s.lbs.ListTargetGroups(ctx)
		if gerr != nil {
			s.logger.Warnf(ctx, "could not list target groups: %v", gerr)
		}
		for _, tg := range groups {
			if referencesAny(tg.LoadBalancerARNs, scopeARNs) {
				scopeTGs = append(scopeTGs, tg)
			}
		}
	}

	for _, lb := range lbs {
		if !s.dryRun {
			listeners, lerr := s.lbs.ListListeners(ctx, lb.ARN)
			if lerr != nil {
				s.logger.Warnf(ctx, "could not list listeners for %s: %v", lb.Name, lerr)
			}
			for _, arn := range listeners {
				listenerARN := arn
				s.attemptDelete(ctx, domain.KindListener, listenerARN,
					func(ctx context.Context) error { return s.lbs.DeleteListener(ctx, listenerARN) },
					nil, "")
			}
		}

		var remediate remediateFunc
		if lb.Type == domain.LoadBalancerGateway {
			gwlb := lb
			remediate = func(ctx context.Context) error { return s.remediateGatewayLoadBalancer(ctx, gwlb) }
		}
		arn := lb.ARN
		s.attemptDelete(ctx, domain.KindLoadBalancer, arn,
			func(ctx context.Context) error { return s.lbs.DeleteLoadBalancer(ctx, arn) },
			remediate,
			"An endpoint service configuration may still reference this load balancer.")
	}

	for _, tg := range scopeTGs {
		arn := tg.ARN
		s.attemptDelete(ctx, domain.KindTargetGroup, arn,
			func(ctx context.Context) error { return s.lbs.DeleteTargetGroup(ctx, arn) },
			nil, "")
	}

	classics, err := s.lbs.ListClassicLoadBalancers(ctx, s.scopeID)
	if err != nil {
		return err
	}
	for _, name := range classics {
		lbName := name
		s.attemptDelete(ctx, domain.KindLoadBalancer, lbName,
			func(ctx context.Context) error { return s.lbs.DeleteClassicLoadBalancer(ctx, lbName) },
			nil, "")
	}
	return nil
}

// gatewayDrainPhase waits for gateway load balancer interfaces to disappear
// after their owning balancers were removed. Deleting subnets while those
// interfaces linger fails with a dependency violation.
func (s *Sequencer) gatewayDrainPhase(ctx context.Context) error {
	if s.dryRun {
		return nil
	}
	return s.poll(ctx, s.policy.InterfaceDrain, "gateway interfaces to drain", func(ctx context.Context) (bool, error) {
		interfaces, err := s.net.ListNetworkInterfaces(ctx, s.scopeID)
		if err != nil {
			return false, err
		}
		for _, ni := range interfaces {
			if ni.Type == domain.InterfaceTypeGatewayLB {
				return false, nil
			}
		}
		return true, nil
	})
}

func (s *Sequencer) functionsPhase(ctx context.Context) error {
	subnetIDs, err := s.listSubnetIDs(ctx)
	if err != nil {
		return err
	}
	if len(subnetIDs) == 0 {
		return nil
	}

	names, err := s.fns.ListFunctions(ctx, subnetIDs)
	if err != nil {
		return err
	}
	for _, name := range names {
		fn := name
		s.attemptDelete(ctx, domain.KindFunction, fn,
			func(ctx context.Context) error { return s.fns.DeleteFunction(ctx, fn) },
			nil, "")
	}
	return nil
}

func (s *Sequencer) dbSubnetGroupsPhase(ctx context.Context) error {
	subnetIDs, err := s.listSubnetIDs(ctx)
	if err != nil {
		return err
	}
	if len(subnetIDs) == 0 {
		return nil
	}

	groups, err := s.dbs.ListSubnetGroups(ctx, subnetIDs)
	if err != nil {
		return err
	}
	for _, name := range groups {
		group := name
		s.attemptDelete(ctx, domain.KindDBSubnetGroup, group,
			func(ctx context.Context) error { return s.dbs.DeleteSubnetGroup(ctx, group) },
			nil,
			"A database instance still uses this subnet group. Delete the instance first.")
	}
	return nil
}

func (s *Sequencer) natGatewaysPhase(ctx context.Context) error {
	gateways, err := s.net.ListNATGateways(ctx, s.scopeID)
	if err != nil {
		return err
	}

	pending := make([]string, 0, len(gateways))
	for _, gw := range gateways {
		if gw.State == "deleted" {
			continue
		}
		id := gw.ID
		s.attemptDelete(ctx, domain.KindNATGateway, id,
			func(ctx context.Context) error { return s.net.DeleteNATGateway(ctx, id) },
			nil, "")
		pending = append(pending, id)
	}

	if len(pending) == 0 || s.dryRun {
		return nil
	}

	// NAT gateways delete asynchronously and hold their elastic IPs and
	// subnet interfaces until fully gone.
	return s.poll(ctx, s.policy.NATGatewayWait, "NAT gateways to delete", func(ctx context.Context) (bool, error) {
		return s.net.NATGatewaysDeleted(ctx, pending)
	})
}

func (s *Sequencer) peeringPhase(ctx context.Context) error {
	peers, err := s.net.ListPeeringConnections(ctx, s.scopeID)
	if err != nil {
		return err
	}
	for _, peer := range peers {
		if peer.State == "deleted" || peer.State == "deleting" {
			continue
		}
		id := peer.ID
		s.attemptDelete(ctx, domain.KindPeeringConnection, id,
			func(ctx context.Context) error { return s.net.DeletePeeringConnection(ctx, id) },
			nil, "")
	}
	return nil
}

func (s *Sequencer) vpnPhase(ctx context.Context) error {
	connections, err := s.net.ListVPNConnections(ctx, s.scopeID)
	if err != nil {
		return err
	}
	for _, conn := range connections {
		if conn.State == "deleted" || conn.State == "deleting" {
			continue
		}
		id := conn.ID
		s.attemptDelete(ctx, domain.KindVPNConnection, id,
			func(ctx context.Context) error { return s.net.DeleteVPNConnection(ctx, id) },
			nil, "")
	}

	gateways, err := s.net.ListVPNGateways(ctx, s.scopeID)
	if err != nil {
		return err
	}
	for _, gw := range gateways {
		if gw.State == "deleted" {
			continue
		}
		id := gw.ID
		s.attemptDelete(ctx, domain.KindVPNGateway, id,
			func(ctx context.Context) error {
				if err := s.net.DetachVPNGateway(ctx, id, s.scopeID); err != nil &&
					!apperrors.Is(err, apperrors.CodeResourceNotFound) {
					return err
				}
				return s.net.DeleteVPNGateway(ctx, id)
			},
			nil,
			"A VPN connection may still reference this gateway.")
	}
	return nil
}

func (s *Sequencer) addressesPhase(ctx context.Context) error {
	addresses, err := s.net.ListAddresses(ctx, s.scopeID)
	if err != nil {
		return err
	}
	for _, addr := range addresses {
		id := addr.ID
		s.attemptDelete(ctx, domain.KindElasticIP, id,
			func(ctx context.Context) error { return s.net.ReleaseAddress(ctx, id) },
			nil,
			"The address is still associated with a network interface.")
	}
	return nil
}

func (s *Sequencer) internetGatewaysPhase(ctx context.Context) error {
	gateways, err := s.net.ListInternetGateways(ctx, s.scopeID)
	if err != nil {
		return err
	}
	for _, gw := range gateways {
		id := gw.ID
		s.attemptDelete(ctx, domain.KindInternetGateway, id,
			func(ctx context.Context) error {
				if err := s.net.DetachInternetGateway(ctx, id, s.scopeID); err != nil &&
					!apperrors.Is(err, apperrors.CodeResourceNotFound) {
					return err
				}
				return s.net.DeleteInternetGateway(ctx, id)
			},
			nil,
			"A public address or NAT gateway still depends on this internet gateway.")
	}
	return nil
}

func (s *Sequencer) interfacesPhase(ctx context.Context) error {
	interfaces, err := s.net.ListNetworkInterfaces(ctx, s.scopeID)
	if err != nil {
		return err
	}
	for _, ni := range interfaces {
		if ni.ServiceManaged() {
			s.logger.Debugf(ctx, "skipping service-managed interface %s (%s)", ni.ID, ni.Type)
			continue
		}
		if ni.InstanceID != "" {
			s.logger.Debugf(ctx, "skipping interface %s still attached to instance %s", ni.ID, ni.InstanceID)
			continue
		}

		iface := ni
		s.attemptDelete(ctx, domain.KindNetworkInterface, iface.ID,
			func(ctx context.Context) error {
				if iface.AttachmentID != "" {
					if err := s.net.DetachNetworkInterface(ctx, iface.AttachmentID, true); err != nil &&
						!apperrors.Is(err, apperrors.CodeResourceNotFound) {
						return err
					}
				}
				return s.net.DeleteNetworkInterface(ctx, iface.ID)
			},
			nil,
			"The interface belongs to another service. Delete the owning resource instead.")
	}
	return nil
}

func (s *Sequencer) subnetsPhase(ctx context.Context) error {
	subnets, err := s.net.ListSubnets(ctx, s.scopeID)
	if err != nil {
		return err
	}
	for _, sn := range subnets {
		id := sn.ID
		s.attemptDelete(ctx, domain.KindSubnet, id,
			func(ctx context.Context) error { return s.net.DeleteSubnet(ctx, id) },
			func(ctx context.Context) error { return s.remediateSubnet(ctx, id) },
			"Network interfaces in this subnet are still in use by another service.")
	}
	return nil
}

func (s *Sequencer) routeTablesPhase(ctx context.Context) error {
	tables, err := s.net.ListRouteTables(ctx, s.scopeID)
	if err != nil {
		return err
	}
	for _, rt := range tables {
		if rt.Main {
			s.logger.Debugf(ctx, "skipping main route table %s", rt.ID)
			continue
		}

		if !s.dryRun {
			for _, assoc := range rt.Associations {
				if assoc.Main {
					continue
				}
				if err := s.net.DisassociateRouteTable(ctx, assoc.ID); err != nil &&
					!apperrors.Is(err, apperrors.CodeResourceNotFound) {
					s.logger.Warnf(ctx, "could not disassociate %s from %s: %v", assoc.ID, rt.ID, err)
				}
			}
			for _, route := range rt.Routes {
				if !route.Removable() {
					continue
				}
				if err := s.net.DeleteRoute(ctx, rt.ID, route.Destination); err != nil &&
					!apperrors.Is(err, apperrors.CodeResourceNotFound) {
					s.logger.Warnf(ctx, "could not delete route %s in %s: %v", route.Destination.CIDR, rt.ID, err)
				}
			}
		}

		id := rt.ID
		s.attemptDelete(ctx, domain.KindRouteTable, id,
			func(ctx context.Context) error { return s.net.DeleteRouteTable(ctx, id) },
			nil,
			"A subnet association or gateway route still references this table.")
	}
	return nil
}

func (s *Sequencer) securityGroupsPhase(ctx context.Context) error {
	groups, err := s.net.ListSecurityGroups(ctx, s.scopeID)
	if err != nil {
		return err
	}

	// Revoke every rule first so cross-references between groups cannot
	// block any individual delete.
	if !s.dryRun {
		for _, sg := range groups {
			if sg.IsDefault() || (!sg.HasIngress && !sg.HasEgress) {
				continue
			}
			if err := s.net.RevokeSecurityGroupRules(ctx, sg.ID); err != nil &&
				!apperrors.Is(err, apperrors.CodeResourceNotFound) {
				s.logger.Warnf(ctx, "could not revoke rules on %s: %v", sg.ID, err)
			}
		}
	}

	for _, sg := range groups {
		if sg.IsDefault() {
			continue
		}
		id := sg.ID
		s.attemptDelete(ctx, domain.KindSecurityGroup, id,
			func(ctx context.Context) error { return s.net.DeleteSecurityGroup(ctx, id) },
			nil,
			"A network interface or another group's rule still references this group.")
	}
	return nil
}

func (s *Sequencer) networkACLsPhase(ctx context.Context) error {
	acls, err := s.net.ListNetworkACLs(ctx, s.scopeID)
	if err != nil {
		return err
	}
	for _, acl := range acls {
		id := acl.ID
		s.attemptDelete(ctx, domain.KindNetworkACL, id,
			func(ctx context.Context) error { return s.net.DeleteNetworkACL(ctx, id) },
			nil, "")
	}
	return nil
}

func (s *Sequencer) recordFailureFor(kind domain.ResourceKind, id string, err error, guidance string) {
	switch apperrors.GetCode(err) {
	case apperrors.CodePlatformAuthError:
		s.report.RecordFailure(kind, id, domain.ReasonUnauthorized,
			"Grant the caller permission to delete this resource type and re-run.")
	case apperrors.CodeResourceInUse:
		s.report.RecordFailure(kind, id, domain.ReasonInUse, guidance)
	default:
		s.report.RecordFailure(kind, id, domain.ReasonError, guidance)
	}
}

func referencesAny(arns []string, set map[string]bool) bool {
	for _, arn := range arns {
		if set[arn] {
			return true
		}
	}
	return false
}

func referencesARN(arns []string, arn string) bool {
	for _, candidate := range arns {
		if candidate == arn {
			return true
		}
	}
	return false
}

func endpointIDFromDescription(description string) string {
	for _, field := range strings.Fields(description) {
		if strings.HasPrefix(field, "vpce-") {
			return strings.Trim(field, ".,")
		}
	}
	return ""
}
