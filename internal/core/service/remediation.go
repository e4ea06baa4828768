package service

import (
	"context"

	"github.com/cloudjanitor/vpc-reaper/internal/core/domain"
	apperrors "github.com/cloudjanitor/vpc-reaper/internal/errors"
)

// rejectServiceConnections rejects every live endpoint connection to an
// endpoint service so the service configuration can be deleted.
func (s *Sequencer) rejectServiceConnections(ctx context.Context, serviceID string) error {
	connections, err := s.net.ListEndpointConnections(ctx, serviceID)
	if err != nil {
		return err
	}

	endpointIDs := make([]string, 0, len(connections))
	for _, conn := range connections {
		switch conn.State {
		case "available", "pendingAcceptance", "pending":
			endpointIDs = append(endpointIDs, conn.EndpointID)
		}
	}
	if len(endpointIDs) == 0 {
		return nil
	}

	s.logger.Infof(ctx, "rejecting %d endpoint connections to service %s", len(endpointIDs), serviceID)
	return s.net.RejectEndpointConnections(ctx, serviceID, endpointIDs)
}

// remediateGatewayLoadBalancer clears everything that can pin a gateway
// load balancer: endpoint service configurations referencing it, its
// listeners, and the target groups bound to it.
func (s *Sequencer) remediateGatewayLoadBalancer(ctx context.Context, lb domain.LoadBalancer) error {
	services, err := s.net.ListEndpointServices(ctx)
	if err != nil {
		return err
	}

	for _, svc := range services {
		if !referencesARN(svc.LoadBalancerARNs, lb.ARN) {
			continue
		}

		s.logger.Infof(ctx, "removing endpoint service %s blocking gateway load balancer %s", svc.ID, lb.Name)
		if err := s.rejectServiceConnections(ctx, svc.ID); err != nil {
			s.logger.Warnf(ctx, "could not reject connections to %s: %v", svc.ID, err)
		}
		if err := s.net.DeleteEndpointService(ctx, svc.ID); err != nil &&
			!apperrors.Is(err, apperrors.CodeResourceNotFound) {
			return err
		}
		s.report.RecordDeleted(domain.KindEndpointService, svc.ID)
	}

	listeners, err := s.lbs.ListListeners(ctx, lb.ARN)
	if err != nil {
		s.logger.Warnf(ctx, "could not list listeners for %s: %v", lb.Name, err)
	}
	for _, arn := range listeners {
		err := s.lbs.DeleteListener(ctx, arn)
		switch {
		case err == nil:
			s.report.RecordDeleted(domain.KindListener, arn)
		case !apperrors.Is(err, apperrors.CodeResourceNotFound):
			s.logger.Warnf(ctx, "could not delete listener %s: %v", arn, err)
		}
	}

	groups, err := s.lbs.ListTargetGroups(ctx)
	if err != nil {
		s.logger.Warnf(ctx, "could not list target groups: %v", err)
	}
	for _, tg := range groups {
		if !referencesARN(tg.LoadBalancerARNs, lb.ARN) {
			continue
		}
		s.logger.Infof(ctx, "deleting target group %s bound to gateway load balancer %s", tg.Name, lb.Name)
		if err := s.lbs.DeleteTargetGroup(ctx, tg.ARN); err != nil &&
			!apperrors.Is(err, apperrors.CodeResourceNotFound) {
			return err
		}
		s.report.RecordDeleted(domain.KindTargetGroup, tg.ARN)
	}
	return nil
}

// remediateSubnet removes the gateway load balancer endpoints holding
// interfaces inside a subnet, then waits for those interfaces to drain.
func (s *Sequencer) remediateSubnet(ctx context.Context, subnetID string) error {
	interfaces, err := s.net.ListSubnetInterfaces(ctx, subnetID)
	if err != nil {
		return err
	}

	deleted := 0
	for _, ni := range interfaces {
		if ni.Type != domain.InterfaceTypeGatewayLBEndpoint {
			continue
		}
		endpointID := endpointIDFromDescription(ni.Description)
		if endpointID == "" {
			s.logger.Warnf(ctx, "interface %s has no endpoint reference in its description", ni.ID)
			continue
		}
		s.logger.Infof(ctx, "deleting endpoint %s holding interface %s in subnet %s", endpointID, ni.ID, subnetID)
		if err := s.net.DeleteEndpoint(ctx, endpointID); err != nil &&
			!apperrors.Is(err, apperrors.CodeResourceNotFound) {
			return err
		}
		s.report.RecordDeleted(domain.KindEndpoint, endpointID)
		deleted++
	}
	if deleted == 0 {
		return nil
	}

	return s.poll(ctx, s.policy.InterfaceDrain, "subnet interfaces to drain", func(ctx context.Context) (bool, error) {
		remaining, err := s.net.ListSubnetInterfaces(ctx, subnetID)
		if err != nil {
			return false, err
		}
		return len(remaining) == 0, nil
	})
}
