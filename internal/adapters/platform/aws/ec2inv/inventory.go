package ec2inv

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"

	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/awserrors"
	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/limiter"
	"github.com/cloudjanitor/vpc-reaper/internal/core/domain"
	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
	apperrors "github.com/cloudjanitor/vpc-reaper/internal/errors"
)

// Inventory implements the networking port on top of the EC2 API.
type Inventory struct {
	client  EC2API
	limiter *limiter.Limiter
	logger  ports.Logger
}

var _ ports.NetworkInventory = (*Inventory)(nil)

func New(client EC2API, lim *limiter.Limiter, logger ports.Logger) *Inventory {
	return &Inventory{client: client, limiter: lim, logger: logger}
}

func (i *Inventory) wait(ctx context.Context) error {
	if i.limiter == nil {
		return nil
	}
	return i.limiter.Wait(ctx)
}

func vpcFilter(scopeID string) []ec2types.Filter {
	return []ec2types.Filter{{Name: aws.String("vpc-id"), Values: []string{scopeID}}}
}

// unsuccessfulToError turns the batch-API "unsuccessful item" shape into a
// regular API error so it classifies like any other failure.
func unsuccessfulToError(items []ec2types.UnsuccessfulItem) error {
	if len(items) == 0 {
		return nil
	}
	item := items[0]
	if item.Error == nil {
		return fmt.Errorf("request failed for %s", aws.ToString(item.ResourceId))
	}
	return &smithy.GenericAPIError{
		Code:    aws.ToString(item.Error.Code),
		Message: aws.ToString(item.Error.Message),
	}
}

func (i *Inventory) DescribeScope(ctx context.Context, scopeID string) (domain.ScopeDetails, error) {
	if err := i.wait(ctx); err != nil {
		return domain.ScopeDetails{}, err
	}
	out, err := i.client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{scopeID}})
	if err != nil {
		return domain.ScopeDetails{}, awserrors.Classify(ctx, err, "VPC", scopeID)
	}
	if len(out.Vpcs) == 0 {
		return domain.ScopeDetails{}, apperrors.New(apperrors.CodeResourceNotFound,
			fmt.Sprintf("VPC '%s' not found", scopeID))
	}
	vpc := out.Vpcs[0]
	return domain.ScopeDetails{
		ID:        aws.ToString(vpc.VpcId),
		CIDR:      aws.ToString(vpc.CidrBlock),
		State:     string(vpc.State),
		IsDefault: aws.ToBool(vpc.IsDefault),
	}, nil
}

func (i *Inventory) DeleteScope(ctx context.Context, scopeID string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteVpc(ctx, &ec2.DeleteVpcInput{VpcId: aws.String(scopeID)})
	return awserrors.Classify(ctx, err, "VPC", scopeID)
}

func (i *Inventory) ListInstances(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	input := &ec2.DescribeInstancesInput{Filters: vpcFilter(scopeID)}
	paginator := ec2.NewDescribeInstancesPaginator(i.client, input)

	var instances []domain.Resource
	for paginator.HasMorePages() {
		if err := i.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, awserrors.Classify(ctx, err, "instance", scopeID)
		}
		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				state := ""
				if inst.State != nil {
					state = string(inst.State.Name)
				}
				instances = append(instances, domain.Resource{
					Kind:    domain.KindComputeInstance,
					ID:      aws.ToString(inst.InstanceId),
					ScopeID: scopeID,
					State:   state,
				})
			}
		}
	}
	return instances, nil
}

func (i *Inventory) TerminateInstances(ctx context.Context, ids []string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{InstanceIds: ids})
	return awserrors.Classify(ctx, err, "instance", fmt.Sprintf("%d instances", len(ids)))
}

func (i *Inventory) InstancesTerminated(ctx context.Context, ids []string) (bool, error) {
	if err := i.wait(ctx); err != nil {
		return false, err
	}
	out, err := i.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{InstanceIds: ids})
	if err != nil {
		cerr := awserrors.Classify(ctx, err, "instance", fmt.Sprintf("%d instances", len(ids)))
		if apperrors.Is(cerr, apperrors.CodeResourceNotFound) {
			return true, nil
		}
		return false, cerr
	}
	for _, reservation := range out.Reservations {
		for _, inst := range reservation.Instances {
			if inst.State == nil || inst.State.Name != ec2types.InstanceStateNameTerminated {
				return false, nil
			}
		}
	}
	return true, nil
}

func (i *Inventory) ListEndpoints(ctx context.Context, scopeID string) ([]domain.Endpoint, error) {
	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	out, err := i.client.DescribeVpcEndpoints(ctx, &ec2.DescribeVpcEndpointsInput{Filters: vpcFilter(scopeID)})
	if err != nil {
		return nil, awserrors.Classify(ctx, err, "VPC endpoint", scopeID)
	}
	endpoints := make([]domain.Endpoint, 0, len(out.VpcEndpoints))
	for _, ep := range out.VpcEndpoints {
		endpoints = append(endpoints, domain.Endpoint{
			ID:          aws.ToString(ep.VpcEndpointId),
			ServiceName: aws.ToString(ep.ServiceName),
			Type:        string(ep.VpcEndpointType),
			State:       string(ep.State),
		})
	}
	return endpoints, nil
}

func (i *Inventory) DeleteEndpoint(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	out, err := i.client.DeleteVpcEndpoints(ctx, &ec2.DeleteVpcEndpointsInput{VpcEndpointIds: []string{id}})
	if err != nil {
		return awserrors.Classify(ctx, err, "VPC endpoint", id)
	}
	if uerr := unsuccessfulToError(out.Unsuccessful); uerr != nil {
		return awserrors.Classify(ctx, uerr, "VPC endpoint", id)
	}
	return nil
}

func (i *Inventory) ListEndpointServices(ctx context.Context) ([]domain.EndpointService, error) {
	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	out, err := i.client.DescribeVpcEndpointServiceConfigurations(ctx, &ec2.DescribeVpcEndpointServiceConfigurationsInput{})
	if err != nil {
		return nil, awserrors.Classify(ctx, err, "endpoint service", "all")
	}
	services := make([]domain.EndpointService, 0, len(out.ServiceConfigurations))
	for _, svc := range out.ServiceConfigurations {
		arns := append([]string{}, svc.GatewayLoadBalancerArns...)
		arns = append(arns, svc.NetworkLoadBalancerArns...)
		services = append(services, domain.EndpointService{
			ID:               aws.ToString(svc.ServiceId),
			Name:             aws.ToString(svc.ServiceName),
			LoadBalancerARNs: arns,
		})
	}
	return services, nil
}

func (i *Inventory) DeleteEndpointService(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	out, err := i.client.DeleteVpcEndpointServiceConfigurations(ctx, &ec2.DeleteVpcEndpointServiceConfigurationsInput{
		ServiceIds: []string{id},
	})
	if err != nil {
		return awserrors.Classify(ctx, err, "endpoint service", id)
	}
	if uerr := unsuccessfulToError(out.Unsuccessful); uerr != nil {
		return awserrors.Classify(ctx, uerr, "endpoint service", id)
	}
	return nil
}

func (i *Inventory) ListEndpointConnections(ctx context.Context, serviceID string) ([]domain.EndpointConnection, error) {
	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	out, err := i.client.DescribeVpcEndpointConnections(ctx, &ec2.DescribeVpcEndpointConnectionsInput{
		Filters: []ec2types.Filter{{Name: aws.String("service-id"), Values: []string{serviceID}}},
	})
	if err != nil {
		return nil, awserrors.Classify(ctx, err, "endpoint connection", serviceID)
	}
	connections := make([]domain.EndpointConnection, 0, len(out.VpcEndpointConnections))
	for _, conn := range out.VpcEndpointConnections {
		connections = append(connections, domain.EndpointConnection{
			EndpointID: aws.ToString(conn.VpcEndpointId),
			State:      string(conn.VpcEndpointState),
		})
	}
	return connections, nil
}

func (i *Inventory) RejectEndpointConnections(ctx context.Context, serviceID string, endpointIDs []string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	out, err := i.client.RejectVpcEndpointConnections(ctx, &ec2.RejectVpcEndpointConnectionsInput{
		ServiceId:      aws.String(serviceID),
		VpcEndpointIds: endpointIDs,
	})
	if err != nil {
		return awserrors.Classify(ctx, err, "endpoint connection", serviceID)
	}
	if uerr := unsuccessfulToError(out.Unsuccessful); uerr != nil {
		return awserrors.Classify(ctx, uerr, "endpoint connection", serviceID)
	}
	return nil
}

func (i *Inventory) ListNATGateways(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	out, err := i.client.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{Filter: vpcFilter(scopeID)})
	if err != nil {
		return nil, awserrors.Classify(ctx, err, "NAT gateway", scopeID)
	}
	gateways := make([]domain.Resource, 0, len(out.NatGateways))
	for _, gw := range out.NatGateways {
		gateways = append(gateways, domain.Resource{
			Kind:    domain.KindNATGateway,
			ID:      aws.ToString(gw.NatGatewayId),
			ScopeID: scopeID,
			State:   string(gw.State),
		})
	}
	return gateways, nil
}

func (i *Inventory) DeleteNATGateway(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteNatGateway(ctx, &ec2.DeleteNatGatewayInput{NatGatewayId: aws.String(id)})
	return awserrors.Classify(ctx, err, "NAT gateway", id)
}

func (i *Inventory) NATGatewaysDeleted(ctx context.Context, ids []string) (bool, error) {
	if err := i.wait(ctx); err != nil {
		return false, err
	}
	out, err := i.client.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{NatGatewayIds: ids})
	if err != nil {
		cerr := awserrors.Classify(ctx, err, "NAT gateway", fmt.Sprintf("%d gateways", len(ids)))
		if apperrors.Is(cerr, apperrors.CodeResourceNotFound) {
			return true, nil
		}
		return false, cerr
	}
	for _, gw := range out.NatGateways {
		if gw.State != ec2types.NatGatewayStateDeleted {
			return false, nil
		}
	}
	return true, nil
}

func (i *Inventory) ListPeeringConnections(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	seen := make(map[string]bool)
	var peers []domain.Resource

	// The API cannot OR filters across fields, so requester and accepter
	// sides take one call each.
	for _, filterName := range []string{"requester-vpc-info.vpc-id", "accepter-vpc-info.vpc-id"} {
		if err := i.wait(ctx); err != nil {
			return nil, err
		}
		out, err := i.client.DescribeVpcPeeringConnections(ctx, &ec2.DescribeVpcPeeringConnectionsInput{
			Filters: []ec2types.Filter{{Name: aws.String(filterName), Values: []string{scopeID}}},
		})
		if err != nil {
			return nil, awserrors.Classify(ctx, err, "peering connection", scopeID)
		}
		for _, peer := range out.VpcPeeringConnections {
			id := aws.ToString(peer.VpcPeeringConnectionId)
			if seen[id] {
				continue
			}
			seen[id] = true
			state := ""
			if peer.Status != nil {
				state = string(peer.Status.Code)
			}
			peers = append(peers, domain.Resource{
				Kind:    domain.KindPeeringConnection,
				ID:      id,
				ScopeID: scopeID,
				State:   state,
			})
		}
	}
	return peers, nil
}

func (i *Inventory) DeletePeeringConnection(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteVpcPeeringConnection(ctx, &ec2.DeleteVpcPeeringConnectionInput{
		VpcPeeringConnectionId: aws.String(id),
	})
	return awserrors.Classify(ctx, err, "peering connection", id)
}

func (i *Inventory) ListVPNGateways(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	out, err := i.client.DescribeVpnGateways(ctx, &ec2.DescribeVpnGatewaysInput{
		Filters: []ec2types.Filter{{Name: aws.String("attachment.vpc-id"), Values: []string{scopeID}}},
	})
	if err != nil {
		return nil, awserrors.Classify(ctx, err, "VPN gateway", scopeID)
	}
	gateways := make([]domain.Resource, 0, len(out.VpnGateways))
	for _, gw := range out.VpnGateways {
		gateways = append(gateways, domain.Resource{
			Kind:    domain.KindVPNGateway,
			ID:      aws.ToString(gw.VpnGatewayId),
			ScopeID: scopeID,
			State:   string(gw.State),
		})
	}
	return gateways, nil
}

// ListVPNConnections finds connections through the scope's VPN gateways:
// connections carry no VPC reference of their own.
func (i *Inventory) ListVPNConnections(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	gateways, err := i.ListVPNGateways(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	if len(gateways) == 0 {
		return nil, nil
	}

	gatewayIDs := make([]string, 0, len(gateways))
	for _, gw := range gateways {
		gatewayIDs = append(gatewayIDs, gw.ID)
	}

	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	out, err := i.client.DescribeVpnConnections(ctx, &ec2.DescribeVpnConnectionsInput{
		Filters: []ec2types.Filter{{Name: aws.String("vpn-gateway-id"), Values: gatewayIDs}},
	})
	if err != nil {
		return nil, awserrors.Classify(ctx, err, "VPN connection", scopeID)
	}
	connections := make([]domain.Resource, 0, len(out.VpnConnections))
	for _, conn := range out.VpnConnections {
		connections = append(connections, domain.Resource{
			Kind:    domain.KindVPNConnection,
			ID:      aws.ToString(conn.VpnConnectionId),
			ScopeID: scopeID,
			State:   string(conn.State),
		})
	}
	return connections, nil
}

func (i *Inventory) DeleteVPNConnection(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteVpnConnection(ctx, &ec2.DeleteVpnConnectionInput{VpnConnectionId: aws.String(id)})
	return awserrors.Classify(ctx, err, "VPN connection", id)
}

func (i *Inventory) DetachVPNGateway(ctx context.Context, id, scopeID string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DetachVpnGateway(ctx, &ec2.DetachVpnGatewayInput{
		VpnGatewayId: aws.String(id),
		VpcId:        aws.String(scopeID),
	})
	return awserrors.Classify(ctx, err, "VPN gateway", id)
}

func (i *Inventory) DeleteVPNGateway(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteVpnGateway(ctx, &ec2.DeleteVpnGatewayInput{VpnGatewayId: aws.String(id)})
	return awserrors.Classify(ctx, err, "VPN gateway", id)
}

// ListAddresses returns the elastic IPs associated with the scope's network
// interfaces. Addresses carry no VPC reference, so membership comes from
// the interface association.
func (i *Inventory) ListAddresses(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	interfaces, err := i.ListNetworkInterfaces(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	scopeENIs := make(map[string]bool, len(interfaces))
	for _, ni := range interfaces {
		scopeENIs[ni.ID] = true
	}

	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	out, err := i.client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
	if err != nil {
		return nil, awserrors.Classify(ctx, err, "elastic IP", scopeID)
	}

	var addresses []domain.Resource
	for _, addr := range out.Addresses {
		if addr.NetworkInterfaceId == nil || !scopeENIs[*addr.NetworkInterfaceId] {
			continue
		}
		addresses = append(addresses, domain.Resource{
			Kind:    domain.KindElasticIP,
			ID:      aws.ToString(addr.AllocationId),
			Name:    aws.ToString(addr.PublicIp),
			ScopeID: scopeID,
		})
	}
	return addresses, nil
}

func (i *Inventory) ReleaseAddress(ctx context.Context, allocationID string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.ReleaseAddress(ctx, &ec2.ReleaseAddressInput{AllocationId: aws.String(allocationID)})
	return awserrors.Classify(ctx, err, "elastic IP", allocationID)
}

func (i *Inventory) ListInternetGateways(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	out, err := i.client.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{
		Filters: []ec2types.Filter{{Name: aws.String("attachment.vpc-id"), Values: []string{scopeID}}},
	})
	if err != nil {
		return nil, awserrors.Classify(ctx, err, "internet gateway", scopeID)
	}
	gateways := make([]domain.Resource, 0, len(out.InternetGateways))
	for _, gw := range out.InternetGateways {
		gateways = append(gateways, domain.Resource{
			Kind:    domain.KindInternetGateway,
			ID:      aws.ToString(gw.InternetGatewayId),
			ScopeID: scopeID,
		})
	}
	return gateways, nil
}

func (i *Inventory) DetachInternetGateway(ctx context.Context, id, scopeID string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DetachInternetGateway(ctx, &ec2.DetachInternetGatewayInput{
		InternetGatewayId: aws.String(id),
		VpcId:             aws.String(scopeID),
	})
	return awserrors.Classify(ctx, err, "internet gateway", id)
}

func (i *Inventory) DeleteInternetGateway(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteInternetGateway(ctx, &ec2.DeleteInternetGatewayInput{InternetGatewayId: aws.String(id)})
	return awserrors.Classify(ctx, err, "internet gateway", id)
}

func (i *Inventory) ListNetworkInterfaces(ctx context.Context, scopeID string) ([]domain.NetworkInterface, error) {
	return i.listInterfaces(ctx, vpcFilter(scopeID))
}

func (i *Inventory) ListSubnetInterfaces(ctx context.Context, subnetID string) ([]domain.NetworkInterface, error) {
	return i.listInterfaces(ctx, []ec2types.Filter{{Name: aws.String("subnet-id"), Values: []string{subnetID}}})
}

func (i *Inventory) listInterfaces(ctx context.Context, filters []ec2types.Filter) ([]domain.NetworkInterface, error) {
	input := &ec2.DescribeNetworkInterfacesInput{Filters: filters}
	paginator := ec2.NewDescribeNetworkInterfacesPaginator(i.client, input)

	var interfaces []domain.NetworkInterface
	for paginator.HasMorePages() {
		if err := i.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, awserrors.Classify(ctx, err, "network interface", "describe")
		}
		for _, ni := range page.NetworkInterfaces {
			mapped := domain.NetworkInterface{
				ID:          aws.ToString(ni.NetworkInterfaceId),
				Type:        string(ni.InterfaceType),
				Status:      string(ni.Status),
				Description: aws.ToString(ni.Description),
				SubnetID:    aws.ToString(ni.SubnetId),
			}
			if ni.Attachment != nil {
				mapped.AttachmentID = aws.ToString(ni.Attachment.AttachmentId)
				mapped.InstanceID = aws.ToString(ni.Attachment.InstanceId)
			}
			interfaces = append(interfaces, mapped)
		}
	}
	return interfaces, nil
}

func (i *Inventory) DetachNetworkInterface(ctx context.Context, attachmentID string, force bool) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DetachNetworkInterface(ctx, &ec2.DetachNetworkInterfaceInput{
		AttachmentId: aws.String(attachmentID),
		Force:        aws.Bool(force),
	})
	return awserrors.Classify(ctx, err, "network interface attachment", attachmentID)
}

func (i *Inventory) DeleteNetworkInterface(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteNetworkInterface(ctx, &ec2.DeleteNetworkInterfaceInput{NetworkInterfaceId: aws.String(id)})
	return awserrors.Classify(ctx, err, "network interface", id)
}
