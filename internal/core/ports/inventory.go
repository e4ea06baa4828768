package ports

import (
	"context"

	"github.com/cloudjanitor/vpc-reaper/internal/core/domain"
)

// NetworkInventory is the provider surface for the networking primitives a
// scope teardown touches. Implementations classify provider failures into
// application error codes; the sequencer never inspects raw provider errors.
type NetworkInventory interface {
	DescribeScope(ctx context.Context, scopeID string) (domain.ScopeDetails, error)
	DeleteScope(ctx context.Context, scopeID string) error

	ListInstances(ctx context.Context, scopeID string) ([]domain.Resource, error)
	TerminateInstances(ctx context.Context, ids []string) error
	InstancesTerminated(ctx context.Context, ids []string) (bool, error)

	ListEndpoints(ctx context.Context, scopeID string) ([]domain.Endpoint, error)
	DeleteEndpoint(ctx context.Context, id string) error

	ListEndpointServices(ctx context.Context) ([]domain.EndpointService, error)
	DeleteEndpointService(ctx context.Context, id string) error
	ListEndpointConnections(ctx context.Context, serviceID string) ([]domain.EndpointConnection, error)
	RejectEndpointConnections(ctx context.Context, serviceID string, endpointIDs []string) error

	ListNATGateways(ctx context.Context, scopeID string) ([]domain.Resource, error)
	DeleteNATGateway(ctx context.Context, id string) error
	NATGatewaysDeleted(ctx context.Context, ids []string) (bool, error)

	ListPeeringConnections(ctx context.Context, scopeID string) ([]domain.Resource, error)
	DeletePeeringConnection(ctx context.Context, id string) error

	ListVPNConnections(ctx context.Context, scopeID string) ([]domain.Resource, error)
	DeleteVPNConnection(ctx context.Context, id string) error
	ListVPNGateways(ctx context.Context, scopeID string) ([]domain.Resource, error)
	DetachVPNGateway(ctx context.Context, id, scopeID string) error
	DeleteVPNGateway(ctx context.Context, id string) error

	ListAddresses(ctx context.Context, scopeID string) ([]domain.Resource, error)
	ReleaseAddress(ctx context.Context, allocationID string) error

	ListInternetGateways(ctx context.Context, scopeID string) ([]domain.Resource, error)
	DetachInternetGateway(ctx context.Context, id, scopeID string) error
	DeleteInternetGateway(ctx context.Context, id string) error

	ListNetworkInterfaces(ctx context.Context, scopeID string) ([]domain.NetworkInterface, error)
	ListSubnetInterfaces(ctx context.Context, subnetID string) ([]domain.NetworkInterface, error)
	DetachNetworkInterface(ctx context.Context, attachmentID string, force bool) error
	DeleteNetworkInterface(ctx context.Context, id string) error

	ListSubnets(ctx context.Context, scopeID string) ([]domain.Subnet, error)
	DeleteSubnet(ctx context.Context, id string) error

	ListRouteTables(ctx context.Context, scopeID string) ([]domain.RouteTable, error)
	DisassociateRouteTable(ctx context.Context, associationID string) error
	DeleteRoute(ctx context.Context, routeTableID string, dest domain.RouteDestination) error
	DeleteRouteTable(ctx context.Context, id string) error

	ListSecurityGroups(ctx context.Context, scopeID string) ([]domain.SecurityGroup, error)
	RevokeSecurityGroupRules(ctx context.Context, id string) error
	DeleteSecurityGroup(ctx context.Context, id string) error

	ListNetworkACLs(ctx context.Context, scopeID string) ([]domain.Resource, error)
	DeleteNetworkACL(ctx context.Context, id string) error
}

// LoadBalancerInventory covers both generations of the provider's load
// balancer API.
type LoadBalancerInventory interface {
	ListLoadBalancers(ctx context.Context, scopeID string) ([]domain.LoadBalancer, error)
	DeleteLoadBalancer(ctx context.Context, arn string) error
	ListListeners(ctx context.Context, loadBalancerARN string) ([]string, error)
	DeleteListener(ctx context.Context, arn string) error
	ListTargetGroups(ctx context.Context) ([]domain.TargetGroup, error)
	DeleteTargetGroup(ctx context.Context, arn string) error

	ListClassicLoadBalancers(ctx context.Context, scopeID string) ([]string, error)
	DeleteClassicLoadBalancer(ctx context.Context, name string) error
}

// DatabaseInventory locates database subnet groups that reference any of the
// scope's subnets.
type DatabaseInventory interface {
	ListSubnetGroups(ctx context.Context, subnetIDs []string) ([]string, error)
	DeleteSubnetGroup(ctx context.Context, name string) error
}

// FunctionInventory locates serverless functions attached to the scope's
// subnets.
type FunctionInventory interface {
	ListFunctions(ctx context.Context, subnetIDs []string) ([]string, error)
	DeleteFunction(ctx context.Context, name string) error
}
