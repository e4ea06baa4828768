package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cloudjanitor/vpc-reaper/internal/core/domain"
	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
)

type testLogger struct{}

func (testLogger) Debugf(ctx context.Context, format string, args ...any)            {}
func (testLogger) Infof(ctx context.Context, format string, args ...any)             {}
func (testLogger) Warnf(ctx context.Context, format string, args ...any)             {}
func (testLogger) Errorf(ctx context.Context, err error, format string, args ...any) {}
func (l testLogger) WithFields(fields map[string]any) ports.Logger                   { return l }

type MockNetworkInventory struct {
	mock.Mock
}

func (m *MockNetworkInventory) DescribeScope(ctx context.Context, scopeID string) (domain.ScopeDetails, error) {
	args := m.Called(ctx, scopeID)
	return args.Get(0).(domain.ScopeDetails), args.Error(1)
}

func (m *MockNetworkInventory) DeleteScope(ctx context.Context, scopeID string) error {
	return m.Called(ctx, scopeID).Error(0)
}

func (m *MockNetworkInventory) ListInstances(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockNetworkInventory) TerminateInstances(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockNetworkInventory) InstancesTerminated(ctx context.Context, ids []string) (bool, error) {
	args := m.Called(ctx, ids)
	return args.Bool(0), args.Error(1)
}

func (m *MockNetworkInventory) ListEndpoints(ctx context.Context, scopeID string) ([]domain.Endpoint, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Endpoint), args.Error(1)
}

func (m *MockNetworkInventory) DeleteEndpoint(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNetworkInventory) ListEndpointServices(ctx context.Context) ([]domain.EndpointService, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EndpointService), args.Error(1)
}

func (m *MockNetworkInventory) DeleteEndpointService(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNetworkInventory) ListEndpointConnections(ctx context.Context, serviceID string) ([]domain.EndpointConnection, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EndpointConnection), args.Error(1)
}

func (m *MockNetworkInventory) RejectEndpointConnections(ctx context.Context, serviceID string, endpointIDs []string) error {
	return m.Called(ctx, serviceID, endpointIDs).Error(0)
}

func (m *MockNetworkInventory) ListNATGateways(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockNetworkInventory) DeleteNATGateway(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNetworkInventory) NATGatewaysDeleted(ctx context.Context, ids []string) (bool, error) {
	args := m.Called(ctx, ids)
	return args.Bool(0), args.Error(1)
}

func (m *MockNetworkInventory) ListPeeringConnections(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockNetworkInventory) DeletePeeringConnection(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNetworkInventory) ListVPNConnections(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockNetworkInventory) DeleteVPNConnection(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNetworkInventory) ListVPNGateways(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockNetworkInventory) DetachVPNGateway(ctx context.Context, id, scopeID string) error {
	return m.Called(ctx, id, scopeID).Error(0)
}

func (m *MockNetworkInventory) DeleteVPNGateway(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNetworkInventory) ListAddresses(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockNetworkInventory) ReleaseAddress(ctx context.Context, allocationID string) error {
	return m.Called(ctx, allocationID).Error(0)
}

func (m *MockNetworkInventory) ListInternetGateways(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockNetworkInventory) DetachInternetGateway(ctx context.Context, id, scopeID string) error {
	return m.Called(ctx, id, scopeID).Error(0)
}

func (m *MockNetworkInventory) DeleteInternetGateway(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNetworkInventory) ListNetworkInterfaces(ctx context.Context, scopeID string) ([]domain.NetworkInterface, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NetworkInterface), args.Error(1)
}

func (m *MockNetworkInventory) ListSubnetInterfaces(ctx context.Context, subnetID string) ([]domain.NetworkInterface, error) {
	args := m.Called(ctx, subnetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NetworkInterface), args.Error(1)
}

func (m *MockNetworkInventory) DetachNetworkInterface(ctx context.Context, attachmentID string, force bool) error {
	return m.Called(ctx, attachmentID, force).Error(0)
}

func (m *MockNetworkInventory) DeleteNetworkInterface(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNetworkInventory) ListSubnets(ctx context.Context, scopeID string) ([]domain.Subnet, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subnet), args.Error(1)
}

func (m *MockNetworkInventory) DeleteSubnet(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNetworkInventory) ListRouteTables(ctx context.Context, scopeID string) ([]domain.RouteTable, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RouteTable), args.Error(1)
}

func (m *MockNetworkInventory) DisassociateRouteTable(ctx context.Context, associationID string) error {
	return m.Called(ctx, associationID).Error(0)
}

func (m *MockNetworkInventory) DeleteRoute(ctx context.Context, routeTableID string, dest domain.RouteDestination) error {
	return m.Called(ctx, routeTableID, dest).Error(0)
}

func (m *MockNetworkInventory) DeleteRouteTable(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNetworkInventory) ListSecurityGroups(ctx context.Context, scopeID string) ([]domain.SecurityGroup, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SecurityGroup), args.Error(1)
}

func (m *MockNetworkInventory) RevokeSecurityGroupRules(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNetworkInventory) DeleteSecurityGroup(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNetworkInventory) ListNetworkACLs(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockNetworkInventory) DeleteNetworkACL(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockLoadBalancerInventory struct {
	mock.Mock
}

func (m *MockLoadBalancerInventory) ListLoadBalancers(ctx context.Context, scopeID string) ([]domain.LoadBalancer, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoadBalancer), args.Error(1)
}

func (m *MockLoadBalancerInventory) DeleteLoadBalancer(ctx context.Context, arn string) error {
	return m.Called(ctx, arn).Error(0)
}

func (m *MockLoadBalancerInventory) ListListeners(ctx context.Context, loadBalancerARN string) ([]string, error) {
	args := m.Called(ctx, loadBalancerARN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLoadBalancerInventory) DeleteListener(ctx context.Context, arn string) error {
	return m.Called(ctx, arn).Error(0)
}

func (m *MockLoadBalancerInventory) ListTargetGroups(ctx context.Context) ([]domain.TargetGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TargetGroup), args.Error(1)
}

func (m *MockLoadBalancerInventory) DeleteTargetGroup(ctx context.Context, arn string) error {
	return m.Called(ctx, arn).Error(0)
}

func (m *MockLoadBalancerInventory) ListClassicLoadBalancers(ctx context.Context, scopeID string) ([]string, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLoadBalancerInventory) DeleteClassicLoadBalancer(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type MockDatabaseInventory struct {
	mock.Mock
}

func (m *MockDatabaseInventory) ListSubnetGroups(ctx context.Context, subnetIDs []string) ([]string, error) {
	args := m.Called(ctx, subnetIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDatabaseInventory) DeleteSubnetGroup(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type MockFunctionInventory struct {
	mock.Mock
}

func (m *MockFunctionInventory) ListFunctions(ctx context.Context, subnetIDs []string) ([]string, error) {
	args := m.Called(ctx, subnetIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFunctionInventory) DeleteFunction(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}
