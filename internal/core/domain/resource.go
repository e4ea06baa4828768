package domain

import "strings"

// Resource is the minimal description of a provider resource as discovered
// at phase start. State is whatever the provider last reported; local
// bookkeeping never overrides it.
type Resource struct {
	Kind    ResourceKind
	ID      string
	Name    string
	ScopeID string
	State   string
}

// ScopeDetails describes the target network scope (the VPC) being torn down.
type ScopeDetails struct {
	ID        string
	CIDR      string
	State     string
	IsDefault bool
}

type LoadBalancerType string

const (
	LoadBalancerApplication LoadBalancerType = "application"
	LoadBalancerNetwork     LoadBalancerType = "network"
	LoadBalancerGateway     LoadBalancerType = "gateway"
	LoadBalancerClassic     LoadBalancerType = "classic"
)

type LoadBalancer struct {
	ARN     string
	Name    string
	Type    LoadBalancerType
	ScopeID string
}

type TargetGroup struct {
	ARN              string
	Name             string
	LoadBalancerARNs []string
}

type Endpoint struct {
	ID          string
	ServiceName string
	Type        string
	State       string
}

type EndpointService struct {
	ID               string
	Name             string
	LoadBalancerARNs []string
}

type EndpointConnection struct {
	EndpointID string
	State      string
}

// Network interface attachment prefixes the provider uses for interfaces it
// manages itself; those must never be detached or deleted directly.
const (
	AttachmentPrefixELB      = "ela-attach"
	AttachmentPrefixEndpoint = "vpce-attach"
)

const (
	InterfaceTypeGatewayLB         = "gateway_load_balancer"
	InterfaceTypeGatewayLBEndpoint = "gateway_load_balancer_endpoint"
	InterfaceTypeNATGateway        = "nat_gateway"
	InterfaceTypeEndpoint          = "vpc_endpoint"
	InterfaceTypeLoadBalancer      = "load_balancer"
	InterfaceTypeLambda            = "lambda"
)

type NetworkInterface struct {
	ID           string
	Type         string
	Status       string
	Description  string
	AttachmentID string
	InstanceID   string
	SubnetID     string
}

// ServiceManaged reports whether the interface lifecycle belongs to another
// provider service, in which case deleting the owning resource is the only
// way to remove it.
func (ni NetworkInterface) ServiceManaged() bool {
	switch ni.Type {
	case InterfaceTypeGatewayLB, InterfaceTypeGatewayLBEndpoint,
		InterfaceTypeNATGateway, InterfaceTypeEndpoint, InterfaceTypeLoadBalancer,
		InterfaceTypeLambda:
		return true
	}
	if strings.HasPrefix(ni.AttachmentID, AttachmentPrefixELB) ||
		strings.HasPrefix(ni.AttachmentID, AttachmentPrefixEndpoint) {
		return true
	}
	return false
}

type Subnet struct {
	ID               string
	CIDR             string
	AvailabilityZone string
}

type RouteTableAssociation struct {
	ID       string
	SubnetID string
	Main     bool
}

type RouteDestination struct {
	CIDR string
	IPv6 bool
}

type Route struct {
	Destination RouteDestination
	Origin      string
	State       string
}

// Removable reports whether the route was added after table creation and can
// therefore be deleted (local routes and blackholes are left alone).
func (r Route) Removable() bool {
	return r.Origin != "CreateRouteTable" && r.State != "blackhole" && r.Destination.CIDR != ""
}

type RouteTable struct {
	ID           string
	Main         bool
	Associations []RouteTableAssociation
	Routes       []Route
}

type SecurityGroup struct {
	ID         string
	Name       string
	HasIngress bool
	HasEgress  bool
}

// IsDefault reports whether this is the scope's default group, which the
// provider refuses to delete.
func (sg SecurityGroup) IsDefault() bool {
	return sg.Name == "default"
}
