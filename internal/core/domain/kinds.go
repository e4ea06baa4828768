package domain

type ResourceKind string

const (
	KindComputeInstance   ResourceKind = "ComputeInstance"
	KindLoadBalancer      ResourceKind = "LoadBalancer"
	KindListener          ResourceKind = "Listener"
	KindTargetGroup       ResourceKind = "TargetGroup"
	KindNATGateway        ResourceKind = "NATGateway"
	KindInternetGateway   ResourceKind = "InternetGateway"
	KindSubnet            ResourceKind = "Subnet"
	KindRouteTable        ResourceKind = "RouteTable"
	KindSecurityGroup     ResourceKind = "SecurityGroup"
	KindNetworkACL        ResourceKind = "NetworkACL"
	KindEndpoint          ResourceKind = "Endpoint"
	KindEndpointService   ResourceKind = "EndpointService"
	KindNetworkInterface  ResourceKind = "NetworkInterface"
	KindPeeringConnection ResourceKind = "PeeringConnection"
	KindVPNGateway        ResourceKind = "VPNGateway"
	KindVPNConnection     ResourceKind = "VPNConnection"
	KindElasticIP         ResourceKind = "ElasticIP"
	KindFunction          ResourceKind = "Function"
	KindDBSubnetGroup     ResourceKind = "DBSubnetGroup"
	KindScope             ResourceKind = "Scope"
)

func (rk ResourceKind) String() string {
	return string(rk)
}
