package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportSucceededNeedsScopeAndZeroFailures(t *testing.T) {
	report := NewReport("vpc-1", false)
	assert.False(t, report.Succeeded())

	report.ScopeDeleted = true
	assert.True(t, report.Succeeded())

	report.RecordFailure(KindSubnet, "subnet-a", ReasonInUse, "")
	assert.False(t, report.Succeeded())
}

func TestReportCounts(t *testing.T) {
	report := NewReport("vpc-1", false)
	report.RecordDeleted(KindSubnet, "subnet-a")
	report.RecordDeleted(KindSubnet, "subnet-b")
	report.RecordDeleted(KindRouteTable, "rtb-1")
	report.RecordFailure(KindSecurityGroup, "sg-1", ReasonError, "")

	assert.Equal(t, 3, report.DeletedCount())
	assert.Equal(t, 1, report.FailureCount())
	assert.Equal(t, []ResourceKind{KindRouteTable, KindSubnet}, report.DeletedKinds())
	assert.Equal(t, []ResourceKind{KindSecurityGroup}, report.FailureKinds())
}

func TestNetworkInterfaceServiceManaged(t *testing.T) {
	cases := []struct {
		name string
		ni   NetworkInterface
		want bool
	}{
		{"gateway lb interface", NetworkInterface{Type: InterfaceTypeGatewayLB}, true},
		{"gateway lb endpoint", NetworkInterface{Type: InterfaceTypeGatewayLBEndpoint}, true},
		{"nat gateway", NetworkInterface{Type: InterfaceTypeNATGateway}, true},
		{"lambda hyperplane", NetworkInterface{Type: InterfaceTypeLambda, AttachmentID: "eni-attach-1"}, true},
		{"elb attachment", NetworkInterface{Type: "interface", AttachmentID: "ela-attach-1"}, true},
		{"endpoint attachment", NetworkInterface{Type: "interface", AttachmentID: "vpce-attach-1"}, true},
		{"plain interface", NetworkInterface{Type: "interface", AttachmentID: "eni-attach-1"}, false},
		{"detached interface", NetworkInterface{Type: "interface"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ni.ServiceManaged())
		})
	}
}

func TestRouteRemovable(t *testing.T) {
	assert.False(t, Route{Destination: RouteDestination{CIDR: "10.0.0.0/16"}, Origin: "CreateRouteTable", State: "active"}.Removable())
	assert.False(t, Route{Destination: RouteDestination{CIDR: "0.0.0.0/0"}, Origin: "CreateRoute", State: "blackhole"}.Removable())
	assert.False(t, Route{Origin: "CreateRoute", State: "active"}.Removable())
	assert.True(t, Route{Destination: RouteDestination{CIDR: "0.0.0.0/0"}, Origin: "CreateRoute", State: "active"}.Removable())
}
