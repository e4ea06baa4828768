package ec2inv

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/awserrors"
	apperrors "github.com/cloudjanitor/vpc-reaper/internal/errors"
)

func TestMapRouteTable(t *testing.T) {
	rt := ec2types.RouteTable{
		RouteTableId: aws.String("rtb-1"),
		Associations: []ec2types.RouteTableAssociation{
			{RouteTableAssociationId: aws.String("rtbassoc-main"), Main: aws.Bool(true)},
			{RouteTableAssociationId: aws.String("rtbassoc-1"), SubnetId: aws.String("subnet-a"), Main: aws.Bool(false)},
		},
		Routes: []ec2types.Route{
			{DestinationCidrBlock: aws.String("10.0.0.0/16"), Origin: ec2types.RouteOriginCreateRouteTable, State: ec2types.RouteStateActive},
			{DestinationCidrBlock: aws.String("0.0.0.0/0"), Origin: ec2types.RouteOriginCreateRoute, State: ec2types.RouteStateActive},
			{DestinationIpv6CidrBlock: aws.String("::/0"), Origin: ec2types.RouteOriginCreateRoute, State: ec2types.RouteStateActive},
		},
	}

	mapped := mapRouteTable(rt)

	assert.Equal(t, "rtb-1", mapped.ID)
	assert.True(t, mapped.Main)
	require.Len(t, mapped.Associations, 2)
	assert.Equal(t, "subnet-a", mapped.Associations[1].SubnetID)

	require.Len(t, mapped.Routes, 3)
	assert.False(t, mapped.Routes[0].Removable())
	assert.True(t, mapped.Routes[1].Removable())
	assert.True(t, mapped.Routes[2].Destination.IPv6)
	assert.Equal(t, "::/0", mapped.Routes[2].Destination.CIDR)
}

func TestUnsuccessfulItemClassification(t *testing.T) {
	err := unsuccessfulToError([]ec2types.UnsuccessfulItem{
		{
			ResourceId: aws.String("vpce-1"),
			Error: &ec2types.UnsuccessfulItemError{
				Code:    aws.String("InvalidVpcEndpointId.NotFound"),
				Message: aws.String("endpoint does not exist"),
			},
		},
	})
	require.Error(t, err)

	classified := awserrors.Classify(context.Background(), err, "VPC endpoint", "vpce-1")
	assert.Equal(t, apperrors.CodeResourceNotFound, apperrors.GetCode(classified))
}

func TestUnsuccessfulEmptyIsNil(t *testing.T) {
	assert.NoError(t, unsuccessfulToError(nil))
}
