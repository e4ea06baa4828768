package ec2inv

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/awserrors"
	"github.com/cloudjanitor/vpc-reaper/internal/core/domain"
)

func (i *Inventory) ListSubnets(ctx context.Context, scopeID string) ([]domain.Subnet, error) {
	input := &ec2.DescribeSubnetsInput{Filters: vpcFilter(scopeID)}
	paginator := ec2.NewDescribeSubnetsPaginator(i.client, input)

	var subnets []domain.Subnet
	for paginator.HasMorePages() {
		if err := i.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, awserrors.Classify(ctx, err, "subnet", scopeID)
		}
		for _, sn := range page.Subnets {
			subnets = append(subnets, domain.Subnet{
				ID:               aws.ToString(sn.SubnetId),
				CIDR:             aws.ToString(sn.CidrBlock),
				AvailabilityZone: aws.ToString(sn.AvailabilityZone),
			})
		}
	}
	return subnets, nil
}

func (i *Inventory) DeleteSubnet(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteSubnet(ctx, &ec2.DeleteSubnetInput{SubnetId: aws.String(id)})
	return awserrors.Classify(ctx, err, "subnet", id)
}

func (i *Inventory) ListRouteTables(ctx context.Context, scopeID string) ([]domain.RouteTable, error) {
	input := &ec2.DescribeRouteTablesInput{Filters: vpcFilter(scopeID)}
	paginator := ec2.NewDescribeRouteTablesPaginator(i.client, input)

	var tables []domain.RouteTable
	for paginator.HasMorePages() {
		if err := i.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, awserrors.Classify(ctx, err, "route table", scopeID)
		}
		for _, rt := range page.RouteTables {
			tables = append(tables, mapRouteTable(rt))
		}
	}
	return tables, nil
}

func mapRouteTable(rt ec2types.RouteTable) domain.RouteTable {
	mapped := domain.RouteTable{ID: aws.ToString(rt.RouteTableId)}
	for _, assoc := range rt.Associations {
		main := aws.ToBool(assoc.Main)
		if main {
			mapped.Main = true
		}
		mapped.Associations = append(mapped.Associations, domain.RouteTableAssociation{
			ID:       aws.ToString(assoc.RouteTableAssociationId),
			SubnetID: aws.ToString(assoc.SubnetId),
			Main:     main,
		})
	}
	for _, route := range rt.Routes {
		dest := domain.RouteDestination{}
		switch {
		case route.DestinationCidrBlock != nil:
			dest.CIDR = *route.DestinationCidrBlock
		case route.DestinationIpv6CidrBlock != nil:
			dest.CIDR = *route.DestinationIpv6CidrBlock
			dest.IPv6 = true
		}
		mapped.Routes = append(mapped.Routes, domain.Route{
			Destination: dest,
			Origin:      string(route.Origin),
			State:       string(route.State),
		})
	}
	return mapped
}

func (i *Inventory) DisassociateRouteTable(ctx context.Context, associationID string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DisassociateRouteTable(ctx, &ec2.DisassociateRouteTableInput{
		AssociationId: aws.String(associationID),
	})
	return awserrors.Classify(ctx, err, "route table association", associationID)
}

func (i *Inventory) DeleteRoute(ctx context.Context, routeTableID string, dest domain.RouteDestination) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	input := &ec2.DeleteRouteInput{RouteTableId: aws.String(routeTableID)}
	if dest.IPv6 {
		input.DestinationIpv6CidrBlock = aws.String(dest.CIDR)
	} else {
		input.DestinationCidrBlock = aws.String(dest.CIDR)
	}
	_, err := i.client.DeleteRoute(ctx, input)
	return awserrors.Classify(ctx, err, "route", dest.CIDR)
}

func (i *Inventory) DeleteRouteTable(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteRouteTable(ctx, &ec2.DeleteRouteTableInput{RouteTableId: aws.String(id)})
	return awserrors.Classify(ctx, err, "route table", id)
}

func (i *Inventory) ListSecurityGroups(ctx context.Context, scopeID string) ([]domain.SecurityGroup, error) {
	input := &ec2.DescribeSecurityGroupsInput{Filters: vpcFilter(scopeID)}
	paginator := ec2.NewDescribeSecurityGroupsPaginator(i.client, input)

	var groups []domain.SecurityGroup
	for paginator.HasMorePages() {
		if err := i.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, awserrors.Classify(ctx, err, "security group", scopeID)
		}
		for _, sg := range page.SecurityGroups {
			groups = append(groups, domain.SecurityGroup{
				ID:         aws.ToString(sg.GroupId),
				Name:       aws.ToString(sg.GroupName),
				HasIngress: len(sg.IpPermissions) > 0,
				HasEgress:  len(sg.IpPermissionsEgress) > 0,
			})
		}
	}
	return groups, nil
}

// RevokeSecurityGroupRules strips every ingress and egress rule from a
// group. Cross-references between groups block deletion until both sides
// are rule-free.
func (i *Inventory) RevokeSecurityGroupRules(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	out, err := i.client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{GroupIds: []string{id}})
	if err != nil {
		return awserrors.Classify(ctx, err, "security group", id)
	}
	if len(out.SecurityGroups) == 0 {
		return nil
	}
	sg := out.SecurityGroups[0]

	if len(sg.IpPermissions) > 0 {
		if err := i.wait(ctx); err != nil {
			return err
		}
		_, err := i.client.RevokeSecurityGroupIngress(ctx, &ec2.RevokeSecurityGroupIngressInput{
			GroupId:       aws.String(id),
			IpPermissions: sg.IpPermissions,
		})
		if err != nil {
			return awserrors.Classify(ctx, err, "security group", id)
		}
	}
	if len(sg.IpPermissionsEgress) > 0 {
		if err := i.wait(ctx); err != nil {
			return err
		}
		_, err := i.client.RevokeSecurityGroupEgress(ctx, &ec2.RevokeSecurityGroupEgressInput{
			GroupId:       aws.String(id),
			IpPermissions: sg.IpPermissionsEgress,
		})
		if err != nil {
			return awserrors.Classify(ctx, err, "security group", id)
		}
	}
	return nil
}

func (i *Inventory) DeleteSecurityGroup(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{GroupId: aws.String(id)})
	return awserrors.Classify(ctx, err, "security group", id)
}

// ListNetworkACLs returns only non-default ACLs: the default one is deleted
// by the provider together with the VPC.
func (i *Inventory) ListNetworkACLs(ctx context.Context, scopeID string) ([]domain.Resource, error) {
	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	out, err := i.client.DescribeNetworkAcls(ctx, &ec2.DescribeNetworkAclsInput{Filters: vpcFilter(scopeID)})
	if err != nil {
		return nil, awserrors.Classify(ctx, err, "network ACL", scopeID)
	}
	var acls []domain.Resource
	for _, acl := range out.NetworkAcls {
		if aws.ToBool(acl.IsDefault) {
			continue
		}
		acls = append(acls, domain.Resource{
			Kind:    domain.KindNetworkACL,
			ID:      aws.ToString(acl.NetworkAclId),
			ScopeID: scopeID,
		})
	}
	return acls, nil
}

func (i *Inventory) DeleteNetworkACL(ctx context.Context, id string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteNetworkAcl(ctx, &ec2.DeleteNetworkAclInput{NetworkAclId: aws.String(id)})
	return awserrors.Classify(ctx, err, "network ACL", id)
}
