package rdsinv

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/awserrors"
	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/limiter"
	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
)

type RDSAPI interface {
	DescribeDBSubnetGroups(ctx context.Context, params *rds.DescribeDBSubnetGroupsInput, optFns ...func(*rds.Options)) (*rds.DescribeDBSubnetGroupsOutput, error)
	DeleteDBSubnetGroup(ctx context.Context, params *rds.DeleteDBSubnetGroupInput, optFns ...func(*rds.Options)) (*rds.DeleteDBSubnetGroupOutput, error)
}

// Inventory finds database subnet groups that reference the scope's subnets.
type Inventory struct {
	client  RDSAPI
	limiter *limiter.Limiter
	logger  ports.Logger
}

var _ ports.DatabaseInventory = (*Inventory)(nil)

func New(client RDSAPI, lim *limiter.Limiter, logger ports.Logger) *Inventory {
	return &Inventory{client: client, limiter: lim, logger: logger}
}

func (i *Inventory) wait(ctx context.Context) error {
	if i.limiter == nil {
		return nil
	}
	return i.limiter.Wait(ctx)
}

func (i *Inventory) ListSubnetGroups(ctx context.Context, subnetIDs []string) ([]string, error) {
	subnetSet := make(map[string]bool, len(subnetIDs))
	for _, id := range subnetIDs {
		subnetSet[id] = true
	}

	paginator := rds.NewDescribeDBSubnetGroupsPaginator(i.client, &rds.DescribeDBSubnetGroupsInput{})

	var names []string
	for paginator.HasMorePages() {
		if err := i.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, awserrors.Classify(ctx, err, "DB subnet group", "all")
		}
		for _, group := range page.DBSubnetGroups {
			for _, subnet := range group.Subnets {
				if subnetSet[aws.ToString(subnet.SubnetIdentifier)] {
					names = append(names, aws.ToString(group.DBSubnetGroupName))
					break
				}
			}
		}
	}
	return names, nil
}

func (i *Inventory) DeleteSubnetGroup(ctx context.Context, name string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteDBSubnetGroup(ctx, &rds.DeleteDBSubnetGroupInput{DBSubnetGroupName: aws.String(name)})
	return awserrors.Classify(ctx, err, "DB subnet group", name)
}
