package lambdainv

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/awserrors"
	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/limiter"
	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
)

type LambdaAPI interface {
	ListFunctions(ctx context.Context, params *lambda.ListFunctionsInput, optFns ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error)
	DeleteFunction(ctx context.Context, params *lambda.DeleteFunctionInput, optFns ...func(*lambda.Options)) (*lambda.DeleteFunctionOutput, error)
}

// Inventory finds functions wired into the scope's subnets. A function with
// interfaces in a subnet blocks that subnet's deletion until removed.
type Inventory struct {
	client  LambdaAPI
	limiter *limiter.Limiter
	logger  ports.Logger
}

var _ ports.FunctionInventory = (*Inventory)(nil)

func New(client LambdaAPI, lim *limiter.Limiter, logger ports.Logger) *Inventory {
	return &Inventory{client: client, limiter: lim, logger: logger}
}

func (i *Inventory) wait(ctx context.Context) error {
	if i.limiter == nil {
		return nil
	}
	return i.limiter.Wait(ctx)
}

func (i *Inventory) ListFunctions(ctx context.Context, subnetIDs []string) ([]string, error) {
	subnetSet := make(map[string]bool, len(subnetIDs))
	for _, id := range subnetIDs {
		subnetSet[id] = true
	}

	paginator := lambda.NewListFunctionsPaginator(i.client, &lambda.ListFunctionsInput{})

	var names []string
	for paginator.HasMorePages() {
		if err := i.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, awserrors.Classify(ctx, err, "function", "all")
		}
		for _, fn := range page.Functions {
			if fn.VpcConfig == nil {
				continue
			}
			for _, subnetID := range fn.VpcConfig.SubnetIds {
				if subnetSet[subnetID] {
					names = append(names, aws.ToString(fn.FunctionName))
					break
				}
			}
		}
	}
	return names, nil
}

func (i *Inventory) DeleteFunction(ctx context.Context, name string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.client.DeleteFunction(ctx, &lambda.DeleteFunctionInput{FunctionName: aws.String(name)})
	return awserrors.Classify(ctx, err, "function", name)
}
