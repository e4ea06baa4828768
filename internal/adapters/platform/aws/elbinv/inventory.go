package elbinv

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/awserrors"
	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/limiter"
	"github.com/cloudjanitor/vpc-reaper/internal/core/domain"
	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
)

type ELBV2API interface {
	DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancingv2.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeLoadBalancersOutput, error)
	DeleteLoadBalancer(ctx context.Context, params *elasticloadbalancingv2.DeleteLoadBalancerInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DeleteLoadBalancerOutput, error)
	DescribeListeners(ctx context.Context, params *elasticloadbalancingv2.DescribeListenersInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeListenersOutput, error)
	DeleteListener(ctx context.Context, params *elasticloadbalancingv2.DeleteListenerInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DeleteListenerOutput, error)
	DescribeTargetGroups(ctx context.Context, params *elasticloadbalancingv2.DescribeTargetGroupsInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeTargetGroupsOutput, error)
	DeleteTargetGroup(ctx context.Context, params *elasticloadbalancingv2.DeleteTargetGroupInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DeleteTargetGroupOutput, error)
}

type ELBAPI interface {
	DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancing.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancing.Options)) (*elasticloadbalancing.DescribeLoadBalancersOutput, error)
	DeleteLoadBalancer(ctx context.Context, params *elasticloadbalancing.DeleteLoadBalancerInput, optFns ...func(*elasticloadbalancing.Options)) (*elasticloadbalancing.DeleteLoadBalancerOutput, error)
}

// Inventory implements the load balancer port across both API generations.
type Inventory struct {
	v2      ELBV2API
	classic ELBAPI
	limiter *limiter.Limiter
	logger  ports.Logger
}

var _ ports.LoadBalancerInventory = (*Inventory)(nil)

func New(v2 ELBV2API, classic ELBAPI, lim *limiter.Limiter, logger ports.Logger) *Inventory {
	return &Inventory{v2: v2, classic: classic, limiter: lim, logger: logger}
}

func (i *Inventory) wait(ctx context.Context) error {
	if i.limiter == nil {
		return nil
	}
	return i.limiter.Wait(ctx)
}

// ListLoadBalancers returns the v2-generation balancers in the scope. The
// describe call has no VPC filter, so filtering happens client-side.
func (i *Inventory) ListLoadBalancers(ctx context.Context, scopeID string) ([]domain.LoadBalancer, error) {
	paginator := elasticloadbalancingv2.NewDescribeLoadBalancersPaginator(i.v2, &elasticloadbalancingv2.DescribeLoadBalancersInput{})

	var balancers []domain.LoadBalancer
	for paginator.HasMorePages() {
		if err := i.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, awserrors.Classify(ctx, err, "load balancer", scopeID)
		}
		for _, lb := range page.LoadBalancers {
			if aws.ToString(lb.VpcId) != scopeID {
				continue
			}
			balancers = append(balancers, domain.LoadBalancer{
				ARN:     aws.ToString(lb.LoadBalancerArn),
				Name:    aws.ToString(lb.LoadBalancerName),
				Type:    domain.LoadBalancerType(lb.Type),
				ScopeID: scopeID,
			})
		}
	}
	return balancers, nil
}

func (i *Inventory) DeleteLoadBalancer(ctx context.Context, arn string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.v2.DeleteLoadBalancer(ctx, &elasticloadbalancingv2.DeleteLoadBalancerInput{
		LoadBalancerArn: aws.String(arn),
	})
	return awserrors.Classify(ctx, err, "load balancer", arn)
}

func (i *Inventory) ListListeners(ctx context.Context, loadBalancerARN string) ([]string, error) {
	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	out, err := i.v2.DescribeListeners(ctx, &elasticloadbalancingv2.DescribeListenersInput{
		LoadBalancerArn: aws.String(loadBalancerARN),
	})
	if err != nil {
		return nil, awserrors.Classify(ctx, err, "listener", loadBalancerARN)
	}
	arns := make([]string, 0, len(out.Listeners))
	for _, listener := range out.Listeners {
		arns = append(arns, aws.ToString(listener.ListenerArn))
	}
	return arns, nil
}

func (i *Inventory) DeleteListener(ctx context.Context, arn string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.v2.DeleteListener(ctx, &elasticloadbalancingv2.DeleteListenerInput{ListenerArn: aws.String(arn)})
	return awserrors.Classify(ctx, err, "listener", arn)
}

func (i *Inventory) ListTargetGroups(ctx context.Context) ([]domain.TargetGroup, error) {
	paginator := elasticloadbalancingv2.NewDescribeTargetGroupsPaginator(i.v2, &elasticloadbalancingv2.DescribeTargetGroupsInput{})

	var groups []domain.TargetGroup
	for paginator.HasMorePages() {
		if err := i.wait(ctx); err != nil {
			return nil, err
		}
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, awserrors.Classify(ctx, err, "target group", "all")
		}
		for _, tg := range page.TargetGroups {
			groups = append(groups, domain.TargetGroup{
				ARN:              aws.ToString(tg.TargetGroupArn),
				Name:             aws.ToString(tg.TargetGroupName),
				LoadBalancerARNs: tg.LoadBalancerArns,
			})
		}
	}
	return groups, nil
}

func (i *Inventory) DeleteTargetGroup(ctx context.Context, arn string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.v2.DeleteTargetGroup(ctx, &elasticloadbalancingv2.DeleteTargetGroupInput{TargetGroupArn: aws.String(arn)})
	return awserrors.Classify(ctx, err, "target group", arn)
}

func (i *Inventory) ListClassicLoadBalancers(ctx context.Context, scopeID string) ([]string, error) {
	if err := i.wait(ctx); err != nil {
		return nil, err
	}
	out, err := i.classic.DescribeLoadBalancers(ctx, &elasticloadbalancing.DescribeLoadBalancersInput{})
	if err != nil {
		return nil, awserrors.Classify(ctx, err, "classic load balancer", scopeID)
	}
	var names []string
	for _, lb := range out.LoadBalancerDescriptions {
		if aws.ToString(lb.VPCId) != scopeID {
			continue
		}
		names = append(names, aws.ToString(lb.LoadBalancerName))
	}
	return names, nil
}

func (i *Inventory) DeleteClassicLoadBalancer(ctx context.Context, name string) error {
	if err := i.wait(ctx); err != nil {
		return err
	}
	_, err := i.classic.DeleteLoadBalancer(ctx, &elasticloadbalancing.DeleteLoadBalancerInput{
		LoadBalancerName: aws.String(name),
	})
	return awserrors.Classify(ctx, err, "classic load balancer", name)
}
