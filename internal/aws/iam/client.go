package iam

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsiam "github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/smithy-go"
)

type IAMAPI interface {
	ListUsers(ctx context.Context, params *awsiam.ListUsersInput, optFns ...func(*awsiam.Options)) (*awsiam.ListUsersOutput, error)
	ListRoles(ctx context.Context, params *awsiam.ListRolesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListRolesOutput, error)
	ListPolicies(ctx context.Context, params *awsiam.ListPoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListPoliciesOutput, error)
	GetUser(ctx context.Context, params *awsiam.GetUserInput, optFns ...func(*awsiam.Options)) (*awsiam.GetUserOutput, error)
	GetRole(ctx context.Context, params *awsiam.GetRoleInput, optFns ...func(*awsiam.Options)) (*awsiam.GetRoleOutput, error)
	ListAttachedUserPolicies(ctx context.Context, params *awsiam.ListAttachedUserPoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListAttachedUserPoliciesOutput, error)
	ListUserPolicies(ctx context.Context, params *awsiam.ListUserPoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListUserPoliciesOutput, error)
	ListGroupsForUser(ctx context.Context, params *awsiam.ListGroupsForUserInput, optFns ...func(*awsiam.Options)) (*awsiam.ListGroupsForUserOutput, error)
	ListAttachedGroupPolicies(ctx context.Context, params *awsiam.ListAttachedGroupPoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListAttachedGroupPoliciesOutput, error)
	ListGroupPolicies(ctx context.Context, params *awsiam.ListGroupPoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListGroupPoliciesOutput, error)
	ListAttachedRolePolicies(ctx context.Context, params *awsiam.ListAttachedRolePoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListAttachedRolePoliciesOutput, error)
	ListRolePolicies(ctx context.Context, params *awsiam.ListRolePoliciesInput, optFns ...func(*awsiam.Options)) (*awsiam.ListRolePoliciesOutput, error)
}

type Client struct {
	api IAMAPI
}

func NewClient(api IAMAPI) *Client {
	return &Client{api: api}
}

// IsNotFound reports whether err is the IAM NoSuchEntity API error.
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchEntity"
}

func (c *Client) ListUsers(ctx context.Context) ([]IAMUser, error) {
	var users []IAMUser
	var marker *string

	for {
		out, err := c.api.ListUsers(ctx, &awsiam.ListUsersInput{
			Marker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}

		for _, u := range out.Users {
			users = append(users, userFromSDK(u))
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return users, nil
}

func (c *Client) ListRoles(ctx context.Context) ([]IAMRole, error) {
	var roles []IAMRole
	var marker *string

	for {
		out, err := c.api.ListRoles(ctx, &awsiam.ListRolesInput{
			Marker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListRoles: %w", err)
		}

		for _, r := range out.Roles {
			roles = append(roles, roleFromSDK(r))
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return roles, nil
}

// ListPolicies enumerates customer-managed policies only. AWS-managed
// policies would add hundreds of nodes with no account-specific
// relationships.
func (c *Client) ListPolicies(ctx context.Context) ([]IAMPolicy, error) {
	var policies []IAMPolicy
	var marker *string

	for {
		out, err := c.api.ListPolicies(ctx, &awsiam.ListPoliciesInput{
			Scope:  iamtypes.PolicyScopeTypeLocal,
			Marker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListPolicies: %w", err)
		}

		for _, p := range out.Policies {
			policies = append(policies, policyFromSDK(p))
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return policies, nil
}

func (c *Client) GetUser(ctx context.Context, userName string) (IAMUser, error) {
	out, err := c.api.GetUser(ctx, &awsiam.GetUserInput{
		UserName: aws.String(userName),
	})
	if err != nil {
		return IAMUser{}, fmt.Errorf("GetUser(%s): %w", userName, err)
	}
	return userFromSDK(*out.User), nil
}

func (c *Client) GetRole(ctx context.Context, roleName string) (IAMRole, error) {
	out, err := c.api.GetRole(ctx, &awsiam.GetRoleInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		return IAMRole{}, fmt.Errorf("GetRole(%s): %w", roleName, err)
	}
	return roleFromSDK(*out.Role), nil
}

func (c *Client) ListAttachedUserPolicies(ctx context.Context, userName string) ([]IAMAttachedPolicy, error) {
	var policies []IAMAttachedPolicy
	var marker *string

	for {
		out, err := c.api.ListAttachedUserPolicies(ctx, &awsiam.ListAttachedUserPoliciesInput{
			UserName: aws.String(userName),
			Marker:   marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListAttachedUserPolicies(%s): %w", userName, err)
		}

		for _, p := range out.AttachedPolicies {
			policies = append(policies, IAMAttachedPolicy{
				Name: aws.ToString(p.PolicyName),
				ARN:  aws.ToString(p.PolicyArn),
			})
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return policies, nil
}

// ListUserPolicyNames returns the names of the inline policies embedded in
// the user.
func (c *Client) ListUserPolicyNames(ctx context.Context, userName string) ([]string, error) {
	var names []string
	var marker *string

	for {
		out, err := c.api.ListUserPolicies(ctx, &awsiam.ListUserPoliciesInput{
			UserName: aws.String(userName),
			Marker:   marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListUserPolicies(%s): %w", userName, err)
		}

		names = append(names, out.PolicyNames...)

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return names, nil
}

func (c *Client) ListGroupsForUser(ctx context.Context, userName string) ([]IAMGroup, error) {
	var groups []IAMGroup
	var marker *string

	for {
		out, err := c.api.ListGroupsForUser(ctx, &awsiam.ListGroupsForUserInput{
			UserName: aws.String(userName),
			Marker:   marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListGroupsForUser(%s): %w", userName, err)
		}

		for _, g := range out.Groups {
			groups = append(groups, IAMGroup{
				Name: aws.ToString(g.GroupName),
				ARN:  aws.ToString(g.Arn),
			})
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return groups, nil
}

func (c *Client) ListAttachedGroupPolicies(ctx context.Context, groupName string) ([]IAMAttachedPolicy, error) {
	var policies []IAMAttachedPolicy
	var marker *string

	for {
		out, err := c.api.ListAttachedGroupPolicies(ctx, &awsiam.ListAttachedGroupPoliciesInput{
			GroupName: aws.String(groupName),
			Marker:    marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListAttachedGroupPolicies(%s): %w", groupName, err)
		}

		for _, p := range out.AttachedPolicies {
			policies = append(policies, IAMAttachedPolicy{
				Name: aws.ToString(p.PolicyName),
				ARN:  aws.ToString(p.PolicyArn),
			})
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return policies, nil
}

// ListGroupPolicyNames returns the names of the inline policies embedded in
// the group.
func (c *Client) ListGroupPolicyNames(ctx context.Context, groupName string) ([]string, error) {
	var names []string
	var marker *string

	for {
		out, err := c.api.ListGroupPolicies(ctx, &awsiam.ListGroupPoliciesInput{
			GroupName: aws.String(groupName),
			Marker:    marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListGroupPolicies(%s): %w", groupName, err)
		}

		names = append(names, out.PolicyNames...)

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return names, nil
}

func (c *Client) ListAttachedRolePolicies(ctx context.Context, roleName string) ([]IAMAttachedPolicy, error) {
	var policies []IAMAttachedPolicy
	var marker *string

	for {
		out, err := c.api.ListAttachedRolePolicies(ctx, &awsiam.ListAttachedRolePoliciesInput{
			RoleName: aws.String(roleName),
			Marker:   marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListAttachedRolePolicies(%s): %w", roleName, err)
		}

		for _, p := range out.AttachedPolicies {
			policies = append(policies, IAMAttachedPolicy{
				Name: aws.ToString(p.PolicyName),
				ARN:  aws.ToString(p.PolicyArn),
			})
		}

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return policies, nil
}

// ListRolePolicyNames returns the names of the inline policies embedded in
// the role.
func (c *Client) ListRolePolicyNames(ctx context.Context, roleName string) ([]string, error) {
	var names []string
	var marker *string

	for {
		out, err := c.api.ListRolePolicies(ctx, &awsiam.ListRolePoliciesInput{
			RoleName: aws.String(roleName),
			Marker:   marker,
		})
		if err != nil {
			return nil, fmt.Errorf("ListRolePolicies(%s): %w", roleName, err)
		}

		names = append(names, out.PolicyNames...)

		if !out.IsTruncated {
			break
		}
		marker = out.Marker
	}

	return names, nil
}

func userFromSDK(u iamtypes.User) IAMUser {
	var createdAt time.Time
	if u.CreateDate != nil {
		createdAt = *u.CreateDate
	}
	return IAMUser{
		Name:      aws.ToString(u.UserName),
		UserID:    aws.ToString(u.UserId),
		ARN:       aws.ToString(u.Arn),
		Path:      aws.ToString(u.Path),
		CreatedAt: createdAt,
	}
}

func roleFromSDK(r iamtypes.Role) IAMRole {
	var createdAt time.Time
	if r.CreateDate != nil {
		createdAt = *r.CreateDate
	}
	return IAMRole{
		Name:        aws.ToString(r.RoleName),
		RoleID:      aws.ToString(r.RoleId),
		ARN:         aws.ToString(r.Arn),
		Path:        aws.ToString(r.Path),
		Description: aws.ToString(r.Description),
		CreatedAt:   createdAt,
	}
}

func policyFromSDK(p iamtypes.Policy) IAMPolicy {
	var createdAt, updatedAt time.Time
	if p.CreateDate != nil {
		createdAt = *p.CreateDate
	}
	if p.UpdateDate != nil {
		updatedAt = *p.UpdateDate
	}

	var attachmentCount int
	if p.AttachmentCount != nil {
		attachmentCount = int(*p.AttachmentCount)
	}

	return IAMPolicy{
		Name:             aws.ToString(p.PolicyName),
		PolicyID:         aws.ToString(p.PolicyId),
		ARN:              aws.ToString(p.Arn),
		Path:             aws.ToString(p.Path),
		AttachmentCount:  attachmentCount,
		DefaultVersionID: aws.ToString(p.DefaultVersionId),
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}
