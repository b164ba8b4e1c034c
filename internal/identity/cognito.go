// Package identity mirrors profile changes into the Cognito user pool so the
// name on the access token stays in step with the profile.
package identity

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	cognitotypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

type AttributeUpdater interface {
	AdminUpdateUserAttributes(ctx context.Context, params *cognitoidentityprovider.AdminUpdateUserAttributesInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminUpdateUserAttributesOutput, error)
}

type CognitoSync struct {
	client     AttributeUpdater
	userPoolID string
}

func NewCognitoSync(client AttributeUpdater, userPoolID string) *CognitoSync {
	return &CognitoSync{client: client, userPoolID: userPoolID}
}

// SyncName sets the standard "name" attribute of userID. It does nothing when
// no user pool is configured.
func (c *CognitoSync) SyncName(ctx context.Context, userID, fullName string) error {
	if c.userPoolID == "" || c.client == nil {
		return nil
	}

	_, err := c.client.AdminUpdateUserAttributes(ctx, &cognitoidentityprovider.AdminUpdateUserAttributesInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(userID),
		UserAttributes: []cognitotypes.AttributeType{
			{Name: aws.String("name"), Value: aws.String(fullName)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to sync name for user %s: %w", userID, err)
	}

	return nil
}
