package bootstrap

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// ReadSecret returns the latest version of a secret. name is either a full
// resource name (projects/p/secrets/s) or a bare secret id in projectID.
func ReadSecret(ctx context.Context, projectID, name string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	res, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretVersionName(projectID, name),
	})
	if err != nil {
		return "", err
	}
	return string(res.Payload.Data), nil
}

func secretVersionName(projectID, name string) string {
	if strings.HasPrefix(name, "projects/") {
		return fmt.Sprintf("%s/versions/latest", name)
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, name)
}
