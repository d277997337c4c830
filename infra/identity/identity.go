package identity

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/identityplatform"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

func SetupIdentity(ctx *pulumi.Context, prov *gcp.Provider) (*identityplatform.Config, error) {
	// Enables Identity Platform on the project (firebase)
	cfg, err := identityplatform.NewConfig(ctx,
		"identityPlatformConfig",
		&identityplatform.ConfigArgs{
			SignIn: &identityplatform.ConfigSignInArgs{
				Email: &identityplatform.ConfigSignInEmailArgs{
					Enabled: pulumi.Bool(false),
				},
			},
		},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	if err := enableGoogleSignIn(ctx, prov, cfg); err != nil {
		return nil, err
	}
	if _, err := enableFitnessAPI(ctx, prov); err != nil {
		return nil, err
	}
	return cfg, nil
}

// enableFitnessAPI allows the OAuth client to request the fitness scopes.
func enableFitnessAPI(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "fitnessService", &projects.ServiceArgs{
		Service: pulumi.String("fitness.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

// enableGoogleSignIn is the only sign-in method: the dashboard needs the
// Google access token with the fitness.activity.read scope.
func enableGoogleSignIn(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) error {
	idCfg := config.New(ctx, "identity")

	_, err := identityplatform.NewDefaultSupportedIdpConfig(ctx, "googleSignIn", &identityplatform.DefaultSupportedIdpConfigArgs{
		IdpId:        pulumi.String("google.com"),
		ClientId:     idCfg.RequireSecret("googleClientId"),
		ClientSecret: idCfg.RequireSecret("googleClientSecret"),
		Enabled:      pulumi.Bool(true),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
	return err
}
