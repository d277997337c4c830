package firestore

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firebaserules"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) error {
	svc, err := enableFireStore(ctx, prov)
	if err != nil {
		return err
	}

	db, err := createDatabase(ctx, prov, svc)
	if err != nil {
		return err
	}

	return lockClientAccess(ctx, prov, db)
}

func enableFireStore(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service: pulumi.String("firestore.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*firestore.Database, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require(("region"))

	return firestore.NewDatabase(ctx, "firestoreDatabase", &firestore.DatabaseArgs{
		Name:       pulumi.String("(default)"),
		Project:    pulumi.String(projectID),
		LocationId: pulumi.String(region),
		Type:       pulumi.String("FIRESTORE_NATIVE"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

// lockClientAccess denies direct client SDK access; stepGoals is only
// written by the API service account, which bypasses rules.
func lockClientAccess(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) error {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")

	rules, err := firebaserules.NewRuleset(ctx, "firestoreRules", &firebaserules.RulesetArgs{
		Project: pulumi.String(projectID),
		Source: &firebaserules.RulesetSourceArgs{
			Files: firebaserules.RulesetSourceFileArray{
				&firebaserules.RulesetSourceFileArgs{
					Name:    pulumi.String("firestore.rules"),
					Content: pulumi.String(denyAllRules),
				},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
	if err != nil {
		return err
	}

	_, err = firebaserules.NewRelease(ctx, "firestoreRulesRelease", &firebaserules.ReleaseArgs{
		Name:        pulumi.String("cloud.firestore"),
		Project:     pulumi.String(projectID),
		RulesetName: pulumi.Sprintf("projects/%s/rulesets/%s", projectID, rules.Name),
	},
		pulumi.Provider(prov),
	)
	return err
}

const denyAllRules = `rules_version = '2';
service cloud.firestore {
  match /databases/{database}/documents {
    match /{document=**} {
      allow read, write: if false;
    }
  }
}
`
