package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/steps-backend/infra/cloudrun"
	"github.com/GregMSThompson/steps-backend/infra/docker"
	"github.com/GregMSThompson/steps-backend/infra/firestore"
	"github.com/GregMSThompson/steps-backend/infra/identity"
	"github.com/GregMSThompson/steps-backend/infra/kms"
	"github.com/GregMSThompson/steps-backend/infra/provider"
	"github.com/GregMSThompson/steps-backend/infra/redis"
	"github.com/GregMSThompson/steps-backend/infra/secret"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable identity service with google sign-in
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// enable firestore and create a database for the project
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		apiSA, err := cloudrun.CreateServiceAccount(ctx, prov)
		if err != nil {
			return err
		}

		// key used to seal google access tokens in the session store
		_, err = kms.SetupKMS(ctx, prov)
		if err != nil {
			return err
		}
		keyID, err := kms.CreateKey(ctx, prov, "steps-tokens", "fit-access-token")
		if err != nil {
			return err
		}
		err = kms.GrantKeyAccess(ctx, prov, keyID, apiSA)
		if err != nil {
			return err
		}

		// memorystore session store, its password kept in secret manager
		rdb, err := redis.SetupRedis(ctx, prov)
		if err != nil {
			return err
		}
		_, err = secret.SetupSecretManager(ctx, prov, apiSA)
		if err != nil {
			return err
		}
		redisSecret, err := secret.AddSecret(ctx, "redisPasswordSecret", "redisPassword", rdb.AuthString)
		if err != nil {
			return err
		}

		svc, err := cloudrun.SetupCloudRun(ctx, prov, apiSA, &cloudrun.ServiceEnv{
			KMSKeyName:          keyID,
			RedisAddr:           rdb.Addr,
			RedisPasswordSecret: redisSecret,
		}, ident, repo)
		if err != nil {
			return err
		}

		ctx.Export("apiUrl", svc.Statuses.Index(pulumi.Int(0)).Url())
		return nil
	})
}
