package redis

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/redis"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// Instance holds what the API needs to reach the session store.
type Instance struct {
	Addr       pulumi.StringOutput
	AuthString pulumi.StringOutput
}

func SetupRedis(ctx *pulumi.Context, prov *gcp.Provider) (*Instance, error) {
	svc, err := enableRedis(ctx, prov)
	if err != nil {
		return nil, err
	}

	inst, err := createInstance(ctx, prov, svc)
	if err != nil {
		return nil, err
	}

	return &Instance{
		Addr:       pulumi.Sprintf("%s:%d", inst.Host, inst.Port),
		AuthString: inst.AuthString,
	}, nil
}

func enableRedis(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "redisService", &projects.ServiceArgs{
		Service: pulumi.String("redis.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createInstance(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*redis.Instance, error) {
	gcpCfg := config.New(ctx, "gcp")
	redisCfg := config.New(ctx, "redis")
	region := gcpCfg.Require("region")
	memory := redisCfg.GetInt("memorySizeGb")
	if memory == 0 {
		memory = 1
	}

	// sessions are disposable, so the basic tier without replicas is enough
	return redis.NewInstance(ctx, "sessionStore", &redis.InstanceArgs{
		Name:              pulumi.String("fit-sessions"),
		Tier:              pulumi.String("BASIC"),
		MemorySizeGb:      pulumi.Int(memory),
		Region:            pulumi.String(region),
		RedisVersion:      pulumi.String("REDIS_7_0"),
		AuthEnabled:       pulumi.Bool(true),
		AuthorizedNetwork: pulumi.String("default"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}
