package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/sales-dashboard/infra/cloudrun"
	"github.com/GregMSThompson/sales-dashboard/infra/docker"
	"github.com/GregMSThompson/sales-dashboard/infra/firestore"
	"github.com/GregMSThompson/sales-dashboard/infra/identity"
	"github.com/GregMSThompson/sales-dashboard/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// session state lives in firestore when the service runs with more than one instance
		db, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		deps := []pulumi.Resource{db, repo}
		if cloudrun.AuthEnabled(ctx) {
			// identity platform backs the firebase id tokens the api verifies
			ident, err := identity.SetupIdentity(ctx, prov)
			if err != nil {
				return err
			}
			deps = append(deps, ident)
		}

		svc, err := cloudrun.SetupCloudRun(ctx, prov, deps...)
		if err != nil {
			return err
		}

		ctx.Export("url", svc.Statuses.Index(pulumi.Int(0)).Url())
		return nil
	})
}
