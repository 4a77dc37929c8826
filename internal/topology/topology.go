// Package topology describes the URL shortener's deployment architecture.
//
// [Architecture] builds the fixed diagram: a load balancer in front of three
// app servers, three click-tracking queue workers, Postgres and Redis. Only
// app-2 and click-tracker-2 are wired up; the other instances are drawn to
// show the replica count and carry no edges.
package topology

import (
	"context"

	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/render/nodelink"
)

// Output settings of the architecture drawing.
const (
	Title    = ""
	Filename = "./assets/architecture"
	Splines  = "spline"
)

// Cluster names.
const (
	ClusterApps    = "App Servers"
	ClusterWorkers = "Queue workers"
)

// Edge labels.
const (
	LabelReadWrite  = "Read/Write URLs"
	LabelQueueClick = "Queue click for storage"
)

// Architecture returns the architecture diagram. Options are applied after
// the defaults, so callers can redirect the output or change the layout.
func Architecture(opts ...diagram.Option) (*diagram.Diagram, error) {
	opts = append([]diagram.Option{
		diagram.WithFilename(Filename),
		diagram.WithGraphAttr("splines", Splines),
	}, opts...)
	b := diagram.New(Title, opts...)

	lb := b.Node(diagram.CategoryLoadBalancer, "LoadBalancer")

	apps := b.Cluster(ClusterApps)
	apps.Node(diagram.CategoryCompute, "app-3")
	app2 := apps.Node(diagram.CategoryCompute, "app-2")
	apps.Node(diagram.CategoryCompute, "app-1")

	workers := b.Cluster(ClusterWorkers)
	workers.Node(diagram.CategoryCompute, "click-tracker-3")
	click2 := workers.Node(diagram.CategoryCompute, "click-tracker-2")
	workers.Node(diagram.CategoryCompute, "click-tracker-1")

	db := b.Node(diagram.CategoryDatabase, "Postgres")
	redis := b.Node(diagram.CategoryInMemory, "Redis")

	b.Connect(lb, app2, "")
	b.Connect(app2, db, LabelReadWrite)
	b.Connect(app2, redis, LabelQueueClick)
	b.Connect(redis, click2, "")
	b.Connect(click2, db, "")

	return b.Build()
}

// Render builds the architecture diagram and writes it with the given
// options. It returns the path of the written file.
func Render(ctx context.Context, opts nodelink.Options, diagramOpts ...diagram.Option) (string, error) {
	d, err := Architecture(diagramOpts...)
	if err != nil {
		return "", err
	}
	return nodelink.WriteFile(ctx, d, opts)
}
