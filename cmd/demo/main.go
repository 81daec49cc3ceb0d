// Command demo exercises the core negotiation flows against an in-memory
// archive, without starting an HTTP server.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
	"github.com/zeitgate-dev/zeitgate/pkg/cache"
	"github.com/zeitgate-dev/zeitgate/pkg/engine"
	"github.com/zeitgate-dev/zeitgate/pkg/provider"
	"github.com/zeitgate-dev/zeitgate/pkg/provider/static"
)

func main() {
	fmt.Println("=== zeitgate core negotiation demo ===")
	fmt.Println()

	// 1. Build a static archive with three snapshots of one page
	resource := "http://example.org/page"
	archive := static.New(static.Config{
		Name:     "demo-archive",
		Patterns: []string{`http://example\.org/.*`},
		Snapshots: map[string]api.TimeMap{
			resource: {
				api.NewMemento("http://archive.example/2020/page", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
				api.NewMemento("http://archive.example/2020-06/page", time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)),
				api.NewMemento("http://archive.example/2021/page", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)),
			},
		},
	})

	// 2. Assemble registry, cache, and engine
	registry, err := provider.NewRegistry(archive)
	if err != nil {
		fmt.Printf("registry FAILED: %v\n", err)
		return
	}
	eng, err := engine.New(registry, cache.New(cache.DefaultConfig()), engine.Config{
		BaseURL:    "http://localhost:8080",
		GatePrefix: "timegate",
		MapPrefix:  "timemap",
	})
	if err != nil {
		fmt.Printf("engine FAILED: %v\n", err)
		return
	}
	fmt.Println("[1] Engine assembled with 1 static provider")

	ctx := context.Background()

	// 3. Point lookup: closest snapshot to May 2020
	gateRes, err := eng.NegotiateMemento(ctx, &api.GateRequest{
		Resource:       resource,
		AcceptDatetime: "Fri, 01 May 2020 00:00:00 GMT",
	})
	if err != nil {
		fmt.Printf("negotiation FAILED: %v\n", err)
		return
	}
	fmt.Printf("\n[2] Point lookup for 2020-05-01:\n")
	fmt.Printf("    redirect -> %s\n", gateRes.Memento.URI)
	fmt.Printf("    Link: %s\n", api.RedirectLinks(gateRes.Resource, gateRes.TimeMapURL))

	// 4. Timeline listing in link-format
	mapRes, err := eng.ListTimeMap(ctx, &api.MapRequest{Resource: resource})
	if err != nil {
		fmt.Printf("listing FAILED: %v\n", err)
		return
	}
	fmt.Printf("\n[3] Timeline listing (%d mementos):\n", len(mapRes.TimeMap))
	fmt.Print(api.TimeMapBody(mapRes.Resource, mapRes.TimeGateURL, mapRes.SelfURL, eng.DateFormat(), mapRes.TimeMap))

	// 5. Error path: nothing routes an unknown domain
	_, err = eng.NegotiateMemento(ctx, &api.GateRequest{
		Resource:       "http://elsewhere.example/",
		AcceptDatetime: "Fri, 01 May 2020 00:00:00 GMT",
	})
	fmt.Printf("\n[4] Unroutable resource: %v\n", err)
}
