// Package sitesearch provides an embedded Go client for the sitesearch
// record index backed by Redis or Valkey.
//
// The client talks to the store directly, so search, suggestions and record
// management work without running the HTTP API server:
//
//	client, _ := sitesearch.New(ctx, sitesearch.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	_, _ = client.Records().Upsert(ctx, "dashboard", sitesearch.Record{
//	    Title:    "Dashboard",
//	    Category: "page",
//	    URL:      "/dashboard",
//	})
//
//	res, _ := client.Search(ctx, "dashbord", sitesearch.WithLimit(5))
//	sugs, _ := client.Suggest(ctx, "da")
package sitesearch
