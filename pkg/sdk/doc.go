// Package livesearch is a Go client for storefront product search.
//
// It shapes catalog service requests (default visibility and stock filters,
// tenant routing headers, lifecycle events) and resolves product images onto
// the CDN with responsive source sets.
//
// # Search
//
//	client, _ := livesearch.New(ctx,
//	    livesearch.WithEnvironment("env-id", livesearch.EnvironmentProduction),
//	    livesearch.WithStoreView("base", "main_website_store", "default"),
//	    livesearch.WithAPIKey(os.Getenv("LIVESEARCH_API_KEY")),
//	)
//	res, _ := client.ProductSearch(ctx, livesearch.SearchParams{
//	    Phrase:         "latte",
//	    CategorySearch: false,
//	})
//	_ = res.Decode(&page)
//
// # Images
//
//	urls := client.GalleryURLs(product.MediaGallery, 3, "")
//	for _, img := range livesearch.ResponsiveImages(urls, 200) {
//	    fmt.Println(img.Src, img.SrcsetAttr())
//	}
package livesearch
