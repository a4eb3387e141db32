package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dukaan/app/catalog"
	"github.com/shashiranjanraj/dukaan/app/feed"
	"github.com/shashiranjanraj/dukaan/app/routes"
	"github.com/shashiranjanraj/dukaan/internal/server"
	"github.com/shashiranjanraj/dukaan/pkg/router"
	"github.com/shashiranjanraj/dukaan/pkg/ws"
)

// dukaan serve — start the storefront server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// dukaan route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		store := catalog.NewStore(feed.DefaultOptions(), nil, nil)
		routes.RegisterWeb(r, routes.Deps{
			Catalog: store,
			Fetcher: catalog.NewFetcher(store, "", 0),
			Hub:     ws.NewHub(),
		})

		infos := r.Routes()
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
