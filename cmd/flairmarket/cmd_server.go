package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/treasuryofflair/flairmarket/app/routes"
	"github.com/treasuryofflair/flairmarket/internal/server"
	"github.com/treasuryofflair/flairmarket/pkg/database"
	"github.com/treasuryofflair/flairmarket/pkg/router"
	"github.com/treasuryofflair/flairmarket/pkg/storage"
	"github.com/treasuryofflair/flairmarket/pkg/workerpool"
)

// flairmarket serve starts the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// flairmarket route:list prints all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		storage.Connect()

		pool := workerpool.New(1)
		defer pool.Shutdown()

		r := router.New()
		routes.RegisterAPI(r, cliDB, pool)
		defer database.Close(cliDB)

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
