package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/treasuryofflair/flairmarket/config"
	"github.com/treasuryofflair/flairmarket/database/seeders"
	"github.com/treasuryofflair/flairmarket/pkg/database"
	"github.com/treasuryofflair/flairmarket/pkg/migration"
)

// cliDB is the connection shared by the database commands.
var cliDB *gorm.DB

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	db, err := database.Connect()
	if err != nil {
		return err
	}
	cliDB = db
	return nil
}

// flairmarket migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close(cliDB)
		fmt.Println("Running migrations...")
		return migration.New(cliDB).Run()
	},
}

// flairmarket migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close(cliDB)
		fmt.Println("Rolling back last batch...")
		return migration.New(cliDB).Rollback()
	},
}

// flairmarket migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close(cliDB)
		return migration.New(cliDB).Status()
	},
}

// flairmarket seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Close(cliDB)
		fmt.Println("Running seeders...")
		return seeders.RunAll(cliDB)
	},
}
