package main

import (
	"context"
	"fmt"
	"os"

	"medicore/cmd/bootstrap"
	"medicore/internal/seed"
	"medicore/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medicore",
		Short: "Clinic scheduling server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(backupCmd())
	rootCmd.AddCommand(seedDemoCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Initialize application with all dependencies
			app, err := bootstrap.New(context.Background())
			if err != nil {
				logrus.Fatalf("Failed to initialize application: %v", err)
			}

			// Run the application
			app.Run()
			return nil
		},
	}
}

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore the store",
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup file into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := bootstrap.New(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = app.Config.Backup.Dir
			}
			path, err := app.Backup.ExportToDir(ctx, dir)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
	exportCmd.Flags().String("dir", "", "target directory (default BACKUP_DIR)")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the store with a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := bootstrap.New(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			data, err := afero.ReadFile(afero.NewOsFs(), args[0])
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}
			if err := app.Backup.Import(ctx, data); err != nil {
				return err
			}
			app.Log.Infof("Restored %s", args[0])
			return nil
		},
	}

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}

func seedDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-demo",
		Short: "Add fake patients and appointments for demos",
		RunE: func(cmd *cobra.Command, args []string) error {
			patients, _ := cmd.Flags().GetInt("patients")
			appointments, _ := cmd.Flags().GetInt("appointments")
			days, _ := cmd.Flags().GetInt("days")
			randSeed, _ := cmd.Flags().GetUint64("seed")

			ctx := context.Background()
			app, err := bootstrap.New(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			var result *seed.DemoResult
			err = app.Store.Batch(ctx, func(h store.Handle) error {
				var err error
				result, err = seed.Demo(ctx, h, seed.DemoOptions{
					Patients:     patients,
					Appointments: appointments,
					Days:         days,
					Scope:        app.QueueScope,
					RandSeed:     randSeed,
				})
				return err
			})
			if err != nil {
				return err
			}
			app.Log.Infof("Demo data added: %d patients, %d appointments", result.Patients, result.Appointments)
			return nil
		},
	}
	cmd.Flags().Int("patients", 20, "number of fake patients")
	cmd.Flags().Int("appointments", 40, "number of fake appointments")
	cmd.Flags().Int("days", 7, "spread appointments over this many days from today")
	cmd.Flags().Uint64("seed", 0, "random seed, 0 for a random one")
	return cmd
}
