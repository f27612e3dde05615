/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/core/status"
	httpEngine "github.com/nuts-foundation/verifiedid-broker/http"
	"github.com/nuts-foundation/verifiedid-broker/storage"
	"github.com/nuts-foundation/verifiedid-broker/verifiedid"
	verifiedidAPI "github.com/nuts-foundation/verifiedid-broker/verifiedid/api/v1"
	"github.com/nuts-foundation/verifiedid-broker/wellknown"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var stdOutWriter io.Writer = os.Stdout

func createRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verifiedid-broker",
		Short: "Broker for verifiable credential presentation and issuance flows of a Verified ID service.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
		SilenceUsage: true,
	}
}

func createPrintConfigCommand(system *core.System) *cobra.Command {
	command := &cobra.Command{
		Use:   "config",
		Short: "Prints the current config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			cmd.Println("Current system config")
			cmd.Println(system.Config.PrintConfig())
			return nil
		},
	}
	addFlagSets(command)
	return command
}

func createServerCommand(system *core.System) *cobra.Command {
	command := &cobra.Command{
		Use:   "server",
		Short: "Starts the Verified ID broker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			return startServer(cmd.Context(), system)
		},
	}
	addFlagSets(command)
	return command
}

func startServer(ctx context.Context, system *core.System) error {
	logrus.Info("Starting server with config:")
	logrus.Info(system.Config.PrintConfig())

	// check config on all engines
	if err := system.Configure(); err != nil {
		return err
	}

	// register HTTP routes
	var router core.EchoRouter
	system.VisitEngines(func(engine core.Engine) {
		if h, ok := engine.(*httpEngine.Engine); ok {
			router = h.Router()
		}
	})
	if router == nil {
		return errors.New("no HTTP engine registered")
	}
	system.VisitEngines(func(engine core.Engine) {
		if r, ok := engine.(core.Routable); ok {
			r.Routes(router)
		}
	})
	for _, r := range system.Routers {
		r.Routes(router)
	}

	// start engines
	if err := system.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	logrus.Info("Shutting down...")
	if err := system.Shutdown(); err != nil {
		logrus.WithError(err).Error("Error shutting down system")
		return err
	}
	logrus.Info("Shutdown complete. Goodbye!")
	return nil
}

// CreateCommand creates the command with all subcommands to run the system.
func CreateCommand(system *core.System) *cobra.Command {
	command := createRootCommand()
	command.SetOut(stdOutWriter)
	command.AddCommand(createServerCommand(system))
	command.AddCommand(createPrintConfigCommand(system))
	command.AddCommand(createPresentCommand())
	return command
}

// CreateSystem creates the system and registers all default engines.
// The shutdownCallback is called when the HTTP interface stops unexpectedly.
func CreateSystem(shutdownCallback context.CancelFunc) *core.System {
	system := core.NewSystem()
	// Create instances
	storageInstance := storage.New()
	verifiedIDInstance := verifiedid.New(storageInstance)

	// Register HTTP routes
	system.RegisterRoutes(&verifiedidAPI.Wrapper{Service: verifiedIDInstance, ServerConfig: system.Config})

	// Register engines
	// without dependencies
	system.RegisterEngine(status.NewStatusEngine(system))
	system.RegisterEngine(core.NewMetricsEngine())
	system.RegisterEngine(storageInstance)
	system.RegisterEngine(verifiedIDInstance)
	system.RegisterEngine(wellknown.New())
	// HTTP engine MUST be registered last, because when started it dispatches HTTP calls to the registered routes.
	system.RegisterEngine(httpEngine.New(shutdownCallback))
	return system
}

// Execute executes the root command with the given context. Cancelling the context stops the server.
func Execute(ctx context.Context, system *core.System) error {
	command := CreateCommand(system)
	return command.ExecuteContext(ctx)
}

func serverFlagSets() []*pflag.FlagSet {
	return []*pflag.FlagSet{
		core.FlagSet(),
		httpEngine.FlagSet(),
		storage.FlagSet(),
		verifiedid.FlagSet(),
		wellknown.FlagSet(),
	}
}

func addFlagSets(cmd *cobra.Command) {
	for _, flagSet := range serverFlagSets() {
		cmd.Flags().AddFlagSet(flagSet)
	}
}
