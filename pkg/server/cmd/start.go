/* Copyright 2025 Studytrack Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/studytrack/studytrack/pkg/server/buildinfo"
	"github.com/studytrack/studytrack/pkg/server/config"
	"github.com/studytrack/studytrack/pkg/server/controllers"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/log"
)

const shutdownTimeout = 10 * time.Second

type startFlags struct {
	db                  dbFlags
	appEnv              string
	port                string
	logLevel            string
	disableRegistration bool
}

func newStartCmd() *cobra.Command {
	var f startFlags

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd.Context(), f)
		},
	}

	addDBFlags(cmd, &f.db)

	flags := cmd.Flags()
	flags.StringVar(&f.appEnv, "appEnv", "", "Application environment (env: APP_ENV, default: PRODUCTION)")
	flags.StringVar(&f.port, "port", "", "Server port (env: PORT, default: 3001)")
	flags.StringVar(&f.logLevel, "logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)")
	flags.BoolVar(&f.disableRegistration, "disableRegistration", false, "Disable user registration (env: DisableRegistration, default: false)")

	return cmd
}

func newServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func runStart(ctx context.Context, f startFlags) error {
	config.LoadDotenv()

	cfg, err := config.New(config.Params{
		ConfigFile:          f.db.configFile,
		AppEnv:              f.appEnv,
		Port:                f.port,
		DBDriver:            f.db.dbDriver,
		DBPath:              f.db.dbPath,
		DBURL:               f.db.dbURL,
		LogLevel:            f.logLevel,
		DisableRegistration: f.disableRegistration,
	})
	if err != nil {
		return errors.Wrap(err, "loading configuration")
	}

	log.SetLevel(cfg.LogLevel)

	a, err := initApp(cfg)
	if err != nil {
		return err
	}
	defer closeDB(a.DB)

	scheduler, err := database.StartMaintenance(a.DB, a.MaintenanceJobs()...)
	if err != nil {
		return errors.Wrap(err, "starting database maintenance")
	}
	defer scheduler.Stop()

	ctl := controllers.New(&a)
	rc := controllers.RouteConfig{
		Controllers: ctl,
		APIRoutes:   controllers.NewAPIRoutes(&a, ctl),
		CORSOrigins: cfg.CORSOrigins,
	}

	handler, err := controllers.NewRouter(&a, rc)
	if err != nil {
		return errors.Wrap(err, "initializing router")
	}

	srv := newServer(cfg, handler)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"version":  buildinfo.Version,
			"port":     cfg.Port,
			"dbDriver": cfg.DBDriver,
			"timezone": cfg.Location.String(),
		}).Info("Studytrack server starting")

		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return errors.Wrap(err, "serving")
	case <-ctx.Done():
	}

	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down server")
	}

	return nil
}
