/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/config"
	"github.com/GoogleCloudPlatform/data-quality-engine/internal/table"
	"github.com/GoogleCloudPlatform/data-quality-engine/internal/table/memory"
	_ "github.com/GoogleCloudPlatform/data-quality-engine/internal/table/mysql"
	_ "github.com/GoogleCloudPlatform/data-quality-engine/internal/table/postgres"
	_ "github.com/GoogleCloudPlatform/data-quality-engine/internal/table/sqlserver"
	"github.com/GoogleCloudPlatform/data-quality-engine/internal/utils"
)

var (
	verbose bool

	// Database connection flags
	dialect                        string
	host                           string
	port                           int
	username                       string
	password                       string
	dbName                         string
	sslMode                        string
	cloudSQLInstanceConnectionName string
	cloudSQLUsePrivateIP           bool

	// Dataset selection flags
	tableName         string
	csvFile           string
	csvNumericColumns string

	appConfig *config.Config
	logger    *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "data_quality_engine",
	Short: "A tool to assess the quality of tabular datasets",
	Long: `data_quality_engine is a CLI tool that profiles tabular datasets for
missing, invalid, duplicate and outlier values and renders a graded
data-quality scorecard. Datasets are read from a SQL table or a local CSV
file; the engine itself never modifies the source.`,
	PersistentPreRunE: initFlagsAndConfig,
}

// initFlagsAndConfig builds the logger, loads configuration from file and
// environment, and lets explicitly-set flags override it.
func initFlagsAndConfig(cmd *cobra.Command, args []string) error {
	var zapLogger *zap.Logger
	var err error
	if verbose {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = zapLogger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dialect") {
		cfg.Database.Dialect = strings.ToLower(dialect)
	}
	if flags.Changed("host") {
		cfg.Database.Host = host
	}
	if flags.Changed("port") {
		cfg.Database.Port = port
	}
	if flags.Changed("username") {
		cfg.Database.User = username
	}
	if flags.Changed("password") {
		cfg.Database.Password = password
	}
	if flags.Changed("database") {
		cfg.Database.DBName = dbName
	}
	if flags.Changed("sslmode") {
		cfg.Database.SSLMode = sslMode
	}
	if flags.Changed("cloudsql-instance-connection-name") {
		cfg.Database.CloudSQLInstanceConnectionName = cloudSQLInstanceConnectionName
	}
	if flags.Changed("cloudsql-use-private-ip") {
		cfg.Database.UsePrivateIP = cloudSQLUsePrivateIP
	}

	appConfig = cfg
	return nil
}

func validateDialect(dialect string) error {
	supportedDialects := []string{"postgres", "cloudsqlpostgres", "mysql", "cloudsqlmysql", "sqlserver", "cloudsqlsqlserver"}
	for _, supportedDialect := range supportedDialects {
		if dialect == supportedDialect {
			return nil
		}
	}
	return fmt.Errorf("unsupported dialect: %s (only %s are supported)", dialect, strings.Join(supportedDialects, ", "))
}

// openAccessor resolves the dataset the subcommand operates on: a local CSV
// loaded into memory when --csv is set, otherwise the configured SQL table.
// The returned closer must be called when the accessor is no longer needed.
func openAccessor() (table.Accessor, func() error, error) {
	if csvFile != "" {
		t, err := memory.LoadCSVFile(csvFile, utils.ParseColumnsFlag(csvNumericColumns))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load csv dataset: %w", err)
		}
		return t, func() error { return nil }, nil
	}

	if err := validateDialect(appConfig.Database.Dialect); err != nil {
		return nil, nil, err
	}
	if tableName == "" {
		return nil, nil, fmt.Errorf("--table is required when no --csv file is given")
	}
	db, err := table.New(appConfig.Database, tableName, logger)
	if err != nil {
		logger.Errorw("failed to connect to database", "error", err)
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, db.Close, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (development) logging")

	// Database connection flags
	rootCmd.PersistentFlags().StringVar(&dialect, "dialect", "", fmt.Sprintf("Database dialect (%s)", strings.Join([]string{"postgres", "mysql", "sqlserver", "cloudsqlpostgres", "cloudsqlmysql", "cloudsqlsqlserver"}, ", ")))
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "Database host")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "Database port")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "Database username")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Database password")
	rootCmd.PersistentFlags().StringVar(&dbName, "database", "", "Database name")
	rootCmd.PersistentFlags().StringVar(&sslMode, "sslmode", "", "PostgreSQL SSL mode")
	rootCmd.PersistentFlags().StringVar(&cloudSQLInstanceConnectionName, "cloudsql-instance-connection-name", "", "Cloud SQL instance connection name (for Cloud SQL dialects)")
	rootCmd.PersistentFlags().BoolVar(&cloudSQLUsePrivateIP, "cloudsql-use-private-ip", false, "Use private IP for Cloud SQL connection (Cloud SQL)")

	// Dataset selection flags
	rootCmd.PersistentFlags().StringVar(&tableName, "table", "", "Table to assess (SQL mode)")
	rootCmd.PersistentFlags().StringVar(&csvFile, "csv", "", "Local CSV file to assess instead of a database table")
	rootCmd.PersistentFlags().StringVar(&csvNumericColumns, "numeric-columns", "", "Comma-separated CSV columns parsed as numbers (CSV mode)")

	// Add subcommands
	rootCmd.AddCommand(scorecardCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(cleanseCmd)
}
