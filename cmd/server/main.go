/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package main is the entry point for running configured H2H flows.
package main

import (
	"context"
	"encoding/base64"
	"flag"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fileforge/h2h/internal/adapter/executor"
	"github.com/fileforge/h2h/internal/adapter/sftpbase"
	"github.com/fileforge/h2h/internal/export"
	"github.com/fileforge/h2h/internal/flow"
	"github.com/fileforge/h2h/internal/flow/constants"
	"github.com/fileforge/h2h/internal/flow/engine"
	"github.com/fileforge/h2h/internal/notification/mail"
	"github.com/fileforge/h2h/internal/system/config"
	"github.com/fileforge/h2h/internal/system/log"
	"github.com/fileforge/h2h/internal/transport/sftp"
	"github.com/fileforge/h2h/internal/utility"
)

const poolShutdownTimeout = 10 * time.Second

func main() {
	logger := log.GetLogger()

	homeFlag := flag.String("h2hHome", "", "Path to H2H home directory")
	flowFlag := flag.String("flow", "", "ID of a single flow to run instead of all registered flows")
	flag.Parse()

	h2hHome := getH2HHome(logger, *homeFlag)
	cfg := initH2HConfigurations(logger, h2hHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := sftp.NewConnectionPool(sftp.PoolOptions{
		MaxConnectionsPerEndpoint: cfg.Transfer.SftpPool.MaxConnectionsPerEndpoint,
		MaxIdleTime:               time.Duration(cfg.Transfer.SftpPool.MaxIdleMinutes) * time.Minute,
		CleanupInterval:           time.Duration(cfg.Transfer.SftpPool.CleanupIntervalMinutes) * time.Minute,
	})

	execService := initFlowService(logger, cfg, h2hHome, pool)

	flowIDs := execService.FlowIDs()
	if *flowFlag != "" {
		flowIDs = []string{*flowFlag}
	}
	if len(flowIDs) == 0 {
		logger.Warn("No flows registered, nothing to run")
		shutdownPool(logger, pool)
		return
	}

	failed := runFlows(ctx, logger, execService, flowIDs)
	shutdownPool(logger, pool)
	if failed {
		os.Exit(1)
	}
}

// getH2HHome retrieves and returns the H2H home directory.
func getH2HHome(logger *log.Logger, configured string) string {
	if configured != "" {
		logger.Info("Using h2hHome from command line argument", log.String("h2hHome", configured))
		return configured
	}

	dir, dirErr := os.Getwd()
	if dirErr != nil {
		logger.Fatal("Failed to get current working directory", log.Error(dirErr))
	}
	return dir
}

// initH2HConfigurations initializes the H2H configurations.
func initH2HConfigurations(logger *log.Logger, h2hHome string) *config.Config {
	configFilePath := path.Join(h2hHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeH2HRuntime(h2hHome, cfg); err != nil {
		logger.Fatal("Failed to initialize H2H runtime", log.Error(err))
	}

	return cfg
}

// initFlowService wires the adapter executors, utilities and the engine into
// the flow execution service.
func initFlowService(logger *log.Logger, cfg *config.Config, h2hHome string,
	pool *sftp.ConnectionPool) *flow.FlowExecService {
	factory := executor.NewFactory(executor.Dependencies{
		Pool:       pool,
		Dialer:     sftp.NewSSHDialer(),
		Keys:       sftpbase.NewFileKeyProvider(resolvePath(h2hHome, cfg.Transfer.PrivateKeyDirectory)),
		MailSender: mail.NewSMTPSender(),
	})

	registry, err := buildUtilityRegistry(logger, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize utility executors", log.Error(err))
	}

	flowEngine := engine.NewFlowExecutionEngine(factory, registry, nil, engine.Options{
		FailFast: cfg.Flow.FailFast,
	})

	graphDirectory := resolvePath(h2hHome, cfg.Flow.GraphDirectory)
	execService, err := flow.NewFlowExecService(flowEngine, graphDirectory, cfg.Flow.WorkerPoolSize)
	if err != nil {
		logger.Fatal("Failed to load flow definitions", log.Error(err),
			log.String("graphDirectory", graphDirectory))
	}
	return execService
}

// buildUtilityRegistry assembles the utility executors available to flows.
func buildUtilityRegistry(logger *log.Logger, cfg *config.Config) (*utility.Registry, error) {
	key, err := loadEncryptionKey(logger, cfg)
	if err != nil {
		return nil, err
	}
	encryptExec, err := utility.NewEncryptFilesExecutor(key)
	if err != nil {
		return nil, err
	}
	exportService, err := export.NewService(key)
	if err != nil {
		return nil, err
	}
	return utility.NewRegistry(
		encryptExec,
		utility.NewUnarchiveExecutor(),
		utility.NewExportPackageExecutor(exportService),
	), nil
}

// loadEncryptionKey decodes the configured encryption key, generating an
// ephemeral one when none is configured.
func loadEncryptionKey(logger *log.Logger, cfg *config.Config) ([]byte, error) {
	if cfg.Crypto.Key == "" {
		logger.Warn("No encryption key configured, generating an ephemeral key")
		return export.GenerateRandomKey()
	}
	return base64.StdEncoding.DecodeString(cfg.Crypto.Key)
}

// runFlows executes the given flows and reports whether any run failed.
func runFlows(ctx context.Context, logger *log.Logger, execService *flow.FlowExecService,
	flowIDs []string) bool {
	failed := false
	for _, flowID := range flowIDs {
		if ctx.Err() != nil {
			logger.Warn("Shutdown requested, skipping remaining flows")
			return true
		}

		report, svcErr := execService.Execute(ctx, flowID)
		if svcErr != nil {
			logger.Error("Flow run failed", log.String(log.LoggerKeyFlowID, flowID),
				log.String("errorCode", svcErr.Code),
				log.String("errorDescription", svcErr.ErrorDescription))
			failed = true
			continue
		}

		logger.Info("Flow run completed", log.String(log.LoggerKeyFlowID, flowID),
			log.String(log.LoggerKeyRunID, report.RunID),
			log.String("status", string(report.Status)))
		if report.Status == constants.FlowStatusFailed {
			failed = true
		}
	}
	return failed
}

// shutdownPool drains the SFTP connection pool with a bounded wait.
func shutdownPool(logger *log.Logger, pool *sftp.ConnectionPool) {
	ctx, cancel := context.WithTimeout(context.Background(), poolShutdownTimeout)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		logger.Warn("SFTP connection pool did not drain cleanly", log.Error(err))
	}
}

// resolvePath resolves a possibly relative configured path against the home directory.
func resolvePath(h2hHome, configured string) string {
	if configured == "" || filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(h2hHome, configured)
}
