/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
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

package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/wso2/mdm-deduplication-service/internal/system/config"
	"github.com/wso2/mdm-deduplication-service/internal/system/constants"
	dbprovider "github.com/wso2/mdm-deduplication-service/internal/system/database/provider"
	"github.com/wso2/mdm-deduplication-service/internal/system/log"
	"github.com/wso2/mdm-deduplication-service/internal/system/managers"
	"github.com/wso2/mdm-deduplication-service/internal/system/workers"
)

const configFile = "/repository/conf/deployment.yaml"

func main() {
	mdsHome := getMDSHome()

	// Provider API keys travel through the environment, never the
	// configuration file.
	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	mdsConfig, err := config.LoadConfig(mdsHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.InitializeMDSRuntime(mdsHome, mdsConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime: %v", err)
	}

	if err := log.Init(mdsConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	checkDatabaseConnectivity()

	// Background provider probing keeps the failover chain current.
	workers.StartProviderHealthWorker(context.Background())

	serverAddr := fmt.Sprintf("%s:%d", mdsConfig.Addr.Host, mdsConfig.Addr.Port)
	handler := enableCORS(initMultiplexer(), mdsConfig.Auth.CORSAllowedOrigins)

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Error("Failed to start listener", log.Error(err))
		os.Exit(1)
	}
	logger.Info("MDM deduplication service started", log.String("addr", serverAddr))

	server := &http.Server{Handler: handler}
	if err := server.Serve(ln); err != nil {
		logger.Error("Failed to serve requests", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Error("Failed to register the services", log.Error(err))
	}
	return mux
}

// checkDatabaseConnectivity fails fast when the datasource is
// unreachable at startup.
func checkDatabaseConnectivity() {

	dbClient, err := dbprovider.NewDBProvider().GetDBClient()
	if err != nil {
		stdlog.Fatalf("Failed to create database client: %v", err)
	}
	defer dbClient.Close()

	if _, err := dbClient.ExecuteQuery("SELECT 1;"); err != nil {
		stdlog.Fatalf("Database connectivity check failed: %v", err)
	}
}

func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {

	allowAll := len(allowedOrigins) == 0
	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		origins[strings.TrimSuffix(origin, "/")] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowAll {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getMDSHome() string {

	projectHome := ""
	projectHomeFlag := flag.String("mdsHome", "", "Path to the deduplication service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		projectHome = *projectHomeFlag
	} else {
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			stdlog.Fatalf("Failed to get current working directory: %v", dirErr)
		}
		projectHome = dir
	}
	return projectHome
}
