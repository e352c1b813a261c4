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
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/client"
	conversionModel "github.com/meridian-watches/storefront-tracking-service/internal/conversions/model"
	"github.com/meridian-watches/storefront-tracking-service/internal/conversions/service"
	conversionStore "github.com/meridian-watches/storefront-tracking-service/internal/conversions/store"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/config"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/constants"
	systemcontext "github.com/meridian-watches/storefront-tracking-service/internal/system/context"
	dbclient "github.com/meridian-watches/storefront-tracking-service/internal/system/database/client"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/log"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/managers"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/schedulers"
	"github.com/meridian-watches/storefront-tracking-service/internal/system/workers"
)

const configFile = "config/deployment.yaml"

func main() {
	stsHome := getSTSHome()

	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	stsConfig, err := config.LoadConfig(stsHome, configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitializeSTSRuntime(stsHome, stsConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize runtime: %v\n", err)
		os.Exit(1)
	}

	if err := log.Init(stsConfig.Log.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	if _, err := dbclient.Connect(stsConfig.Mongo.URI, stsConfig.Mongo.Database); err != nil {
		logger.Fatal("Failed to connect to MongoDB", log.Error(err))
	}

	tracker := initTracker(stsConfig)

	workers.StartPageViewWorker()

	drainInterval := time.Duration(stsConfig.Tracker.QueueDrainIntervalMins) * time.Minute
	go schedulers.StartQueueDrainScheduler(tracker, drainInterval)

	serverAddr := fmt.Sprintf("%s:%d", stsConfig.Addr.Host, stsConfig.Addr.Port)
	mux := initMultiplexer(tracker)

	logger.Info("Storefront tracking service starting", log.String("addr", serverAddr))
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}

	server := &http.Server{Handler: enableCORS(withTraceID(mux))}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// initTracker wires the delivery engine: outbound client, dedup store, retry
// queue and the conversion audit recorder.
func initTracker(stsConfig *config.Config) *service.Tracker {

	requestTimeout := time.Duration(stsConfig.Tracker.RequestTimeoutSec) * time.Second
	metaClient := client.NewMetaClient(stsConfig.Meta, requestTimeout)

	dedup := conversionStore.NewDedupStore(stsConfig)
	queue := conversionStore.NewRetryQueue()

	logger := log.GetLogger()

	return service.NewTracker(metaClient, dedup, queue, service.TrackerOptions{
		MaxRetries: stsConfig.Tracker.MaxRetries,
		BaseDelay:  time.Duration(stsConfig.Tracker.RetryBaseDelayMs) * time.Millisecond,
		Recorder: func(record conversionModel.ConversionRecord) {
			go func() {
				if err := conversionStore.AddConversionRecord(record); err != nil {
					logger.Error("Failed to record conversion", log.Error(err))
				}
			}()
		},
	})
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(tracker *service.Tracker) *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, tracker)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

// withTraceID tags every request with a trace id for log correlation.
func withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Request-Id")
		if traceID == "" {
			traceID = systemcontext.GenerateTraceID()
		}
		w.Header().Set("X-Request-Id", traceID)
		next.ServeHTTP(w, r.WithContext(systemcontext.WithTraceID(r.Context(), traceID)))
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", corsOrigin(r))
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corsOrigin echoes the request origin when it is on the configured allow
// list; otherwise the first configured origin is offered.
func corsOrigin(r *http.Request) string {

	allowed := config.GetSTSRuntime().Config.Auth.CORSAllowedOrigins
	if len(allowed) == 0 {
		return "*"
	}

	origin := r.Header.Get("Origin")
	for _, candidate := range allowed {
		if candidate == origin || candidate == "*" {
			return origin
		}
	}
	return allowed[0]
}

func getSTSHome() string {

	projectHome := ""
	projectHomeFlag := flag.String("stsHome", "", "Path to the tracking service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		projectHome = *projectHomeFlag
	} else {
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to get current working directory: %v\n", dirErr)
		}
		projectHome = dir
	}

	return projectHome
}
