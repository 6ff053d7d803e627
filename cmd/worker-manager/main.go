// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"admissions-workers/internal/common/config"
	"admissions-workers/internal/common/database"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/observability"
	"admissions-workers/internal/store"
	"admissions-workers/pkg/registry"

	// Application Workers (3)
	sca "admissions-workers/internal/workers/application/submit-course-application"
	sja "admissions-workers/internal/workers/application/submit-job-application"
	vs "admissions-workers/internal/workers/application/validate-submission"

	// Admission Workers (5)
	crs "admissions-workers/internal/workers/admission/compute-review-score"
	do "admissions-workers/internal/workers/admission/decline-offer"
	pfw "admissions-workers/internal/workers/admission/promote-from-waitlist"
	ra "admissions-workers/internal/workers/admission/review-application"
	sfa "admissions-workers/internal/workers/admission/select-final-admission"

	// Matching Workers (1)
	cjm "admissions-workers/internal/workers/matching/calculate-job-match"

	// Notification Workers (1)
	sn "admissions-workers/internal/workers/notification/send-notification"

	// Search Workers (1)
	ia "admissions-workers/internal/workers/search/index-application"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	if cfg.Observability.JaegerEndpoint != "" {
		tracing, err := observability.NewTracing("worker-manager", cfg.Observability.JaegerEndpoint)
		if err != nil {
			zapLog.Warn("tracing init failed, continuing without tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown()
		}
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Load Activity Registry ---
	registered := map[string]bool{}
	if cfg.Registry.Path != "" {
		reg, err := registry.LoadRegistry(cfg.Registry.Path)
		if err != nil {
			zapLog.Warn("activity registry load failed", zap.Error(err), zap.String("path", cfg.Registry.Path))
		} else {
			for _, activity := range reg.Activities {
				registered[activity.TaskType] = true
			}
			zapLog.Info("activity registry loaded",
				zap.String("version", reg.Version),
				zap.Int("activities", len(reg.Activities)),
			)
		}
	}
	checkRegistered := func(taskType string) {
		if len(registered) > 0 && !registered[taskType] {
			zapLog.Warn("worker enabled but missing from activity registry", zap.String("taskType", taskType))
		}
	}

	// Shared allocation store used by the submission and admission workers.
	// The policy knobs come from config; zero thresholds keep the defaults.
	allocStore := store.New(pg.DB, log)
	if v := cfg.Allocation.MaxApplicationsPerInstitution; v > 0 {
		allocStore.MaxPerInstitution = v
	}
	allocStore.AdmitThreshold = cfg.Allocation.AdmitThreshold
	allocStore.WaitlistThreshold = cfg.Allocation.WaitlistThreshold

	// --- START: Register ALL 11 Workers ---

	// --- 1. Application Workers (3) ---
	if cfg.Workers[vs.TaskType].Enabled {
		checkRegistered(vs.TaskType)
		vcfg := vs.LoadConfig()
		if ms := cfg.Workers[vs.TaskType].Timeout; ms > 0 {
			vcfg.Timeout = time.Duration(ms) * time.Millisecond
		}
		handler, err := vs.NewHandler(vcfg, log)
		if err != nil {
			zapLog.Fatal("failed to create validate-submission handler", zap.Error(err))
		}
		startWorker(zeebeClient, vs.TaskType, cfg.Workers[vs.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sca.TaskType].Enabled {
		checkRegistered(sca.TaskType)
		scfg := sca.LoadConfig()
		if ms := cfg.Workers[sca.TaskType].Timeout; ms > 0 {
			scfg.Timeout = time.Duration(ms) * time.Millisecond
		}
		handler := sca.NewHandler(scfg, allocStore, log)
		startWorker(zeebeClient, sca.TaskType, cfg.Workers[sca.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sja.TaskType].Enabled {
		checkRegistered(sja.TaskType)
		jcfg := sja.LoadConfig()
		if ms := cfg.Workers[sja.TaskType].Timeout; ms > 0 {
			jcfg.Timeout = time.Duration(ms) * time.Millisecond
		}
		handler := sja.NewHandler(jcfg, allocStore, log)
		startWorker(zeebeClient, sja.TaskType, cfg.Workers[sja.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Admission Workers (5) ---
	if cfg.Workers[crs.TaskType].Enabled {
		checkRegistered(crs.TaskType)
		ccfg := crs.LoadConfig()
		if ms := cfg.Workers[crs.TaskType].Timeout; ms > 0 {
			ccfg.Timeout = time.Duration(ms) * time.Millisecond
		}
		ccfg.AdmitThreshold = cfg.Allocation.AdmitThreshold
		ccfg.WaitlistThreshold = cfg.Allocation.WaitlistThreshold
		handler := crs.NewHandler(ccfg, log)
		startWorker(zeebeClient, crs.TaskType, cfg.Workers[crs.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ra.TaskType].Enabled {
		checkRegistered(ra.TaskType)
		handler := ra.NewHandler(ra.LoadConfig(), allocStore, log)
		startWorker(zeebeClient, ra.TaskType, cfg.Workers[ra.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[do.TaskType].Enabled {
		checkRegistered(do.TaskType)
		handler := do.NewHandler(do.LoadConfig(), allocStore, log)
		startWorker(zeebeClient, do.TaskType, cfg.Workers[do.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[pfw.TaskType].Enabled {
		checkRegistered(pfw.TaskType)
		handler := pfw.NewHandler(pfw.LoadConfig(), allocStore, log)
		startWorker(zeebeClient, pfw.TaskType, cfg.Workers[pfw.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sfa.TaskType].Enabled {
		checkRegistered(sfa.TaskType)
		handler := sfa.NewHandler(sfa.LoadConfig(), allocStore, log)
		startWorker(zeebeClient, sfa.TaskType, cfg.Workers[sfa.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Matching Workers (1) ---
	if cfg.Workers[cjm.TaskType].Enabled {
		checkRegistered(cjm.TaskType)
		mcfg := cjm.LoadConfig()
		if secs := cfg.Allocation.MatchCacheTTL; secs > 0 {
			mcfg.CacheTTL = time.Duration(secs) * time.Second
		}
		handler := cjm.NewHandler(mcfg, redis.Client, log)
		startWorker(zeebeClient, cjm.TaskType, cfg.Workers[cjm.TaskType], handler.Handle, zapLog)
	}

	// --- 4. Notification Workers (1) ---
	if cfg.Workers[sn.TaskType].Enabled {
		checkRegistered(sn.TaskType)
		ncfg := sn.LoadConfig()
		if ms := cfg.Workers[sn.TaskType].Timeout; ms > 0 {
			ncfg.Timeout = time.Duration(ms) * time.Millisecond
		}
		ncfg.EmailEnabled = cfg.Notifications.Email.Enabled
		ncfg.SMSEnabled = cfg.Notifications.SMS.Enabled
		if cfg.Notifications.Email.FromEmail != "" {
			ncfg.FromEmail = cfg.Notifications.Email.FromEmail
		}
		if cfg.Notifications.AWS.Region != "" {
			ncfg.AWSRegion = cfg.Notifications.AWS.Region
		}
		handler, err := sn.NewHandler(ncfg, pg.DB, log)
		if err != nil {
			zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
		}
		startWorker(zeebeClient, sn.TaskType, cfg.Workers[sn.TaskType], handler.Handle, zapLog)
	}

	// --- 5. Search Workers (1) ---
	if cfg.Workers[ia.TaskType].Enabled {
		checkRegistered(ia.TaskType)
		icfg := ia.LoadConfig()
		if cfg.Allocation.SearchIndex != "" {
			icfg.Index = cfg.Allocation.SearchIndex
		}
		handler := ia.NewHandler(icfg, esClient.Client, log)
		startWorker(zeebeClient, ia.TaskType, cfg.Workers[ia.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All 11 workers registered successfully")

	// --- Health & Metrics Server ---
	metricsPort := cfg.Observability.MetricsPort
	if metricsPort == 0 {
		metricsPort = 8080
	}
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening", zap.Int("port", metricsPort))
		if err := http.ListenAndServe(fmt.Sprintf(":%d", metricsPort), nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	maxJobsActive := wcfg.MaxJobsActive
	if maxJobsActive <= 0 {
		maxJobsActive = 10
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(maxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", maxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
