// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command lfstack-bench runs the stack workload harness and logs its report.
//
// Settings come from flags, LFSTACK_* environment variables, or a config
// file given with --file, in that order of precedence.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"code.hybscloud.com/lfstack/harness"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const applicationName = "lfstack-bench"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(arguments []string) int {
	v, err := newViper(arguments)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", applicationName, err)
		return 2
	}

	logger, err := newLogger(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: unable to create logger: %v\n", applicationName, err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	var cfg harness.Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Error("unable to read configuration", zap.Error(err))
		return 1
	}

	opts := []harness.Option{harness.WithLogger(logger)}
	if addr := v.GetString("metrics-addr"); addr != "" {
		m, stopServer, err := serveMetrics(addr, logger)
		if err != nil {
			logger.Error("unable to serve metrics", zap.String("addr", addr), zap.Error(err))
			return 1
		}
		defer stopServer()
		opts = append(opts, harness.WithMetrics(m))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := harness.Run(ctx, cfg, opts...)
	if err != nil {
		logger.Error("harness run failed", zap.Error(err))
		return 1
	}
	if err := r.Verify(); err != nil {
		logger.Error("operation count mismatch", zap.Object("report", r), zap.Error(err))
		return 1
	}

	fmt.Printf("%s: %d push/pop calls in %s (%.0f ops/s)\n", r.Kind, r.Ops, r.Elapsed.Round(time.Millisecond), r.Throughput())
	return 0
}

// newViper binds the command line into a viper instance with defaults from
// harness.DefaultConfig.
func newViper(arguments []string) (*viper.Viper, error) {
	d := harness.DefaultConfig()

	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.Int("pushers", d.Pushers, "number of pusher goroutines")
	fs.Int("poppers", d.Poppers, "number of popper goroutines")
	fs.Int("seed", d.Seed, "values pushed before measurement begins")
	fs.Duration("duration", d.Duration, "length of the measured phase")
	fs.Duration("grace", d.Grace, "join deadline after cancellation")
	fs.Int("ops-per-worker", d.OpsPerWorker, "stop each worker after this many calls (0 = unlimited)")
	fs.String("kind", string(d.Kind), "stack implementation: lockfree or locked")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address")
	fs.String("log-level", "info", "log level")
	fs.StringP("file", "f", "", "configuration file")

	if err := fs.Parse(arguments); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("LFSTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if file := v.GetString("file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func newLogger(v *viper.Viper) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(v.GetString("log-level"))
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build(zap.Fields(zap.String("app", applicationName)))
}

// serveMetrics registers harness metrics and serves them on addr until the
// returned stop function is called.
func serveMetrics(addr string, logger *zap.Logger) (*harness.Metrics, func(), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	m, err := harness.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", l.Addr().String()))

	return m, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx) //nolint:errcheck
	}, nil
}
