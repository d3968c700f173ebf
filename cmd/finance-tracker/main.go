package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker-go/internal/app"
	"finance-tracker-go/pkg/logger"
	"golang.org/x/sync/errgroup"
)

func main() {
	log := logger.NewFromEnv()
	log.Info("app: starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		os.Exit(1)
	}

	srv := application.HTTPServer()
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("http: listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			return err
		}
		return nil
	})

	if scheduler := application.Scheduler(); scheduler != nil {
		group.Go(func() error {
			return scheduler.Run(groupCtx)
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("app: shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http: graceful shutdown failed", "err", err)
			return err
		}
		return nil
	})

	exitCode := 0
	if err := group.Wait(); err != nil {
		exitCode = 1
	}

	if err := application.Close(); err != nil {
		log.Error("app: close failed", "err", err)
		exitCode = 1
	}

	if exitCode == 0 {
		log.Info("app: stopped")
		return
	}

	os.Exit(exitCode)
}
