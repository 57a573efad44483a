package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	zlog "github.com/rs/zerolog/log"

	"github.com/R-Theory/core-engine-client/api"
	"github.com/R-Theory/core-engine-client/gateway"
	"github.com/R-Theory/core-engine-client/internal/config"
	"github.com/R-Theory/core-engine-client/session"
	"github.com/R-Theory/core-engine-client/storage"
	filestore "github.com/R-Theory/core-engine-client/storage/file"
	redisstore "github.com/R-Theory/core-engine-client/storage/redis"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running gateway: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Gateway stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	ctx := context.Background()

	store, err := newStore(ctx, c)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer store.Close()

	sessions, err := session.New(ctx, store)
	if err != nil {
		return fmt.Errorf("session manager: %w", err)
	}

	backend, err := api.NewClient(c, sessions,
		api.WithOnUnauthorized(func() {
			zlog.Warn().Msg("Backend rejected credentials; session cleared")
		}),
	)
	if err != nil {
		return fmt.Errorf("backend client: %w", err)
	}

	gw, err := gateway.New(c, sessions, backend)
	if err != nil {
		return fmt.Errorf("gateway: %w", err)
	}

	server := &http.Server{Addr: c.GetPort(), Handler: gw}
	go listenAndServe(server)
	waitForStopSignal()
	returnError = shutdown(server)
	return returnError
}

// newStore picks the durable session store: Redis when REDIS_URL is set,
// otherwise the file store under the data folder (encrypted at rest when
// STATE_KEY_HEX is present).
func newStore(ctx context.Context, c config.Config) (storage.Store, error) {
	if url := c.GetRedisURL(); url != "" {
		return redisstore.New(ctx, url)
	}

	var options []filestore.Option
	if keyHex := c.GetStateKeyHex(); keyHex != "" {
		options = append(options, filestore.WithEncryptionKeyHex(keyHex))
	}
	return filestore.New(c.GetDataFolder(), options...)
}

func listenAndServe(server *http.Server) error {
	log.Printf("Gateway listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
