package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"textgen/internal/config"
	"textgen/internal/device"
	"textgen/internal/httpapi"
	"textgen/internal/model"
	"textgen/internal/registry"
)

const shutdownTimeout = 5 * time.Second

// newAdapter selects the model runtime; nil means the llama.cpp adapter.
// Tests swap in an in-memory runtime.
var newAdapter func() model.Adapter

// listen opens the HTTP listener.
var listen = net.Listen

func detectDevice(cfg config.Config) (device.Device, error) {
	kind, err := device.ParseKind(cfg.Device)
	if err != nil {
		return device.Device{}, err
	}
	return device.Detect(device.Options{Kind: kind, Threads: cfg.Threads, GPULayers: cfg.GPULayers})
}

func printDevice(w io.Writer, cfg config.Config) error {
	dev, err := detectDevice(cfg)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dev.Info())
}

// serve loads the model, serves HTTP until ctx is done, then shuts down:
// stop accepting, let in-flight requests finish, release the model.
// Any startup failure is returned before the listener opens.
func serve(ctx context.Context, cfg config.Config, lg zerolog.Logger) error {
	dev, err := detectDevice(cfg)
	if err != nil {
		return fmt.Errorf("select device: %w", err)
	}
	path, err := registry.Resolve(cfg.ModelPath)
	if err != nil {
		return fmt.Errorf("resolve model: %w", err)
	}
	hc := model.HandleConfig{ModelPath: path, ContextSize: cfg.ContextSize, Device: dev}
	if newAdapter != nil {
		hc.Adapter = newAdapter()
	}
	lg.Info().Str("model", path).Str("device", dev.String()).Int("context_size", cfg.ContextSize).Msg("loading model")
	start := time.Now()
	h, err := model.Load(hc)
	if err != nil {
		return err
	}
	defer func() {
		if err := h.Close(); err != nil {
			lg.Warn().Err(err).Msg("release model")
		}
	}()
	lg.Info().Dur("took", time.Since(start)).Msg("model loaded")

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetLogger(lg)
	httpapi.SetBaseContext(baseCtx)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins, nil, nil)
	httpapi.SetStaticDir(cfg.StaticDir)

	ln, err := listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr(), err)
	}
	srv := &http.Server{
		Handler:           httpapi.NewMux(h),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	lg.Info().Str("addr", ln.Addr().String()).Msg("textgen listening")

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	lg.Info().Msg("shutting down")
	// Requests still waiting to start another sequence give up now.
	cancelBase()
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		lg.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
