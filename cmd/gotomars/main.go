package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/ms/gotomars"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/gl"
)

// This host owns the surface and forwards its events to the renderer.

var confDir string

func init() {
	flag.StringVar(&confDir, "config", os.Getenv("GOTOMARS_CONFIG"), "directory of conf.toml (defaults apply if empty)")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	conf := gotomars.DefaultConfig()
	if confDir != "" {
		var err error
		if conf, err = gotomars.LoadConfig(confDir); err != nil {
			logger.Log("level", "critical", "subsys", "config", "err", err)
			os.Exit(1)
		}
	}

	reg := prometheus.NewRegistry()
	metrics := gotomars.NewMetrics(reg)
	if conf.MetricsListen != "" {
		go serveMetrics(kitlog.With(logger, "subsys", "metrics"), conf.MetricsListen, reg)
	}

	renderer, err := gotomars.NewRenderer(conf, gotomars.WithLogger(logger), gotomars.WithMetrics(metrics))
	if err != nil {
		logger.Log("level", "critical", "subsys", "render", "err", err)
		os.Exit(1)
	}
	input := newGestures(renderer.Controls().OnDrag, renderer.Controls().OnScale)

	app.Main(func(a app.App) {
		var (
			glctx   gl.Context
			backend *glBackend
			sz      size.Event
		)
		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					if glctx, err = drawContext(e); err != nil {
						logger.Log("level", "critical", "subsys", "gl", "err", err)
						os.Exit(1)
					}
					if backend, err = newGLBackend(glctx); err != nil {
						logger.Log("level", "critical", "subsys", "gl", "err", err)
						os.Exit(1)
					}
					renderer.Init(backend)
					if sz.WidthPx > 0 {
						renderer.Resize(sz.WidthPx, sz.HeightPx)
					}
					a.Send(paint.Event{})
				case lifecycle.CrossOff:
					renderer.Release()
					if backend != nil {
						backend.release()
						backend = nil
					}
					glctx = nil
				}
			case size.Event:
				sz = e
				renderer.Resize(sz.WidthPx, sz.HeightPx)
			case touch.Event:
				input.handle(e)
			case paint.Event:
				if glctx == nil || e.External {
					continue
				}
				if err := renderer.Frame(time.Now()); err != nil {
					logger.Log("level", "warning", "subsys", "render", "err", err)
				}
				a.Publish()
				a.Send(paint.Event{})
			}
		}
	})
}

// drawContext returns the GL context the surface became visible with.
func drawContext(e lifecycle.Event) (gl.Context, error) {
	glctx, ok := e.DrawContext.(gl.Context)
	if !ok {
		return nil, fmt.Errorf("draw context is %T, not a gl.Context", e.DrawContext)
	}
	return glctx, nil
}

func serveMetrics(logger kitlog.Logger, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Log("level", "info", "listen", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Log("level", "error", "err", err)
	}
}
