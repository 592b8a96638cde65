package router

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	docs "github.com/spendwise/backend/api"
	"github.com/spendwise/backend/internal/config"
	"github.com/spendwise/backend/internal/controllers/healthz"
	"github.com/spendwise/backend/internal/controllers/root"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/controllers/version"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/money"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var apiVersion = "0.0.0"

type options struct {
	allowOrigins []string
	pprof        bool
	formatter    *money.Formatter
}

// Option configures the engine created by Config.
type Option func(*options)

// WithAllowOrigins enables CORS for the origins.
func WithAllowOrigins(origins ...string) Option {
	return func(o *options) {
		o.allowOrigins = origins
	}
}

// WithPprof serves the pprof profiles below debug/pprof.
func WithPprof() Option {
	return func(o *options) {
		o.pprof = true
	}
}

// WithFormatter sets the formatter for amounts in exports. Without it,
// amounts are formatted in money.DefaultCurrency for money.DefaultLocale.
func WithFormatter(f money.Formatter) Option {
	return func(o *options) {
		o.formatter = &f
	}
}

// FromConfig returns the options that apply c.
func FromConfig(c config.Config) ([]Option, error) {
	f, err := money.NewFormatter(c.Currency, c.Locale)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithFormatter(f)}
	if len(c.CORSAllowOrigins) > 0 {
		opts = append(opts, WithAllowOrigins(c.CORSAllowOrigins...))
	}

	if c.EnablePprof {
		opts = append(opts, WithPprof())
	}

	return opts, nil
}

// Config creates the gin engine with all middlewares.
//
// teardown must be called when the engine is not used anymore.
// It is never nil.
func Config(url *url.URL, opts ...Option) (*gin.Engine, func(), error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.formatter == nil {
		f, err := money.NewFormatter(money.DefaultCurrency, money.DefaultLocale)
		if err != nil {
			return nil, func() {}, err
		}
		o.formatter = &f
	}

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, func() {}, err
	}

	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Error().Msg("could not unregister prometheus metrics")
		}
	}

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(FormatterMiddleware(*o.formatter))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		httputil.NewError(c, http.StatusMethodNotAllowed, "this HTTP method is not allowed for the endpoint you called")
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(o.allowOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", o.allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     o.allowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(_, _, _ string, _ int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", apiVersion).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Spendwise"
	docs.SwaggerInfo.Version = apiVersion
	docs.SwaggerInfo.Description = "The backend for Spendwise, a personal expense tracker with cards, spends and monthly statistics."

	// pprof performance profiles
	if o.pprof {
		pprof.RouteRegister(r.Group(url.Path), "debug/pprof")
	}

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
func AttachRoutes(group *gin.RouterGroup) {
	root.RegisterRoutes(group)
	healthz.RegisterRoutes(group.Group("/healthz"))
	version.RegisterRoutes(group.Group("/version"), apiVersion)

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1.RegisterRoutes(group.Group("/v1"))
}
