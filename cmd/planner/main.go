// planner is a terminal client for one event's roadmap. It keeps the item
// list in a Tracker, talks to the marketplace backend (or an in-memory demo
// backend with --demo) and offers debounced location suggestions.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/ghuser/eventplanner/pkg/auth"
	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/pkg/telemetry"
	locationSvcs "github.com/ghuser/eventplanner/services/location/application/services"
	"github.com/ghuser/eventplanner/services/location/infrastructure/ibge"
	"github.com/ghuser/eventplanner/services/location/infrastructure/nominatim"
	roadmapSvcs "github.com/ghuser/eventplanner/services/roadmap/application/services"
	"github.com/ghuser/eventplanner/services/roadmap/domain/repositories"
	"github.com/ghuser/eventplanner/services/roadmap/infrastructure/backendapi"
	"github.com/ghuser/eventplanner/services/roadmap/infrastructure/memory"
)

const demoEventID = "demo-event"

type options struct {
	backendURL     string
	token          string
	eventID        string
	demo           bool
	timeout        time.Duration
	debounce       time.Duration
	minQueryLength int
	maxResults     int
	nominatimURL   string
	userAgent      string
	ratePerSec     float64
	ibgeURL        string
	country        string
	logFile        string
	logLevel       string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// envFlags lists the env vars that override flag defaults. The API reads the
// same names, so one .env serves both. Command-line values win.
var envFlags = []struct{ flag, env string }{
	{"backend", "BACKEND_BASE_URL"},
	{"token", "PLANNER_TOKEN"},
	{"event", "PLANNER_EVENT_ID"},
	{"timeout", "BACKEND_TIMEOUT"},
	{"debounce", "LOCATION_DEBOUNCE"},
	{"min-query-length", "LOCATION_MIN_QUERY_LENGTH"},
	{"max-results", "LOCATION_MAX_RESULTS"},
	{"nominatim-url", "NOMINATIM_URL"},
	{"nominatim-user-agent", "NOMINATIM_USER_AGENT"},
	{"nominatim-rate", "NOMINATIM_RATE_PER_SEC"},
	{"ibge-url", "IBGE_MUNICIPALITIES_URL"},
	{"country", "GEOCODER_COUNTRY"},
	{"log-file", "PLANNER_LOG_FILE"},
	{"log-level", "LOG_LEVEL"},
}

func parseFlags(args []string) (options, error) {
	_ = godotenv.Load()

	var o options
	fs := pflag.NewFlagSet("planner", pflag.ContinueOnError)
	fs.StringVar(&o.backendURL, "backend", "http://localhost:3000/api", "marketplace API base URL")
	fs.StringVar(&o.token, "token", "", "bearer token for the marketplace API")
	fs.StringVar(&o.eventID, "event", "", "marketplace event ID")
	fs.BoolVar(&o.demo, "demo", false, "use an in-memory backend with sample items")
	fs.DurationVar(&o.timeout, "timeout", 15*time.Second, "timeout for each backend call")
	fs.DurationVar(&o.debounce, "debounce", locationSvcs.DefaultDebounce, "quiet period before a location search")
	fs.IntVar(&o.minQueryLength, "min-query-length", locationSvcs.DefaultMinQueryLength, "characters needed before a location search")
	fs.IntVar(&o.maxResults, "max-results", locationSvcs.DefaultMaxResults, "location suggestions shown")
	fs.StringVar(&o.nominatimURL, "nominatim-url", "https://nominatim.openstreetmap.org", "Nominatim base URL")
	fs.StringVar(&o.userAgent, "nominatim-user-agent", "event-planner-tui/1.0", "User-Agent sent to Nominatim")
	fs.Float64Var(&o.ratePerSec, "nominatim-rate", 1, "Nominatim requests per second")
	fs.StringVar(&o.ibgeURL, "ibge-url", "https://servicodados.ibge.gov.br/api/v1/localidades/municipios", "IBGE municipality directory URL")
	fs.StringVar(&o.country, "country", "Brasil", "country appended to location queries")
	fs.StringVar(&o.logFile, "log-file", "", "write JSON logs to this file")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level")

	for _, ef := range envFlags {
		if v, ok := os.LookupEnv(ef.env); ok {
			if err := fs.Set(ef.flag, v); err != nil {
				return o, fmt.Errorf("%s: %w", ef.env, err)
			}
		}
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	if o.demo && o.eventID == "" {
		o.eventID = demoEventID
	}
	if o.eventID == "" {
		return o, fmt.Errorf("--event (or PLANNER_EVENT_ID) is required unless --demo is set")
	}
	return o, nil
}

// newResolver builds the location resolver from o.
func newResolver(o options, hc *http.Client, log logger.Logger) *locationSvcs.Resolver {
	return locationSvcs.NewResolver(
		nominatim.New(nominatim.Config{
			BaseURL:    o.nominatimURL,
			UserAgent:  o.userAgent,
			Country:    o.country,
			RatePerSec: o.ratePerSec,
		}, hc),
		ibge.New(o.ibgeURL, hc),
		locationSvcs.ResolverConfig{
			MinQueryLength: o.minQueryLength,
			MaxResults:     o.maxResults,
		},
		log,
	)
}

func run(args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	// The terminal belongs to the TUI, so logs only go to a file.
	var out io.Writer = io.Discard
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		out = f
	}
	log := logger.NewWriter(out, o.logLevel)

	hc := telemetry.NewHTTPClient(o.timeout)

	var backend repositories.RoadmapBackend
	if o.demo {
		backend = memory.New(memory.SampleItems(auth.Profile{Name: "Demo"}, o.eventID, time.Now()))
	} else {
		client, err := backendapi.New(o.backendURL, hc, backendapi.StaticToken(o.token), log)
		if err != nil {
			return err
		}
		backend = client
	}
	tracker := roadmapSvcs.NewTracker(backend, o.eventID, log)

	suggestions := make(chan locationSvcs.Suggestions, 1)
	suggester := locationSvcs.NewSuggester(newResolver(o, hc, log), o.debounce, latest(suggestions), log)
	defer suggester.Close()

	model := NewModel(tracker, suggester, suggestions, o.timeout)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
