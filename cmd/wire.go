package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/eduplat/campus-cli/internal/adapters/api"
	"github.com/eduplat/campus-cli/internal/adapters/realtime"
	"github.com/eduplat/campus-cli/internal/adapters/rest"
	sessionfile "github.com/eduplat/campus-cli/internal/adapters/session/file"
	settingscache "github.com/eduplat/campus-cli/internal/adapters/settings"
	"github.com/eduplat/campus-cli/internal/adapters/telemetry"
	"github.com/eduplat/campus-cli/internal/adapters/term"
	"github.com/eduplat/campus-cli/internal/application"
	"github.com/eduplat/campus-cli/internal/ports"
)

type app struct {
	sessions      ports.SessionStore
	notifier      *term.Notifier
	coordinator   *application.LogoutCoordinator
	client        *rest.Client
	heartbeat     *application.Heartbeat
	channel       *realtime.Channel
	auth          *application.AuthService
	profile       *application.ProfileService
	authAPI       *api.AuthAPI
	courses       *api.CourseAPI
	homework      *api.HomeworkAPI
	enrollments   *api.EnrollmentAPI
	users         *api.UserAPI
	notifications *api.NotificationAPI
	assets        api.AssetBases
}

// loginPrompt is the terminal stand-in for the web client's redirect to the
// login page: a one-shot CLI cannot navigate, so it tells the user what to
// run next.
type loginPrompt struct {
	out io.Writer
}

func (p loginPrompt) ToLogin() {
	fmt.Fprintln(p.out, "Run `campus login` to sign in again.")
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	stateDir := filepath.Join(homeDir, ".campus")

	cfg, err := loadConfig(stateDir)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.GetString("log.level"))

	sessions, err := sessionfile.NewStore(filepath.Join(stateDir, "session.json"))
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	notifier := term.NewNotifier(os.Stderr)
	reporter := telemetry.NewLogReporter(logger)

	coordinator := application.NewLogoutCoordinator(sessions, notifier, loginPrompt{out: os.Stderr})
	// The prompt prints synchronously; the web client's pre-redirect pause
	// has nothing to wait for here.
	coordinator.SetNavigateDelay(0)

	httpClient := &http.Client{Timeout: 30 * time.Second}

	client, err := rest.NewClient(rest.Config{
		BaseURL:    cfg.GetString("api.base_url"),
		HTTPClient: httpClient,
		CacheTTL:   cfg.GetDuration("cache.ttl"),
		Logger:     logger,
	}, sessions, notifier, reporter, coordinator)
	if err != nil {
		return nil, fmt.Errorf("wire request engine: %w", err)
	}

	heartbeat, err := application.NewHeartbeat(application.HeartbeatConfig{
		BaseURL:    cfg.GetString("api.base_url"),
		HTTPClient: httpClient,
		Interval:   cfg.GetDuration("heartbeat.interval"),
		Logger:     logger,
	}, sessions, coordinator)
	if err != nil {
		return nil, fmt.Errorf("wire heartbeat monitor: %w", err)
	}
	coordinator.AttachMonitor(heartbeat)

	channel, err := realtime.NewChannel(realtime.Config{
		URL:            cfg.GetString("ws.url"),
		PingInterval:   cfg.GetDuration("ws.ping_interval"),
		ReconnectDelay: cfg.GetDuration("ws.reconnect_delay"),
		Logger:         logger,
	}, sessions)
	if err != nil {
		return nil, fmt.Errorf("wire notification channel: %w", err)
	}

	authAPI := api.NewAuthAPI(client)
	users := api.NewUserAPI(client)
	settings := settingscache.NewCache(filepath.Join(stateDir, "settings.toml"), ports.SystemClock{})

	return &app{
		sessions:      sessions,
		notifier:      notifier,
		coordinator:   coordinator,
		client:        client,
		heartbeat:     heartbeat,
		channel:       channel,
		auth:          application.NewAuthService(authAPI, sessions, reporter, heartbeat, channel),
		profile:       application.NewProfileService(users, settings, logger),
		authAPI:       authAPI,
		courses:       api.NewCourseAPI(client),
		homework:      api.NewHomeworkAPI(client),
		enrollments:   api.NewEnrollmentAPI(client),
		users:         users,
		notifications: api.NewNotificationAPI(client),
		assets: api.AssetBases{
			Static:     cfg.GetString("api.static_base"),
			UserStatic: cfg.GetString("api.user_static_base"),
		},
	}, nil
}

func loadConfig(stateDir string) (*viper.Viper, error) {
	cfg := viper.New()
	cfg.SetConfigName("config")
	cfg.SetConfigType("toml")
	cfg.AddConfigPath(stateDir)

	cfg.SetDefault("api.base_url", "http://localhost:8080/api")
	cfg.SetDefault("api.static_base", "http://localhost:8080")
	cfg.SetDefault("api.user_static_base", "http://localhost:8080")
	cfg.SetDefault("ws.url", "ws://localhost:8080/ws/notification")
	cfg.SetDefault("ws.ping_interval", 30*time.Second)
	cfg.SetDefault("ws.reconnect_delay", 5*time.Second)
	cfg.SetDefault("heartbeat.interval", 30*time.Second)
	cfg.SetDefault("cache.ttl", 30*time.Second)
	cfg.SetDefault("log.level", "warn")

	cfg.SetEnvPrefix("CAMPUS")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.WarnLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}
