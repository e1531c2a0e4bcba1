package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr           string
	GinMode           string
	CORSOrigins       []string // empty means the local dev servers
	FleetFile         string
	MetricsEnabled    bool
	NATSURL           string
	NATSSubjectPrefix string
	QueueMatchByName  bool
	TicketPrefix      string
}

// LoadEnv reads .env (when present) and the process environment.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	env := Env{
		AppAddr:           getenvDefault("APP_ADDR", ":8080"),
		GinMode:           strings.TrimSpace(os.Getenv("GIN_MODE")),
		FleetFile:         strings.TrimSpace(os.Getenv("FLEET_FILE")),
		NATSURL:           strings.TrimSpace(os.Getenv("NATS_URL")),
		NATSSubjectPrefix: getenvDefault("NATS_SUBJECT_PREFIX", "metrobus"),
		TicketPrefix:      getenvDefault("TICKET_PREFIX", "METRO"),
	}

	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	var err error
	if env.MetricsEnabled, err = getenvBool("METRICS_ENABLED", true); err != nil {
		return Env{}, err
	}
	if env.QueueMatchByName, err = getenvBool("QUEUE_MATCH_BY_NAME", false); err != nil {
		return Env{}, err
	}
	return env, nil
}

func getenvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvBool(k string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	switch strings.ToLower(v) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s: %q", k, v)
	}
}
