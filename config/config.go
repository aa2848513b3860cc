package config

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const roleGroupPrefix = "ROLE_GROUP_"

type (
	APP struct {
		Name       string
		Host       string
		Port       string
		Env        string
		Locale     string
		JWTSecret  string
		JWTTTL     time.Duration
		BcryptCost int
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
		Migrate  bool
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Mail struct {
		Host     string
		Port     string
		User     string
		Password string
		From     string
	}
	// RoleGroups maps a group name to the role ids it covers,
	// e.g. ROLE_GROUP_APPRENTICES=1,2 -> "apprentices": [1 2].
	RoleGroups map[string][]int64

	Config struct {
		App        APP
		DB         DB
		MQ         MQ
		Mail       Mail
		RoleGroups RoleGroups
	}
)

func defaultRoleGroups() RoleGroups {
	return RoleGroups{
		"apprentices": {1, 2},
		"instructors": {3, 4},
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func Load() (Config, error) {
	ttl, err := time.ParseDuration(getEnv("SERVICE_JWT_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("SERVICE_JWT_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("SERVICE_JWT_TTL must be positive, got %s", ttl)
	}
	cost, err := strconv.Atoi(getEnv("SERVICE_BCRYPT_COST", "10"))
	if err != nil {
		return Config{}, fmt.Errorf("SERVICE_BCRYPT_COST: %w", err)
	}
	migrate, err := strconv.ParseBool(getEnv("POSTGRES_MIGRATE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("POSTGRES_MIGRATE: %w", err)
	}
	groups, err := loadRoleGroups(os.Environ())
	if err != nil {
		return Config{}, err
	}

	app := APP{
		Name:       getEnv("SERVICE_NAME", "userregistry"),
		Host:       getEnv("SERVICE_HOST", ""),
		Port:       getEnv("SERVICE_PORT", "8080"),
		Env:        getEnv("SERVICE_ENV", ""),
		Locale:     getEnv("SERVICE_LOCALE", "es"),
		JWTSecret:  getEnv("SERVICE_JWT_SECRET", ""),
		JWTTTL:     ttl,
		BcryptCost: cost,
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", "5432"),
		Migrate:  migrate,
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", "5672"),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "userregistry.notifications"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "userregistry.mail"),
	}
	mail := Mail{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     getEnv("SMTP_PORT", "587"),
		User:     getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@localhost"),
	}

	return Config{
		App:        app,
		DB:         db,
		MQ:         mq,
		Mail:       mail,
		RoleGroups: groups,
	}, nil
}

// loadRoleGroups reads ROLE_GROUP_<NAME>=<id>,<id> pairs. Without any
// such variable the apprentice/instructor defaults apply.
func loadRoleGroups(environ []string) (RoleGroups, error) {
	groups := make(RoleGroups)
	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, roleGroupPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, roleGroupPrefix))
		if name == "" {
			continue
		}
		ids, err := parseIDs(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		groups[name] = ids
	}
	if len(groups) == 0 {
		return defaultRoleGroups(), nil
	}

	return groups, nil
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid role id %q", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("role group has no ids")
	}

	return ids, nil
}

// Names returns the configured group names in a stable order.
func (g RoleGroups) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

// MigrateDSN is DBDSN with the scheme golang-migrate's pgx/v5 driver registers.
func (c Config) MigrateDSN() (string, error) {
	dsn, err := c.DBDSN()
	if err != nil {
		return "", err
	}

	return "pgx5" + strings.TrimPrefix(dsn, "postgres"), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

func (c Config) SMTPAddr() string {
	if c.Mail.Host == "" {
		return ""
	}
	return c.Mail.Host + ":" + c.Mail.Port
}
