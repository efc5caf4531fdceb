package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host:        "127.0.0.1",
	Port:        "5432",
	User:        "myuser",
	Pass:        "mypassword",
	Name:        "test_db",
	AutoMigrate: true,
}

var defaultCargo = Cargo{
	OperationTimeout: 3 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       20,
	Burst:      40,
	TTL:        5 * time.Minute,
	MaxBuckets: 10000,
}

var defaultKafka = Kafka{
	GroupID:            "service-cargo",
	IdentityTopic:      "identity.events",
	NotificationsTopic: "cargo.notifications",
}

var defaultRedis = Redis{
	TTL: 10 * time.Minute,
}

var defaultRefData = RefData{
	MaxAttempts: 3,
	BaseDelay:   100 * time.Millisecond,
	MaxDelay:    400 * time.Millisecond,
}

var defaultPprof = PprofConfig{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultCargo returns the default workflow settings.
func DefaultCargo() Cargo {
	return defaultCargo
}

// DefaultRateLimit returns the default rate limiter settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultKafka returns the default broker settings (no brokers).
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRedis returns the default cache settings (cache disabled).
func DefaultRedis() Redis {
	return defaultRedis
}

// DefaultRefData returns the default reference-data retry policy.
func DefaultRefData() RefData {
	return defaultRefData
}

// DefaultPprof returns the default pprof settings.
func DefaultPprof() PprofConfig {
	return defaultPprof
}
