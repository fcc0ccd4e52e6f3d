package config

import "time"

type Config interface {
	Addr() string
	Directory() string

	ReadHeaderTimeout() time.Duration
	IdleTimeout() time.Duration
	WriteTimeout() time.Duration

	MaxHeaderBytes() int
	MaxBodyBytes() int64

	LogLevel() string
	MetricsEnabled() bool
}

// Load reads the optional .env file, then the environment, and
// validates the result.
func Load() (Config, error) {
	loadEnvFile()

	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *config) Addr() string                    { return c.addr }
func (c *config) Directory() string               { return c.directory }
func (c *config) ReadHeaderTimeout() time.Duration { return c.readHeaderTimeout }
func (c *config) IdleTimeout() time.Duration      { return c.idleTimeout }
func (c *config) WriteTimeout() time.Duration     { return c.writeTimeout }
func (c *config) MaxHeaderBytes() int             { return c.maxHeaderBytes }
func (c *config) MaxBodyBytes() int64             { return c.maxBodyBytes }
func (c *config) LogLevel() string                { return c.logLevel }
func (c *config) MetricsEnabled() bool            { return c.metricsEnabled }
