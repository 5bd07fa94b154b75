package models

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Config struct {
	BigEndian bool
	Color     bool
	TraceExec bool
	TraceMem  bool
	TraceReg  bool
	Verbose   bool

	// trace and command output, defaults to stderr
	Output io.Writer
}

func (c *Config) Init() *Config {
	if c == nil {
		c = &Config{}
	}
	if c.Output == nil {
		c.Output = os.Stderr
	}
	return c
}

// NewLogger returns a logger writing to Output, at debug level if Verbose.
func (c *Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = c.Output
	log.Formatter = &logrus.TextFormatter{
		DisableColors:    !c.Color,
		DisableTimestamp: true,
	}
	if c.Verbose {
		log.Level = logrus.DebugLevel
	} else {
		log.Level = logrus.InfoLevel
	}
	return log
}
