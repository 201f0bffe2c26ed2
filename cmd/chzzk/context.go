package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/usestring/chzzk-go/internal/config"
	"github.com/usestring/chzzk-go/internal/logging"
	"github.com/usestring/chzzk-go/pkg/chzzk"
)

type outputFormat string

const (
	outputJSON  outputFormat = "json"
	outputTable outputFormat = "table"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	outputFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	clientOnce sync.Once
	client     *chzzk.Client

	logCleanup func() error
}

func newCommandContext(configFlag, logLevelFlag, outputFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		outputFlag:   outputFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) setupLogging() error {
	if c.logCleanup != nil {
		return nil
	}
	cleanup, err := logging.Setup(c.config.LoggingConfig())
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	c.logCleanup = cleanup
	return nil
}

func (c *commandContext) close() error {
	if c.logCleanup == nil {
		return nil
	}
	err := c.logCleanup()
	c.logCleanup = nil
	return err
}

// apiClient returns the shared API client, built from the loaded config.
func (c *commandContext) apiClient() (*chzzk.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.clientOnce.Do(func() {
		c.client = chzzk.New(
			chzzk.WithBaseURL(cfg.API.BaseURL),
			chzzk.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout()}),
			chzzk.WithUserAgent(cfg.API.UserAgent),
		)
	})
	return c.client, nil
}

// output resolves --output, falling back to a table when stdout is a
// terminal.
func (c *commandContext) output(cmd *cobra.Command) outputFormat {
	if c.outputFlag != nil {
		switch outputFormat(strings.ToLower(strings.TrimSpace(*c.outputFlag))) {
		case outputJSON:
			return outputJSON
		case outputTable:
			return outputTable
		}
	}
	if isTerminal(cmd.OutOrStdout()) {
		return outputTable
	}
	return outputJSON
}

func validateOutputFlag(value string) error {
	switch outputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", outputJSON, outputTable:
		return nil
	default:
		return fmt.Errorf("invalid --output %q (want json or table)", value)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
