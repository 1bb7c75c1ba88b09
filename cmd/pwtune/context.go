package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"pwtune/internal/catalog"
	"pwtune/internal/config"
	"pwtune/internal/drafts"
	"pwtune/internal/logging"
	"pwtune/internal/model"
	"pwtune/internal/sections"
	"pwtune/internal/services/pwconfig"
)

// targetFlags holds the persistent flags that select what gets modelled.
type targetFlags struct {
	page       int
	file       string
	section    string
	subsection string
}

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	target       *targetFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string, target *targetFlags) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		target:       target,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// resolveTarget picks the modelled target. An explicit page wins; otherwise
// the configured target is used with any --file/--section/--subsection
// overrides applied.
func (c *commandContext) resolveTarget(cmd *cobra.Command) (catalog.Target, error) {
	if flagChanged(cmd, "page") {
		page, err := catalog.PageFromIndex(c.target.page)
		if err != nil {
			return catalog.Target{}, err
		}
		return page.Target()
	}

	cfg, err := c.ensureConfig()
	if err != nil {
		return catalog.Target{}, err
	}
	target := catalog.Target{
		File:       cfg.Target.File,
		Section:    cfg.Target.Section,
		Subsection: cfg.Target.Subsection,
	}
	if flagChanged(cmd, "file") {
		target.File = strings.TrimSpace(c.target.file)
	}
	if flagChanged(cmd, "section") {
		target.Section = strings.TrimSpace(c.target.section)
	}
	if flagChanged(cmd, "subsection") {
		target.Subsection = strings.TrimSuffix(strings.TrimSpace(c.target.subsection), ".")
	}
	return target, target.Validate()
}

func (c *commandContext) newClient() (*pwconfig.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return pwconfig.New(
		cfg.PWConfig.Binary,
		cfg.PWConfig.TemplateDir,
		cfg.PWConfig.TimeoutSeconds,
		pwconfig.WithLogger(c.loggerValue()),
	)
}

func (c *commandContext) openDrafts() (*drafts.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return drafts.Open(cfg)
}

func (c *commandContext) groupPolicy() sections.Policy {
	cfg := c.configValue()
	if cfg == nil {
		return sections.DefaultPolicy()
	}
	return sections.Policy{
		UnscopedTitle: cfg.Display.UnscopedTitle,
		UnscopedLast:  cfg.UnscopedLast(),
	}
}

// session bundles a constructed model with the drafts store its staged
// catalog was restored from.
type session struct {
	model  *model.Model
	drafts *drafts.Store
}

func (s *session) Close() error {
	if s == nil || s.drafts == nil {
		return nil
	}
	return s.drafts.Close()
}

// openSession restores persisted drafts for the resolved target and builds
// a model sharing that staged catalog.
func (c *commandContext) openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	target, err := c.resolveTarget(cmd)
	if err != nil {
		return nil, err
	}
	client, err := c.newClient()
	if err != nil {
		return nil, err
	}
	store, err := c.openDrafts()
	if err != nil {
		return nil, fmt.Errorf("open drafts: %w", err)
	}
	staged, err := store.Load(ctx, target)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load drafts: %w", err)
	}
	m, err := model.New(ctx, client, target, model.Options{
		Staged:          staged,
		ValidateOptions: c.configValue().Staging.ValidateOptions,
		Logger:          c.loggerValue(),
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return &session{model: m, drafts: store}, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Changed
	}
	return false
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
