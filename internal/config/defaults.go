package config

const (
	defaultConfigPath       = "~/.config/pwtune/config.toml"
	defaultPWConfigBinary   = "pw-config"
	defaultTemplateDir      = "/usr/share/pipewire"
	defaultTimeoutSeconds   = 30
	defaultTargetFile       = "pipewire-pulse.conf"
	defaultTargetSection    = "stream.properties"
	defaultTargetSubsection = "channelmix"
	defaultUnscopedTitle    = "General"
	defaultLogFormat        = "console"
	defaultLogLevel         = "warn"
)

// Placement values for display.unscoped_position.
const (
	UnscopedFirst = "first"
	UnscopedLast  = "last"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		PWConfig: PWConfig{
			TemplateDir:    defaultTemplateDir,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Target: Target{
			File:       defaultTargetFile,
			Section:    defaultTargetSection,
			Subsection: defaultTargetSubsection,
		},
		Display: Display{
			UnscopedTitle:    defaultUnscopedTitle,
			UnscopedPosition: UnscopedFirst,
		},
		Staging: Staging{
			DraftsPath: defaultDraftsPath(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
