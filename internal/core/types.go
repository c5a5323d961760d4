package core

// Config is the env block of Claude Code's settings.json.
// An absent or empty map is a valid "no configuration" state.
type Config struct {
	Env map[string]string `json:"env,omitempty"`
}

// Clone returns a deep copy of the config's env map.
func (c Config) Clone() Config {
	out := Config{Env: make(map[string]string, len(c.Env))}
	for k, v := range c.Env {
		out.Env[k] = v
	}
	return out
}

// BackupMetadata describes the provenance of a backup snapshot.
// CreatedAt is epoch seconds; zero means unknown.
type BackupMetadata struct {
	Provider  string `json:"provider"`
	CreatedAt int64  `json:"created_at,omitempty"`
	Version   string `json:"version"`
}

// BackupConfig is the on-disk backup shape. Metadata is nil when the
// file is in the legacy format (a bare settings file without _metadata).
type BackupConfig struct {
	Metadata *BackupMetadata   `json:"_metadata,omitempty"`
	Env      map[string]string `json:"env,omitempty"`
}

// Provider identifies which API backend a config points at.
type Provider int

const (
	ProviderUnknown Provider = iota
	ProviderAnthropic
	ProviderGLM
	ProviderCustom
)

func (p Provider) String() string {
	switch p {
	case ProviderAnthropic:
		return "anthropic"
	case ProviderGLM:
		return "glm"
	case ProviderCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// TokenKind classifies a credential string by shape alone.
type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenGLMKey
	TokenAnthropicWeb
)

func (k TokenKind) String() string {
	switch k {
	case TokenGLMKey:
		return "API key"
	case TokenAnthropicWeb:
		return "web token"
	default:
		return "unknown"
	}
}
