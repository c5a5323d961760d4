package core

import (
	"fmt"
	"strings"
)

// Settings keys managed by this tool.
const (
	KeyAuthToken   = "ANTHROPIC_AUTH_TOKEN"
	KeyBaseURL     = "ANTHROPIC_BASE_URL"
	KeyTimeout     = "API_TIMEOUT_MS"
	KeyOpusModel   = "ANTHROPIC_DEFAULT_OPUS_MODEL"
	KeySonnetModel = "ANTHROPIC_DEFAULT_SONNET_MODEL"
	KeyHaikuModel  = "ANTHROPIC_DEFAULT_HAIKU_MODEL"
)

// GLM endpoint and default models applied on switch.
const (
	GLMDomainMarker = "z.ai"
	GLMBaseURL      = "https://api.z.ai/api/anthropic"
	GLMTimeoutMS    = "3000000"
	GLMOpusModel    = "GLM-4.7"
	GLMSonnetModel  = "GLM-4.7"
	GLMHaikuModel   = "GLM-4.5-Air"
)

// DetectProvider classifies a config by its base URL. The branch order
// matters: a fully empty env is Unknown, but an env that merely lacks
// the base URL key (or holds it empty) is Anthropic.
func DetectProvider(cfg Config) Provider {
	if len(cfg.Env) == 0 {
		return ProviderUnknown
	}
	baseURL := cfg.Env[KeyBaseURL]
	if strings.Contains(baseURL, GLMDomainMarker) {
		return ProviderGLM
	}
	if baseURL == "" {
		return ProviderAnthropic
	}
	return ProviderCustom
}

// IsGLMKey reports whether a settings key belongs to the GLM
// configuration. The auth token key is deliberately not in this set;
// only these five are stripped when restoring an Anthropic backup.
func IsGLMKey(key string) bool {
	switch key {
	case KeyBaseURL, KeyTimeout, KeyOpusModel, KeySonnetModel, KeyHaikuModel:
		return true
	}
	return false
}

// DetectTokenKind guesses what kind of credential a token is from its
// shape. Tokens in the 100-200 char range without JWT-style dots fall
// through to unknown.
func DetectTokenKind(token string) TokenKind {
	if token == "" {
		return TokenUnknown
	}
	if strings.HasPrefix(token, "sk-") || strings.HasPrefix(token, "glm-") {
		return TokenGLMKey
	}
	if strings.Count(token, ".") >= 2 && len(token) > 100 {
		return TokenAnthropicWeb
	}
	if len(token) > 200 {
		return TokenAnthropicWeb
	}
	if len(token) < 100 {
		return TokenGLMKey
	}
	return TokenUnknown
}

// ValidateTokenForProvider checks a token against the provider it is
// about to be used with. The check is advisory: it always returns true
// and reports mismatches as warnings for the caller to display.
func ValidateTokenForProvider(token string, p Provider) (bool, []string) {
	kind := DetectTokenKind(token)

	var warnings []string
	switch p {
	case ProviderGLM:
		if kind == TokenAnthropicWeb {
			warnings = append(warnings,
				"Token looks like an Anthropic web token",
				"GLM typically uses API keys (sk-xxx or glm-xxx format)")
		}
	case ProviderAnthropic:
		if kind == TokenGLMKey {
			warnings = append(warnings,
				"Token looks like an API key",
				"Anthropic uses longer JWT-style tokens")
		}
	}
	return true, warnings
}

// MaskToken renders a token safe for display. Short tokens collapse to
// a fixed mask so their length is not revealed.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return fmt.Sprintf("%s...%s", token[:4], token[len(token)-4:])
}

// GLMEnv builds the full env block applied when switching to GLM.
func GLMEnv(token string) Config {
	return Config{Env: map[string]string{
		KeyAuthToken:   token,
		KeyBaseURL:     GLMBaseURL,
		KeyTimeout:     GLMTimeoutMS,
		KeyOpusModel:   GLMOpusModel,
		KeySonnetModel: GLMSonnetModel,
		KeyHaikuModel:  GLMHaikuModel,
	}}
}
