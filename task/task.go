// Package task expands the selected prompt template into the instruction
// handed to the agent.
package task

import (
	"strings"

	"github.com/hairizuan-noorazman/attendance-agent/configstore"
	"github.com/hairizuan-noorazman/attendance-agent/environ"
)

// Environment variables read by the composer.
const (
	EnvTargetURL     = "TARGET_URL"
	EnvLegacyURL     = "JOBCAN_URL"
	EnvLoginEmail    = "LOGIN_EMAIL"
	EnvLoginPassword = "LOGIN_PASSWORD"
	EnvExpectedName  = "EXPECTED_NAME"
)

// Template placeholders.
const (
	PlaceholderTargetURL     = "{target_url}"
	PlaceholderLoginEmail    = "{login_email}"
	PlaceholderLoginPassword = "{login_password}"
	PlaceholderExpectedName  = "{expected_name}"
)

// Markers substituted for parameters missing from the environment.
const (
	MissingLoginEmail    = "[login email not configured]"
	MissingLoginPassword = "[login password not configured]"
	MissingExpectedName  = "[expected name not configured]"
)

// FallbackTask is used when the catalog has no default_task either.
const FallbackTask = "default task"

// TargetURL returns the target location for precondition checks, preferring
// TARGET_URL over the legacy JOBCAN_URL. Composition reads TARGET_URL only.
func TargetURL(env environ.Environment) (string, bool) {
	return environ.First(env, EnvTargetURL, EnvLegacyURL)
}

// Compose resolves the task instruction. With TARGET_URL set it expands the template named by browser settings; otherwise, or when that
// template is absent, it returns the catalog's default task. It never fails.
func Compose(prompts configstore.PromptCatalog, browser *configstore.BrowserSettings, env environ.Environment) string {
	if target := environ.Get(env, EnvTargetURL); target != "" {
		if tmpl, found := prompts.Template(browser.TemplateName()); found {
			return expand(tmpl, target, env)
		}
	}
	if def, ok := prompts.Template(configstore.DefaultTaskKey); ok {
		return def
	}
	return FallbackTask
}

func expand(tmpl, target string, env environ.Environment) string {
	r := strings.NewReplacer(
		PlaceholderTargetURL, target,
		PlaceholderLoginEmail, orMarker(env, EnvLoginEmail, MissingLoginEmail),
		PlaceholderLoginPassword, orMarker(env, EnvLoginPassword, MissingLoginPassword),
		PlaceholderExpectedName, orMarker(env, EnvExpectedName, MissingExpectedName),
	)
	return r.Replace(tmpl)
}

func orMarker(env environ.Environment, key, marker string) string {
	if v := environ.Get(env, key); v != "" {
		return v
	}
	return marker
}

// credentialPlaceholders maps the credential placeholders to the variable
// that fills them, in reporting order.
var credentialPlaceholders = []struct {
	placeholder string
	env         string
}{
	{PlaceholderLoginEmail, EnvLoginEmail},
	{PlaceholderLoginPassword, EnvLoginPassword},
	{PlaceholderExpectedName, EnvExpectedName},
}

// RequiredVariables returns the variables the chosen flow needs. The target
// location is always required; the login and expected-name variables are
// required when the selected template references them.
func RequiredVariables(prompts configstore.PromptCatalog, browser *configstore.BrowserSettings) []string {
	required := []string{EnvTargetURL}
	tmpl, ok := prompts.Template(browser.TemplateName())
	if !ok {
		return required
	}
	for _, c := range credentialPlaceholders {
		if strings.Contains(tmpl, c.placeholder) {
			required = append(required, c.env)
		}
	}
	return required
}

// MissingVariables returns the entries of required that are unset. The
// target location counts as set when either of its names is.
func MissingVariables(required []string, env environ.Environment) []string {
	var missing []string
	for _, name := range required {
		if name == EnvTargetURL {
			if _, ok := TargetURL(env); !ok {
				missing = append(missing, name)
			}
			continue
		}
		if !environ.Has(env, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Redact replaces the login password in a composed task so it can be shown.
func Redact(task string, env environ.Environment) string {
	if pw := environ.Get(env, EnvLoginPassword); pw != "" {
		return strings.ReplaceAll(task, pw, "********")
	}
	return task
}
