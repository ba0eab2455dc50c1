package orchestrator

// Fallback texts used when the message catalog lacks a key.
const (
	fallbackTitle           = "Attendance Portal Checker"
	fallbackStart           = "Starting attendance check"
	fallbackAgentStart      = "Starting agent"
	fallbackTaskDescription = "Task: open the configured portal and check the attendance records"
	fallbackTaskComplete    = "Task completed"
	fallbackErrorOccurred   = "An error occurred"
	fallbackNoAPIKey        = "No API key is configured"
	fallbackEnvSetup        = "Add the following settings to your .env file:"
	fallbackMissingEnv      = "The following environment variables are not set:"
	fallbackHintsTitle      = "Hints:"
	fallbackAPIKeyCheck     = "Check that the API key is valid"
	fallbackTargetURLCheck  = "Check that the target URL is reachable"
	fallbackInternetCheck   = "Check your internet connection"
	fallbackBrowserCheck    = "Check that the browser is installed and can start"
)

// envExamples are shown for missing variables.
var envExamples = map[string]string{
	"TARGET_URL":     "TARGET_URL=https://your-attendance-system-url",
	"LOGIN_EMAIL":    "LOGIN_EMAIL=your-email@example.com",
	"LOGIN_PASSWORD": "LOGIN_PASSWORD=your-password",
	"EXPECTED_NAME":  "EXPECTED_NAME=expected-user-name",
}

type hint struct {
	key      string
	fallback string
}

// troubleshootingHints is the fixed checklist printed after an agent failure.
var troubleshootingHints = []hint{
	{"api_key_check", fallbackAPIKeyCheck},
	{"target_url_check", fallbackTargetURLCheck},
	{"internet_check", fallbackInternetCheck},
	{"browser_check", fallbackBrowserCheck},
}
