// utils/safelog.go
// ============================================================================
// SAFE LOGGING - masks financial values in production
// ============================================================================
// Statement rows and prompts contain amounts and balances. In production
// they are masked before reaching the log output.
// ============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ============================================================================
// CONFIGURATION
// ============================================================================

var (
	logger       = zerolog.New(os.Stdout).With().Timestamp().Logger()
	isProduction bool
)

// InitLogger configures the global logger. Call once at startup, after
// loading config.
func InitLogger(level string, production bool) {
	InitLoggerWithWriter(os.Stdout, level, production)
}

// InitLoggerWithWriter is InitLogger with an explicit destination.
func InitLoggerWithWriter(w io.Writer, level string, production bool) {
	isProduction = production

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if !production && w == os.Stdout {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	logger.Info().Str("level", lvl.String()).Bool("production", production).Msg("Logger initialized")
}

// Log returns the global logger.
func Log() *zerolog.Logger {
	return &logger
}

// ============================================================================
// MASKING
// ============================================================================

var (
	amountWithCurrencyRegex = regexp.MustCompile(`(£|€|\$)\s?-?\d[\d,]*(\.\d+)?`)
	amountRegex             = regexp.MustCompile(`-?\b\d{1,3}(,\d{3})+(\.\d+)?\b|-?\b\d+\.\d{1,2}\b`)
)

// MaskString hides monetary values when running in production.
func MaskString(input string) string {
	if !isProduction {
		return input
	}
	result := amountWithCurrencyRegex.ReplaceAllString(input, "***")
	return amountRegex.ReplaceAllString(result, "***")
}

// MaskAmount renders an amount, or *** in production.
func MaskAmount(amount decimal.Decimal) string {
	if isProduction {
		return "***"
	}
	return amount.StringFixed(2)
}

// ============================================================================
// SAFE LOGGING HELPERS
// ============================================================================

// SafeDebug logs a masked debug message.
func SafeDebug(format string, args ...any) {
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	logger.Debug().Msg(MaskString(fmt.Sprintf(format, args...)))
}

// LogAnalysis records an analysis outcome without exposing amounts.
func LogAnalysis(requestID, action string, items int, err error) {
	ev := logger.Info()
	if err != nil {
		ev = logger.Error().Err(err)
	}
	ev.Str("request_id", requestID).
		Str("action", action).
		Int("items", items).
		Msg("[Stress] analysis finished")
}

// LogStartup logs startup information.
func LogStartup(appName, version, port string) {
	mode := "development"
	if isProduction {
		mode = "production"
	}
	logger.Info().
		Str("app", appName).
		Str("version", version).
		Str("port", port).
		Str("mode", mode).
		Msg("🚀 starting")
	if isProduction {
		logger.Warn().Msg("⚠️  Production mode: financial values will be masked in logs")
	}
}
