package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vk/bootstrapgo/handlers/s3fetch"
	"github.com/vk/bootstrapgo/internal/app"
)

// Environment variables read by the launcher. The launcher claims no flags,
// so the whole argument vector stays available to the hosted application.
const (
	EnvIdentity   = "BOOTSTRAPGO_IDENTITY"
	EnvVariant    = "BOOTSTRAPGO_VARIANT"
	EnvBundle     = "BOOTSTRAPGO_BUNDLE"
	EnvLogProfile = "BOOTSTRAPGO_LOG_PROFILE"
	EnvDebug      = "BOOTSTRAPGO_DEBUG"

	EnvS3Endpoint  = "BOOTSTRAPGO_S3_ENDPOINT"
	EnvS3AccessKey = "BOOTSTRAPGO_S3_ACCESS_KEY"
	EnvS3SecretKey = "BOOTSTRAPGO_S3_SECRET_KEY"
	EnvS3Region    = "BOOTSTRAPGO_S3_REGION"
	EnvS3UseSSL    = "BOOTSTRAPGO_S3_USE_SSL"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse derives the launch configuration from the process environment. The
// argument vector passes through to the entry point untouched.
func Parse(args []string) (*app.Config, error) {
	slog.Debug("Launcher configuration started.")

	// Development convenience; a missing .env file is the normal case.
	_ = godotenv.Load()

	identity := os.Getenv(EnvIdentity)
	if identity == "" {
		identity = executableIdentity()
	}

	debug, _ := strconv.ParseBool(os.Getenv(EnvDebug))
	useSSL, _ := strconv.ParseBool(os.Getenv(EnvS3UseSSL))

	config, err := app.NewConfig(app.Config{
		Identity:   identity,
		Variant:    os.Getenv(EnvVariant),
		Roots:      searchRoots(),
		BundlePath: os.Getenv(EnvBundle),
		LogProfile: os.Getenv(EnvLogProfile),
		Debug:      debug,
		S3: s3fetch.Config{
			Endpoint:  os.Getenv(EnvS3Endpoint),
			AccessKey: os.Getenv(EnvS3AccessKey),
			SecretKey: os.Getenv(EnvS3SecretKey),
			Region:    os.Getenv(EnvS3Region),
			UseSSL:    useSSL,
		},
		Args: args,
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("Launcher configuration complete.", "identity", config.Identity, "variant", config.Variant, "roots", config.Roots)
	return config, nil
}

// executableIdentity derives the application identity from the executable
// name, with the extension stripped so Windows builds resolve the same
// resources.
func executableIdentity() string {
	executable, err := os.Executable()
	if err != nil {
		return ""
	}
	base := filepath.Base(executable)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// searchRoots returns the ambient search directories: the executable's
// directory first, then the working directory.
func searchRoots() []string {
	var roots []string
	if executable, err := os.Executable(); err == nil {
		roots = append(roots, filepath.Dir(executable))
	}
	if cwd, err := os.Getwd(); err == nil && !slices.Contains(roots, cwd) {
		roots = append(roots, cwd)
	}
	return roots
}
