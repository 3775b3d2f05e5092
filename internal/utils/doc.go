// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, zap logging, and rotating log
// files for the CLI, plus small context and writer helpers.
package utils
