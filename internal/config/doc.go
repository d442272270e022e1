// Package config resolves parsetest's settings into an immutable Options value.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (-p, -s, -f, -l, --format, --theme, --no-color, --pager, --log-level)
//  2. Environment variables (PARSETEST_FORMAT, PARSETEST_THEME, PARSETEST_NO_COLOR,
//     NO_COLOR, PARSETEST_LONG_NAMES, PARSETEST_LOG_LEVEL)
//  3. YAML config file (.parsetest.yaml in the working directory, or
//     <user config dir>/parsetest/config.yaml, or the path given by --config)
//  4. Hardcoded defaults
//
// # Environment Variables
//
//   - PARSETEST_NO_COLOR: "true"/"1" disables colors. NO_COLOR disables colors
//     when set to any non-empty value.
//   - PARSETEST_FORMAT: auto, text, terminal or json.
//   - PARSETEST_THEME: default, orca or mono.
//   - PARSETEST_LONG_NAMES: "true"/"1" records class-qualified test names.
//   - PARSETEST_LOG_LEVEL: any logrus level name.
package config
