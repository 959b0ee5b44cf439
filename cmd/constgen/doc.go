// Command constgen generates the constants bundle used by examples/codegen.
//
// You keep project metadata, display messages, feature flags and numeric
// constants in one config file; constgen turns it into source code so the
// values are compiled in instead of read at runtime.
//
// Config format
//
// YAML (.yaml, .yml):
//
//	project:
//	  name: bazel-codegen-example
//	  version: 1.0.0
//	  author: Bazel Learning Project
//	messages:
//	  welcome: Welcome!
//	  error: Something failed
//	  success: Done
//	features:
//	  logging: true
//	  metrics: false
//	constants:
//	  max_buffer_size: 1024
//	  default_timeout: 30
//	  pi: 3.14159265
//	  debug: true
//
// HCL (.hcl) carries the same data, with one block per feature:
//
//	project {
//	  name    = "bazel-codegen-example"
//	  version = "1.0.0"
//	}
//	feature "logging" {
//	  enabled = true
//	}
//
// Unknown keys are errors in both formats. Features keep their file order.
//
// Typical go:generate usage
//
//	//go:generate go run ../../cmd/constgen -config ./config.yaml -out ./constants.gen.go
//
// Then:
//
//	go generate ./...
//
// Output
//
//   - -lang go (default): a file defining func Generated() Bundle in the package
//     named by -package, or after the output directory. The package must declare
//     the Bundle, Project, Messages, Feature and Constants types.
//   - -lang c: a header with PROJECT_*, MSG_*, FEATURE_<NAME>, MAX_BUFFER_SIZE,
//     DEFAULT_TIMEOUT, PI and DEBUG macros.
//
// Exit codes: 0 ok, 1 generation failed, 2 bad command line.
//
// Watch mode
//
// With -watch, constgen generates once and then regenerates whenever the config
// file is written, until interrupted. A failed regeneration is logged and the
// previous output is left untouched.
package main
