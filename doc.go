// Package hellogen collects small programs that show how Go code plugs into a
// build system: a library with a command-line driver, and a code generator
// whose output is compiled into a second program.
//
//   - examples/hello: the Greeting library; ./main is the driver.
//   - examples/codegen: the constants bundle printer; constants.gen.go is
//     produced by cmd/constgen from config.yaml.
//   - cmd/constgen: the generator (YAML or HCL in, Go or C out).
//
// Each package documents its own usage.
package hellogen
