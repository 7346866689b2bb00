package gen

import "runtime"

// defaultHeader is the comment placed at the top of every generated file.
const defaultHeader = "Code generated by enumgen. DO NOT EDIT."

// defaultMultiPrefix marks a rule's second field as a MULTI directive.
const defaultMultiPrefix = "MULTI="

// Config holds the generation settings shared by the Generator and Writer.
type Config struct {
	// Rules are the ordered rule lines applied to every table. Order is
	// significant: each rule's output is concatenated after the previous
	// rule's.
	Rules []string

	// MultiPrefix is the directive prefix that turns a rule's second field
	// into a MULTI key-column name. Matched case-insensitively.
	MultiPrefix string

	// Header is the comment written at the top of each generated file.
	Header string

	// Package is the package name generated files declare.
	Package string

	// Target is the directory generated files are written to.
	Target string

	// Workers bounds how many tables are written in parallel.
	Workers int
}

// DefaultConfig returns a Config with the default directive prefix, header,
// package name and worker count. It carries no rules.
func DefaultConfig() *Config {
	return &Config{
		MultiPrefix: defaultMultiPrefix,
		Header:      defaultHeader,
		Package:     "enums",
		Target:      "enums",
		Workers:     runtime.GOMAXPROCS(0),
	}
}

// ParseRules parses the configured rule lines in order using the config's
// MULTI directive prefix.
func (c *Config) ParseRules() []Rule {
	rules := make([]Rule, 0, len(c.Rules))
	for _, line := range c.Rules {
		rules = append(rules, ParseRule(line, c.MultiPrefix))
	}
	return rules
}
