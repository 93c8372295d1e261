// SPDX-License-Identifier: MIT

// Package config holds the run configuration of the epinet command: which
// network to build, which model to integrate with which parameters, solver
// tolerances, logging and output. Values come from viper defaults, an
// optional YAML file and EPINET_* environment variables.
package config
