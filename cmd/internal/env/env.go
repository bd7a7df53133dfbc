// Copyright 2026 The gridfmt Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package env maps GRIDFMT_* environment variables onto command flags.
package env

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type cmdFlags interface {
	CheckEnvironmentVariables(command *cobra.Command) error
}

type cmdFlagsImpl struct{}

var (
	// CmdFlags is the mapping used by the gridfmt commands.
	CmdFlags           cmdFlags = cmdFlagsImpl{}
	errorMessagePrefix          = "error mapping environment variables to command flags"
)

const globalPrefix = "gridfmt"

// Prefix returns the environment variable prefix of command: GRIDFMT for the
// root command and GRIDFMT_<NAME> for its subcommands.
func Prefix(command *cobra.Command) string {
	if !command.HasParent() {
		return strings.ToUpper(globalPrefix)
	}
	return strings.ToUpper(fmt.Sprintf("%s_%s", globalPrefix, command.Name()))
}

// CheckEnvironmentVariables sets every flag of command that was not given
// on the command line from <prefix>_<FLAG>, with dashes in the flag name
// replaced by underscores.
func (cmdFlagsImpl) CheckEnvironmentVariables(command *cobra.Command) error {
	var errs []string
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix(Prefix(command))
	command.Flags().VisitAll(func(f *pflag.Flag) {
		configName := strings.ReplaceAll(f.Name, "-", "_")
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				errs = append(errs, err.Error())
			}
		}
	})

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", errorMessagePrefix, strings.Join(errs, "; "))
}
