// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/tsfix/cmd/tsfix/opts"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates a command that lists the effective rules
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules a run would apply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := opts.Config.CompileRules()
			if err != nil {
				return errors.Errorf("compiling rules: %w", err)
			}
			for i, r := range rules {
				opts.Logger.Raw(fmt.Sprintf("%d. %s\n", i+1, r))
			}
			opts.Logger.Raw(fmt.Sprintf("prefix: %q\n", opts.Config.Prefix))
			return nil
		},
	}

	return cmd
}
