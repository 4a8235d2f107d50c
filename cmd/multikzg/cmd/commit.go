/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"github.com/spf13/cobra"
)

// commitCmd represents the commit command
var commitCmd = &cobra.Command{
	Use:     "commit [polynomial]",
	Short:   "commits to a polynomial given as whitespace separated decimal coefficients, constant term first",
	Run:     cmdCommit,
	Version: buildString(),
}

var fCommitmentPath string

func init() {
	rootCmd.AddCommand(commitCmd)

	commitCmd.PersistentFlags().StringVar(&fSrsPath, "srs", "", "specifies full path for the reference string")
	commitCmd.PersistentFlags().StringVar(&fCommitmentPath, "commitment", "", "specifies full path for the commitment -- default is ./[polynomial].commitment")

	_ = commitCmd.MarkPersistentFlagRequired("srs")
}
