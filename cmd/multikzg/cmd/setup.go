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

// setupCmd represents the setup command
var setupCmd = &cobra.Command{
	Use:     "setup [size]",
	Short:   "generates a structured reference string with [size] powers of tau",
	Run:     cmdSetup,
	Version: buildString(),
}

var (
	fSrsPath string
	fSeed    string
	fTau     string
)

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.PersistentFlags().StringVar(&fSrsPath, "srs", "", "specifies full path for the reference string -- default is ./multikzg.srs")
	setupCmd.PersistentFlags().StringVar(&fSeed, "seed", "", "derives tau from a seed string, for reproducible test strings only")
	setupCmd.PersistentFlags().StringVar(&fTau, "tau", "", "uses the given decimal tau, for reproducible test strings only")
}
