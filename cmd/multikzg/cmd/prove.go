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

// proveCmd represents the prove command
var proveCmd = &cobra.Command{
	Use:     "prove [polynomial]",
	Short:   "opens a polynomial at a batch of points and outputs the multiproof",
	Run:     cmdProve,
	Version: buildString(),
}

var (
	fPoints    string
	fProofPath string
	fPadded    bool
)

func init() {
	rootCmd.AddCommand(proveCmd)

	proveCmd.PersistentFlags().StringVar(&fSrsPath, "srs", "", "specifies full path for the reference string")
	proveCmd.PersistentFlags().StringVar(&fPoints, "points", "", "comma separated decimal evaluation points, 128 at most")
	proveCmd.PersistentFlags().StringVar(&fProofPath, "proof", "", "specifies full path for the proof -- default is ./[polynomial].proof")
	proveCmd.PersistentFlags().BoolVar(&fPadded, "padded", false, "writes curve points in the 64 byte limb padded layout")

	_ = proveCmd.MarkPersistentFlagRequired("srs")
	_ = proveCmd.MarkPersistentFlagRequired("points")
}
