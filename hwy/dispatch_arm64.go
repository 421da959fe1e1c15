// Copyright 2025 go-highway Authors
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

//go:build arm64

package hwy

import (
	"os"

	"golang.org/x/sys/cpu"
)

func init() {
	if NoSimdEnv() {
		setLevel(DispatchScalar)
		return
	}

	if cpu.ARM64.HasASIMD {
		cpuFeatures = append(cpuFeatures, "asimd")
	}
	if cpu.ARM64.HasFPHP {
		cpuFeatures = append(cpuFeatures, "fphp")
	}
	if cpu.ARM64.HasSVE {
		cpuFeatures = append(cpuFeatures, "sve")
	}

	// ARM64 always has NEON (ASIMD); it's part of the ARMv8-A base.
	// SVE is reported but kept at NEON width unless explicitly requested,
	// since its vector length is implementation defined.
	switch {
	case cpu.ARM64.HasSVE && os.Getenv("HWY_USE_SVE") != "":
		setLevel(DispatchSVE)
	case cpu.ARM64.HasASIMD:
		setLevel(DispatchNEON)
	default:
		setLevel(DispatchScalar)
	}
}
