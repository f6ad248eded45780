/*
Copyright 2024 The Kubernetes Authors.

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

package v1alpha1

import (
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"
)

const (
	DefaultEvaluationBudget           = 10000
	DefaultAlpha                      = 2.0
	DefaultAdaptationFrequency        = 0.1
	DefaultCrossoverProbability       = 1.0
	DefaultCrossoverDistributionIndex = 30.0
	DefaultMutationDistributionIndex  = 20.0
	DefaultParallelism                = 1
)

// SetDefaults_RVEAArgs fills in unset fields. MutationProbability is left
// unset since its default depends on the problem.
func SetDefaults_RVEAArgs(args *RVEAArgs) {
	klog.V(5).InfoS("Setting defaults", "kind", RVEAArgsKind)

	if args.APIVersion == "" {
		args.APIVersion = APIVersion
	}
	if args.Kind == "" {
		args.Kind = RVEAArgsKind
	}
	if args.EvaluationBudget == 0 && args.Generations == 0 {
		args.EvaluationBudget = DefaultEvaluationBudget
	}
	if args.Alpha == nil {
		args.Alpha = ptr.To(DefaultAlpha)
	}
	if args.AdaptationFrequency == nil {
		args.AdaptationFrequency = ptr.To(DefaultAdaptationFrequency)
	}
	if args.CrossoverProbability == nil {
		args.CrossoverProbability = ptr.To(DefaultCrossoverProbability)
	}
	if args.CrossoverDistributionIndex == nil {
		args.CrossoverDistributionIndex = ptr.To(DefaultCrossoverDistributionIndex)
	}
	if args.MutationDistributionIndex == nil {
		args.MutationDistributionIndex = ptr.To(DefaultMutationDistributionIndex)
	}
	if args.Parallelism == 0 {
		args.Parallelism = DefaultParallelism
	}
}
