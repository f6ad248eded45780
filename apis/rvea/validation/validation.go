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

package validation

import (
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/mihai-snyk/rvea/apis/rvea/v1alpha1"
)

// ValidateRVEAArgs validates defaulted RVEAArgs. Checks that depend on the
// problem, such as the resulting number of reference vectors, are done when
// the algorithm is built.
func ValidateRVEAArgs(path *field.Path, args *v1alpha1.RVEAArgs) error {
	var allErrs field.ErrorList

	if args.LatticeDivisions < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("latticeDivisions"), args.LatticeDivisions, "must not be negative"))
	}
	if args.InnerLatticeDivisions < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("innerLatticeDivisions"), args.InnerLatticeDivisions, "must not be negative"))
	}
	if args.EvaluationBudget < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("evaluationBudget"), args.EvaluationBudget, "must not be negative"))
	}
	if args.Generations < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("generations"), args.Generations, "must not be negative"))
	}
	if args.EvaluationBudget == 0 && args.Generations == 0 {
		allErrs = append(allErrs, field.Required(path.Child("evaluationBudget"), "either evaluationBudget or generations must be set"))
	}

	if args.Alpha == nil {
		allErrs = append(allErrs, field.Required(path.Child("alpha"), ""))
	} else if !finite(*args.Alpha) || *args.Alpha <= 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("alpha"), *args.Alpha, "must be a positive number"))
	}

	if args.AdaptationFrequency == nil {
		allErrs = append(allErrs, field.Required(path.Child("adaptationFrequency"), ""))
	} else if fr := *args.AdaptationFrequency; !finite(fr) || fr <= 0 || fr > 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("adaptationFrequency"), fr, "must be in (0, 1]"))
	}

	allErrs = append(allErrs, validateProbability(path.Child("crossoverProbability"), args.CrossoverProbability)...)
	allErrs = append(allErrs, validateProbability(path.Child("mutationProbability"), args.MutationProbability)...)
	allErrs = append(allErrs, validateDistributionIndex(path.Child("crossoverDistributionIndex"), args.CrossoverDistributionIndex)...)
	allErrs = append(allErrs, validateDistributionIndex(path.Child("mutationDistributionIndex"), args.MutationDistributionIndex)...)

	if args.Parallelism < 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("parallelism"), args.Parallelism, "must be at least 1"))
	}
	if args.CacheTTL != nil && args.CacheTTL.Duration < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("cacheTTL"), args.CacheTTL.Duration.String(), "must not be negative"))
	}

	return allErrs.ToAggregate()
}

func validateProbability(path *field.Path, p *float64) field.ErrorList {
	if p == nil {
		return nil
	}
	if !finite(*p) || *p < 0 || *p > 1 {
		return field.ErrorList{field.Invalid(path, *p, "must be in [0, 1]")}
	}
	return nil
}

func validateDistributionIndex(path *field.Path, eta *float64) field.ErrorList {
	if eta == nil {
		return nil
	}
	if !finite(*eta) || *eta < 0 {
		return field.ErrorList{field.Invalid(path, *eta, "must be a non-negative number")}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
