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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// GroupName is the API group of the optimizer configuration and reports.
	GroupName = "rvea.optimization.io"
	// Version is the API version of this package.
	Version = "v1alpha1"

	// RVEAArgsKind is the kind of RVEAArgs documents.
	RVEAArgsKind = "RVEAArgs"
	// ParetoFrontReportKind is the kind of ParetoFrontReport documents.
	ParetoFrontReportKind = "ParetoFrontReport"
)

// APIVersion is the apiVersion string written on documents of this package.
var APIVersion = GroupName + "/" + Version

// RVEAArgs holds the arguments used to configure a run of the
// reference-vector-guided evolutionary algorithm.
type RVEAArgs struct {
	metav1.TypeMeta `json:",inline"`

	// LatticeDivisions is the division of the outer simplex-lattice layer.
	// When zero, a division suited to the number of objectives is chosen.
	LatticeDivisions int `json:"latticeDivisions,omitempty"`

	// InnerLatticeDivisions is the division of the inner layer, 0 disables it.
	InnerLatticeDivisions int `json:"innerLatticeDivisions,omitempty"`

	// EvaluationBudget bounds the number of evaluations. The number of
	// generations is the budget divided by the number of reference vectors.
	EvaluationBudget int `json:"evaluationBudget,omitempty"`

	// Generations overrides the generation count derived from EvaluationBudget.
	Generations int `json:"generations,omitempty"`

	// Alpha is the exponent of the angle penalty schedule.
	Alpha *float64 `json:"alpha,omitempty"`

	// AdaptationFrequency is the fraction of the generations between two
	// reference vector adaptations, in (0, 1].
	AdaptationFrequency *float64 `json:"adaptationFrequency,omitempty"`

	// CrossoverProbability is the probability a mating pair undergoes SBX.
	CrossoverProbability *float64 `json:"crossoverProbability,omitempty"`

	// CrossoverDistributionIndex is the SBX distribution index.
	CrossoverDistributionIndex *float64 `json:"crossoverDistributionIndex,omitempty"`

	// MutationProbability is the per-variable polynomial mutation probability.
	// When unset, 1/n is used for n free variables.
	MutationProbability *float64 `json:"mutationProbability,omitempty"`

	// MutationDistributionIndex is the polynomial mutation distribution index.
	MutationDistributionIndex *float64 `json:"mutationDistributionIndex,omitempty"`

	// Parallelism is the number of concurrent evaluations.
	Parallelism int `json:"parallelism,omitempty"`

	// CacheTTL enables memoisation of evaluations of identical decision
	// vectors for the given duration.
	CacheTTL *metav1.Duration `json:"cacheTTL,omitempty"`
}

// ParetoFrontReport is the outcome of an optimization run.
type ParetoFrontReport struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   ParetoFrontReportSpec   `json:"spec,omitempty"`
	Status ParetoFrontReportStatus `json:"status,omitempty"`
}

// ParetoFrontReportSpec describes the run that produced the report.
type ParetoFrontReportSpec struct {
	// Problem is the name of the optimized problem.
	Problem string `json:"problem"`

	// Algorithm is the name of the algorithm that produced the front.
	Algorithm string `json:"algorithm"`

	// Args are the effective, defaulted arguments of the run.
	Args RVEAArgs `json:"args"`

	// Seed is the seed of the pseudo-random source.
	Seed uint64 `json:"seed"`
}

// ParetoFrontReportStatus holds the results of the run.
type ParetoFrontReportStatus struct {
	// Phase represents the outcome of the run
	// +kubebuilder:validation:Enum=Completed;Failed;Cancelled
	Phase ReportPhase `json:"phase,omitempty"`

	// Message describes the failure when Phase is not Completed.
	Message string `json:"message,omitempty"`

	// ReferenceVectors is the number of reference vectors used.
	ReferenceVectors int `json:"referenceVectors"`

	// Generations is the number of generations completed.
	Generations int `json:"generations"`

	// Evaluations is the number of objective evaluations performed. Results
	// served from the evaluation cache are not counted.
	Evaluations int `json:"evaluations"`

	// Solutions holds the non-dominated solutions of the final population,
	// or of the last valid population when the run failed.
	Solutions []Solution `json:"solutions"`

	// CompletionTime is when the run finished.
	CompletionTime *metav1.Time `json:"completionTime,omitempty"`
}

// ReportPhase represents the outcome of an optimization run
type ReportPhase string

const (
	// ReportPhaseCompleted indicates the run used its whole generation budget.
	ReportPhaseCompleted ReportPhase = "Completed"

	// ReportPhaseFailed indicates the run aborted on a fatal error.
	ReportPhaseFailed ReportPhase = "Failed"

	// ReportPhaseCancelled indicates the run was cancelled by the caller.
	ReportPhaseCancelled ReportPhase = "Cancelled"
)

// Solution represents a single non-dominated solution.
type Solution struct {
	// Variables is the decision vector.
	Variables []float64 `json:"variables"`

	// Objectives contains the objective values, all minimised.
	Objectives []float64 `json:"objectives"`

	// Feasible reports whether the solution satisfies the problem constraints.
	Feasible bool `json:"feasible"`
}
