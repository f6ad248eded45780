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
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// DecodeRVEAArgs decodes a YAML or JSON document into defaulted RVEAArgs.
// Unknown fields are rejected.
func DecodeRVEAArgs(data []byte) (*RVEAArgs, error) {
	args := &RVEAArgs{}
	if err := yaml.UnmarshalStrict(data, args); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", RVEAArgsKind, err)
	}
	if args.Kind != "" && args.Kind != RVEAArgsKind {
		return nil, fmt.Errorf("want kind %s, got %s", RVEAArgsKind, args.Kind)
	}
	SetDefaults_RVEAArgs(args)
	return args, nil
}

// LoadRVEAArgs reads and decodes the file at path.
func LoadRVEAArgs(path string) (*RVEAArgs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeRVEAArgs(data)
}
