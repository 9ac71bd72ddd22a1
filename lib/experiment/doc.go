// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package experiment loads layered experiment descriptions and builds
// the resolved object graph consumed by the evaluation harness.
//
// An experiment lives in a base document (experiment.yaml by default)
// and an optional environment overlay that sits next to it with the
// environment name inserted before the extension (experiment.dev.yaml).
// [Load] reads both, merges them with [merge.Merge], expands connection
// references into per-owner [Connection] copies with [Build], and then
// resolves ${VAR} placeholders at the experiment level against an
// explicit [placeholder.Vars] snapshot.
//
// Evaluators are resolved lazily: callers invoke
// [Evaluator.ResolveVariables] for each evaluator they select. Each
// owner holds its own copy of every referenced connection, so
// resolving one evaluator never changes what another one sees.
//
// Document shape:
//
//	name: math_coding
//	description: optional free text
//	flow: flows/math_code_generation
//	entry_point: pure_python_flow:get_math_response
//	connections:            # the connections table
//	  - name: aoai
//	    connection_type: AzureOpenAIConnection
//	    api_base: https://example.openai.azure.com/
//	    api_version: 2023-07-01-preview
//	    api_key: ${AOAI_API_KEY}
//	    api_type: azure
//	    deployment_name: gpt-35-turbo
//	connections_ref: [aoai] # optional; defaults to every table entry
//	env_vars:
//	  - AOAI_API_KEY: ${AOAI_API_KEY}
//	evaluators:
//	  - name: answer_length
//	    flow: evaluators/answer_length
//	    entry_point: answer_length:eval_answer_length
//	    connections_ref: [aoai]
//	    datasets:
//	      - name: math_small
//	        source: data/math_data.jsonl
//	        mappings:
//	          response: ${data.answer}
//
// Files ending in .json or .jsonc are decoded as JSON with comments;
// everything else is decoded as YAML.
package experiment
