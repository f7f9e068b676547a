// Package agents wires the order intake pipeline into an AgentMesh agent
// hierarchy.
//
// An orchestration agent delegates to three sub-agents, one per pipeline
// stage: fetching emails, identifying orders, and posting to Business
// Central. Each sub-agent carries function tools that wrap the pipeline
// services directly, so agent runs and the plain CLI commands share the
// same code paths.
package agents
