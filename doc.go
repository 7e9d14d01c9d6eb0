// Package dbnet turns hand-elicited causal graphs of binary variables into
// dynamic Bayesian networks and estimates how each variable's probability
// evolves over time.
//
// 🚀 What is dbnet?
//
//	A thread-safe modelling and inference toolkit that brings together:
//		• Causal graphs: variables, cause → effect links, sparse elicitation
//		• CPT compilation: Noisy-OR and Recursive Noisy-OR over a power set
//		• DBN compilation: Kahn ordering, immutable nodes, marginal buffers
//		• Inference: forward prediction and a resampling particle filter
//		• Persistence: YAML model files with opaque storage keys
//
// Under the hood, everything is organized under these packages:
//
//	causal/     Variable, Graph and the graph-edit API (RWMutex guarded)
//	cpt/        dense conditional probability tables from partial elicitation
//	dbn/        topological compilation into Node / Network
//	sampling/   Prediction, ParticleFilter, per-worker RNG streams, intervals
//	modelfile/  YAML load / save of a causal.Graph
//	config/     viper configuration (defaults, file, DBNET_* env)
//	logger/     slog construction (text or json)
//	cmd/dbnet   cobra CLI: run, cpt
//
// Quick example:
//
//	Exposure ──┐
//	           ├──► Fever   (observed at t=3)
//	Contact  ──┘
//
//	g := causal.NewGraph("outbreak")
//	exp, con, fev := g.AddVariable("Exposure"), g.AddVariable("Contact"), g.AddVariable("Fever")
//	_ = g.AddCausalLink(exp, fev)
//	_ = g.AddCausalLink(con, fev)
//	_ = g.SetElicitedProbability(fev, 2, 0.7) // Exposure alone
//	_ = g.SetElicitedProbability(fev, 1, 0.4) // Contact alone
//	_ = g.AddObservation(fev, 3, 1.0)
//
//	net, _ := dbn.Compile(g, 5)
//	_ = sampling.NewParticleFilter(10000).Run(ctx, net)
//
//	go install github.com/katalvlaran/dbnet/cmd/dbnet@latest
package dbnet
