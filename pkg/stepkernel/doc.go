// Package stepkernel implements the execution engine for a small
// nondeterministic logic/text-generation language: programs are sets of
// named tasks, each task has one or more methods, and each method is a
// linear chain of steps that emit tokens, match input, update mutable
// state, or invoke other tasks.
//
// The engine is single-threaded and depth-first. A method's step chain
// is driven by continuation-passing style over the native Go call stack:
// a step's Try either commits by invoking its continuation and returning
// true, or exhausts its choices and returns false, at which point control
// unwinds to the nearest enclosing choice point (the method-try loop in
// Module.dispatch, or a Sequence step). There is no cut and no parallelism;
// nondeterminism is resolved entirely by backtracking.
//
// Bindings, state, and logic variables are persistent: extending a
// binding list or updating a state map never mutates the structure a
// sibling branch is still holding, so failure never needs to undo
// anything explicit. The one deliberately mutable piece of state is the
// output buffer's backing array, which is partitioned by length so that
// concurrent views never observe each other's writes, and the per-step
// cool-down fuse, which is intentionally not part of the persistence
// discipline (see Cool).
package stepkernel
