// Package ast provides the Abstract Syntax Tree (AST) definitions for Turtle Script.
//
// Every syntactic form of the language is represented by a single Node type
// tagged with a Kind. Only the fields relevant to a kind are populated, the
// same way a tagged union would carry its payload.
//
// # Core Types
//
// Node: a single element of the program tree, owning its children
//
// Kind: the syntactic form of a node (literal, arithmetic, control flow, ...)
//
// CompareOp, MathFunc, Action: payload enums for comparison, math-library
// and turtle-action nodes
//
// Location: source location (file, line, column)
//
// Arena: owner of every tree produced for an interpreter process
//
// # Building Trees
//
// Constructors take already-built children and return a new node. They do
// not validate anything beyond arity; a malformed tree is a bug in the code
// that built it.
//
//	body := ast.NewTurtle(ast.ActionForward, ast.NewInteger(10))
//	loop := ast.NewRepeat(ast.NewInteger(3), body)
//
// # Ownership
//
// A node owns its children exclusively and the tree is acyclic. Function
// definitions are the exception: once registered in an environment, the
// body must outlive the tree that declared it. Release therefore skips
// function-definition nodes, and the Arena frees everything in bulk when the
// interpreter shuts down.
//
// # Immutability
//
// Children are never rebound after construction. Release is the only
// operation that modifies a node.
package ast
