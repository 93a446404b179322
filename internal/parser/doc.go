// Package parser provides tokenization and parsing for the minimal
// C-like statement grammar accepted by cflow.
//
// The package converts raw source text into a tree of statement nodes
// (sequential statements, if/else, while, do-while, for, break,
// continue, return, and function definitions) that the analyzer
// partitions into basic blocks. Parsing is a two step process: a
// rule-ordered regex tokenizer splits each line into tokens, and a
// recursive descent pass structures the token stream into nodes.
package parser
