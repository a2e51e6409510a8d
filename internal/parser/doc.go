// Package parser extracts structured episode information from noisy video
// filenames and their enclosing folder names.
//
// Parsing is a priority-ordered chain of plugins, each a small capability set
// implementing Plugin. A plugin observes and mutates a shared Context; later
// plugins skip fields earlier plugins already populated. The chain never
// fails: an unparseable file simply yields a ParsedInfo with IsParsed false.
package parser
