/*
Package lox implements a tree-walking interpreter for a dialect of Lox.

The dialect keeps Lox's dynamic typing and lexical scoping but drops the
parentheses around conditions, adds arrays, object literals, constants,
compound assignment, and classes with declared fields, and gives every value
copy-on-store semantics: assigning, passing, or returning an array, object, or
instance always produces an independent copy.

The interpreter can easily be embedded in another program. Use NewVM to create
an interpreter, then DoString or DoReader to run snippets, or RunFile and
RunReader to run whole scripts the way the lox command does. Add native
functions to a single VM with DefineBuiltin, or to every VM with Register from
an init function; the coreext/date package is an example.

Lox Primer

Hello World:

	println "Hello, world!";

A script may declare main, which runs after every top-level statement. If main
takes a parameter, it receives the script's arguments as an array of strings:

	fun main(args) {
		for var i = 0; i < len(args); i += 1 {
			println i, ": ", args[i];
		}
	}

Variables are declared with var or const. Conditions and loop headers take no
parentheses, and bodies are always blocks:

	const limit = 3;
	var total = 0;
	while total < limit {
		total += 1;
	}
	if total == limit { println "done"; } else { println "not yet"; }

Classes declare fields with defaults and methods. A method named after its
class is the constructor. Subclasses name their superclass after <, and super
reaches the superclass's members:

	class Point {
		var x = 0;
		var y = 0;
		fun Point(x, y) { this.x = x; this.y = y; }
		fun norm2() { return this.x * this.x + this.y * this.y; }
	}
	class Point3 < Point {
		var z = 0;
		fun Point3(x, y, z) { super.Point(x, y); this.z = z; }
		fun norm2() { return super.norm2() + this.z * this.z; }
	}
	println Point3(1, 2, 2).norm2();

Errors

Scanning and parsing report every problem before anything executes, as a
*LexError or *ParseError. A runtime error stops execution and is returned as a
*RuntimeError, which wraps one of the ErrorKind values, so callers can test for
a particular failure with errors.Is:

	if errors.Is(err, lox.DivisionByZeroError) {
		// ...
	}
*/
package lox
