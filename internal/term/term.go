// Package term reports facts about the terminal the interpreter runs in.
package term
