// Package iterkit holds the iterator vocabulary types:
// category tags, the category lookup that classifies a type, and a slice position iterator.
package iterkit
