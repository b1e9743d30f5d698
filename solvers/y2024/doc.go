// Package y2024 holds the Advent of Code 2024 solvers.
package y2024
