// Package model provides the data structures shared by the pipeline package and its options.
// It defines the step descriptions handed to options and the lifecycle hooks an option implements.
package model
