// Command elevate runs a tabular regression experiment end to end: dataset
// summary, train/test split, hyperparameter tuning over cross-validation,
// and the final fit, all driven by one YAML experiment file.
package main

func main() {
	Execute()
}
