// Command descent fits linear and logistic regression models to CSV data
// with gradient descent.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
